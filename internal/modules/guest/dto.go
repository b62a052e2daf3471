package guest

type GuestRequestBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

type SubmitRequestBody struct {
	Details string `json:"details" binding:"required"`
}

type UpdateRequestStatusBody struct {
	Status string `json:"status" binding:"required"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
