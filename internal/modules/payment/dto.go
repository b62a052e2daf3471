package payment

type MakePaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
}
