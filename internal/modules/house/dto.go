package house

type InitHouseRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type UpdateHouseRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type InitHouseResponse struct {
	ID string `json:"id"`
}
