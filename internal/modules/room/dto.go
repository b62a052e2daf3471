package room

import "guesthouse/internal/domain"

type AddRoomRequest struct {
	HouseID    string          `json:"house_id" binding:"required"`
	RoomNumber string          `json:"room_number" binding:"required"`
	Type       domain.RoomType `json:"type" binding:"omitempty,oneof=single double suite"`
	Price      string          `json:"price" binding:"required"`
}

type UpdateRoomRequest struct {
	RoomNumber string          `json:"room_number" binding:"required"`
	Type       domain.RoomType `json:"type" binding:"omitempty,oneof=single double suite"`
	Price      string          `json:"price" binding:"required"`
}

type AddRoomResponse struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
