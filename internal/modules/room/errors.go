package room

import "fmt"

const (
	MsgRoomNotFound      = "Room not found"
	MsgHouseNotFound     = "House not found"
	MsgNotOwner          = "Only the house owner can manage rooms"
	MsgDuplicateNumber   = "Room number already exists in this house"
	MsgInvalidPrice      = "Price must be a non-negative number"
	MsgInvalidPriceRange = "Minimum price must not exceed maximum price"
	MsgInvalidDateRange  = "Start date must be before end date"
	MsgNoRoomsForDates   = "No available rooms in this house for the specified date range"
	MsgNoRoomsForType    = "No available rooms in this house with the specified type"
	MsgNoRoomsPriceRange = "No available rooms in this house within the specified price range"
)

func deletedMessage(id string) string {
	return fmt.Sprintf("Room with ID: %s deleted successfully", id)
}
