package booking

import "fmt"

const (
	MsgReservationNotFound = "Reservation not found"
	MsgRoomNotFound        = "Room not found"
	MsgGuestNotFound       = "Guest not found"
	MsgRoomUnavailable     = "Room is not available for the selected dates"
	MsgInvalidStay         = "Check-in date must be before check-out date"
)

func createdMessage(id string) string {
	return fmt.Sprintf("Reservation ID: %s made successfully", id)
}

func updatedMessage(id string) string {
	return fmt.Sprintf("Reservation ID: %s updated successfully", id)
}

func deletedMessage(id string) string {
	return fmt.Sprintf("Reservation with ID: %s deleted successfully", id)
}

func paidMessage(id string) string {
	return fmt.Sprintf("Payment processed successfully for Reservation ID: %s", id)
}
