package payment

import "fmt"

const (
	MsgReservationNotFound = "Reservation not found"
	MsgHouseNotFound       = "House not found"
	MsgNoPayments          = "No payments found for this reservation"
	MsgNotOwner            = "Only the house owner can export the payment ledger"
)

func paidMessage(id string) string {
	return fmt.Sprintf("Payment processed successfully for Reservation ID: %s", id)
}
