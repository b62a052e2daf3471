package guest

import "fmt"

const (
	MsgGuestNotFound   = "Guest not found"
	MsgRequestNotFound = "Guest request not found"
	MsgNoRequests      = "No requests found for this guest"
	MsgNameRequired    = "Guest name is required"
	MsgDetailsRequired = "Request details are required"
	MsgStatusRequired  = "Status is required"
)

func deletedMessage(id string) string {
	return fmt.Sprintf("Guest with ID: %s deleted successfully", id)
}
