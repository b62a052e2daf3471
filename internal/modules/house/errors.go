package house

const (
	MsgAlreadyInitialized = "House has already been initialized"
	MsgHouseNotFound      = "House not found"
	MsgNotOwner           = "Only the house owner can perform this action"
	MsgNoAvailableRooms   = "No available rooms in this house currently"
	MsgNameRequired       = "House name is required"
)
