package request

// EventRequest is the request body for submitting a raw issue
type EventRequest struct {
	Player string `json:"player"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// MoveRequest is the request body for firing at a coordinate
type MoveRequest struct {
	Player     string `json:"player"`
	Coordinate string `json:"coordinate"`
}

// ResetRequest is the request body for an admin reset
type ResetRequest struct {
	Actor string `json:"actor"`
}

// BotMoveRequest is the request body for an autopilot move
type BotMoveRequest struct {
	Player   string `json:"player"`
	Strategy string `json:"strategy"`
}
