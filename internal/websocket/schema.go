package websocket

// Events (server → client).

type Event string

const (
	EventStatus   Event = "status"   // snapshot on connect
	EventProgress Event = "progress" // worker progress updates
	EventError    Event = "error"
)

// StatusResponse is the snapshot sent immediately after the upgrade so the
// client does not have to wait for the next worker update.
type StatusResponse struct {
	Event   Event  `json:"event"`
	SheetID string `json:"sheet_id"`
	Status  string `json:"status"`
}

// ProgressResponse wraps a worker progress event for the client.
type ProgressResponse struct {
	Event    Event  `json:"event"`
	SheetID  string `json:"sheet_id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
