package websocket

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventClock Event = "clock"
	EventEnded Event = "ended"
	EventError Event = "error"
)

// ClockUpdate is pushed once per second while the session is active.
type ClockUpdate struct {
	Event            Event `json:"event"`
	RemainingSeconds int   `json:"remaining_seconds"`
	AnsweredCount    int   `json:"answered_count"`
}

// EndedNotice is the final message once the session is no longer active.
type EndedNotice struct {
	Event Event `json:"event"`
}

// ErrorResponse reports a stream-level failure before closing.
type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
