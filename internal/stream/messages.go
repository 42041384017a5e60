package stream

// Message types sent to clients.
const (
	TypeStars   = "stars"
	TypeSegment = "segment"
	TypeStats   = "stats"
	TypeReset   = "reset"
)

// Message is the JSON envelope of everything the hub sends.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}
