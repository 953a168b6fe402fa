package tripletriad

// Notice is one outbound payload for a participant: a line of text, a board view, or both.
type Notice struct {
	Text string `json:"text,omitempty"`
	View *View  `json:"view,omitempty"`
}

// Notifier delivers notices. Delivery is best effort and must not block.
type Notifier interface {
	Notify(playerID string, notice Notice)
}
