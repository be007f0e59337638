package exchange

import "github.com/acksonp2c/pscbot/internal/orders"

// Button is an inline button that reports Key and Payload when tapped.
type Button struct {
	Text    string
	Key     string
	Payload string
}

// Action is an outbound message produced by the engine.
type Action interface {
	isAction()
}

// Reply is a Markdown text message to a user, with optional inline buttons.
type Reply struct {
	UserID  int64
	Text    string
	Buttons [][]Button
}

// MediaWithButtons re-sends an uploaded file to ChatID with a Markdown caption.
type MediaWithButtons struct {
	ChatID  int64
	Ref     string
	Kind    orders.ProofKind
	Caption string
	Buttons [][]Button
}

func (Reply) isAction()            {}
func (MediaWithButtons) isAction() {}
