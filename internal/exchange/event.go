package exchange

import "github.com/acksonp2c/pscbot/internal/orders"

// Callback keys and payloads bound to inline buttons.
const (
	KeyMenu    = "menu"
	KeyAccept  = "order_accept"
	KeyDecline = "order_decline"

	ChoiceBeginExchange = "exchange"
	ChoiceShowInfo      = "info"
)

// Decision is the admin's verdict on an order.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// MenuSelection is a tap on a main menu button.
type MenuSelection struct {
	UserID int64
	Choice string
}

// TextMessage is plain text sent by a user.
type TextMessage struct {
	UserID int64
	Text   string
}

// MediaMessage is a photo or document sent by a user.
type MediaMessage struct {
	UserID   int64
	Username string
	Ref      string
	Kind     orders.ProofKind
	MIME     string
}

// DecisionEvent is a tap on an accept or decline button.
type DecisionEvent struct {
	ActorID int64
	Action  Decision
	OrderID int64
}
