package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

// State is the step a draft is waiting on.
type State int

const (
	StateAwaitingAddress State = iota + 1
	StateAwaitingCode
	StateAwaitingAmount
	StateAwaitingProof
)

func (s State) String() string {
	switch s {
	case StateAwaitingAddress:
		return "awaiting_address"
	case StateAwaitingCode:
		return "awaiting_code"
	case StateAwaitingAmount:
		return "awaiting_amount"
	case StateAwaitingProof:
		return "awaiting_proof"
	}
	return "unknown"
}

// Draft is an exchange request still being filled in. Fields are set in
// state order: Address, then Code, then Amount with Fee and Payout.
type Draft struct {
	UserID    int64
	State     State
	Address   string
	Code      string
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Payout    decimal.Decimal
	UpdatedAt time.Time
}
