// Package orders persists exchange orders and enforces their one-way status lifecycle.
package orders

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no order has the requested id.
	ErrNotFound = errors.New("orders: not found")
	// ErrInvalidTransition is returned when an already decided order is decided again.
	ErrInvalidTransition = errors.New("orders: invalid status transition")
)

// Status is the review state of an order.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
)

// Final reports whether no further transition is allowed from s.
func (s Status) Final() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s.Final()
}

// ProofKind tells how the payment proof was uploaded.
type ProofKind string

const (
	ProofPhoto    ProofKind = "photo"
	ProofDocument ProofKind = "document"
)

// Order is a submitted exchange request.
type Order struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Username  *string         `db:"username"`
	Address   string          `db:"ltc_address"`
	Code      string          `db:"psc_code"`
	Amount    decimal.Decimal `db:"amount"`
	Fee       decimal.Decimal `db:"fee"`
	Payout    decimal.Decimal `db:"payout"`
	Status    Status          `db:"status"`
	ProofRef  string          `db:"proof_ref"`
	ProofKind ProofKind       `db:"proof_kind"`
	CreatedMS int64           `db:"created_at"`
	DecidedMS *int64          `db:"decided_at"`
}

// CreatedAt returns the creation time in UTC.
func (o Order) CreatedAt() time.Time {
	return fromMillis(o.CreatedMS)
}

// DecidedAt returns the decision time, or the zero time while pending.
func (o Order) DecidedAt() time.Time {
	if o.DecidedMS == nil {
		return time.Time{}
	}
	return fromMillis(*o.DecidedMS)
}

// NewOrder carries the fields of a completed draft.
type NewOrder struct {
	UserID    int64
	Username  string
	Address   string
	Code      string
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Payout    decimal.Decimal
	ProofRef  string
	ProofKind ProofKind
}

// Owner identifies who receives the decision notification.
type Owner struct {
	UserID int64           `db:"user_id"`
	Payout decimal.Decimal `db:"payout"`
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
