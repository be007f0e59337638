package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acksonp2c/pscbot/core/logger"
)

const orderColumns = `id, user_id, username, ltc_address, psc_code, amount, fee, payout,
	status, proof_ref, proof_kind, created_at, decided_at`

// Store persists orders through sqlx. It works with both the sqlite and the
// postgres driver; queries are written with ? and rebound per driver.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock overrides the clock used for created/decided timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore wraps an open database handle. The orders table must already exist.
func NewStore(db *sqlx.DB, opts ...StoreOption) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder inserts a pending order and returns its id.
func (s *Store) CreateOrder(ctx context.Context, in NewOrder) (int64, error) {
	if err := validateNew(in); err != nil {
		return 0, err
	}

	var username *string
	if u := strings.TrimSpace(in.Username); u != "" {
		username = &u
	}

	query := s.db.Rebind(`INSERT INTO orders
		(user_id, username, ltc_address, psc_code, amount, fee, payout, status, proof_ref, proof_kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	start := time.Now()
	var id int64
	err := s.db.QueryRowxContext(ctx, query,
		in.UserID,
		username,
		in.Address,
		in.Code,
		in.Amount.String(),
		in.Fee.String(),
		in.Payout.String(),
		string(StatusPending),
		in.ProofRef,
		string(in.ProofKind),
		toMillis(s.now()),
	).Scan(&id)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCOrders, slog.LevelError, "order.create",
			slog.String("status", "fail"),
			slog.Int64("user_id", in.UserID),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("insert order: %w", err)
	}

	logger.LogEvent(ctx, logger.SVCOrders, slog.LevelInfo, "order.create",
		slog.String("status", "ok"),
		slog.Int64("order_id", id),
		slog.Int64("user_id", in.UserID),
		slog.String("amount", in.Amount.String()),
		slog.String("proof_kind", string(in.ProofKind)),
		slog.Int64("elapsed_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return id, nil
}

// GetOrderOwner returns the owner and payout of an order.
func (s *Store) GetOrderOwner(ctx context.Context, id int64) (Owner, error) {
	var owner Owner
	err := s.db.GetContext(ctx, &owner, s.db.Rebind(`SELECT user_id, payout FROM orders WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Owner{}, ErrNotFound
	}
	if err != nil {
		return Owner{}, fmt.Errorf("get order owner %d: %w", id, err)
	}
	return owner, nil
}

// SetStatus moves a pending order to a final status. Orders that were
// already decided yield ErrInvalidTransition and stay untouched.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status) error {
	if !status.Final() {
		return fmt.Errorf("%w: target %q", ErrInvalidTransition, status)
	}

	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE orders SET status = ?, decided_at = ? WHERE id = ? AND status = ?`),
		string(status), toMillis(s.now()), id, string(StatusPending),
	)
	if err != nil {
		return fmt.Errorf("update order %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order %d: %w", id, err)
	}
	if n == 1 {
		logger.LogEvent(ctx, logger.SVCOrders, slog.LevelInfo, "order.status",
			slog.String("status", "ok"),
			slog.Int64("order_id", id),
			slog.String("order_status", string(status)),
		)
		return nil
	}

	var current Status
	err = s.db.GetContext(ctx, &current, s.db.Rebind(`SELECT status FROM orders WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read order %d: %w", id, err)
	}
	logger.LogEvent(ctx, logger.SVCOrders, slog.LevelWarn, "order.status",
		slog.String("status", "skip"),
		slog.Int64("order_id", id),
		slog.String("order_status", string(current)),
		slog.String("reason", "already_decided"),
	)
	return fmt.Errorf("%w: order %d is %s", ErrInvalidTransition, id, current)
}

// Get loads a single order.
func (s *Store) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := s.db.GetContext(ctx, &o, s.db.Rebind(`SELECT `+orderColumns+` FROM orders WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// ListByStatus returns up to limit orders with the given status, oldest first.
func (s *Store) ListByStatus(ctx context.Context, status Status, limit int) ([]Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("orders: unknown status %q", status)
	}
	if limit <= 0 {
		limit = 20
	}
	var list []Order
	err := s.db.SelectContext(ctx, &list,
		s.db.Rebind(`SELECT `+orderColumns+` FROM orders WHERE status = ? ORDER BY id ASC LIMIT ?`),
		string(status), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s orders: %w", strings.ToLower(string(status)), err)
	}
	return list, nil
}

func validateNew(in NewOrder) error {
	switch {
	case in.UserID == 0:
		return errors.New("orders: user id is required")
	case strings.TrimSpace(in.Address) == "":
		return errors.New("orders: address is required")
	case strings.TrimSpace(in.Code) == "":
		return errors.New("orders: code is required")
	case !in.Amount.IsPositive():
		return errors.New("orders: amount must be positive")
	case !in.Fee.Add(in.Payout).Equal(in.Amount):
		return errors.New("orders: fee and payout must add up to amount")
	}
	return nil
}
