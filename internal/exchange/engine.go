package exchange

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/acksonp2c/pscbot/core/logger"
	"github.com/acksonp2c/pscbot/core/state"
	"github.com/acksonp2c/pscbot/internal/orders"
)

// OrderStore is the persistence the engine needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, in orders.NewOrder) (int64, error)
	GetOrderOwner(ctx context.Context, id int64) (orders.Owner, error)
	SetStatus(ctx context.Context, id int64, status orders.Status) error
}

// Options configures NewEngine.
type Options struct {
	AdminID int64
	Orders  OrderStore
	// Drafts is the session store; when nil a new one is created with DraftTTL.
	Drafts     *state.Store[Draft]
	DraftTTL   time.Duration
	Validators Validators
	Texts      Texts
	Now        func() time.Time
}

// Engine runs the exchange conversation for every user.
type Engine struct {
	adminID  int64
	orders   OrderStore
	drafts   *state.Store[Draft]
	locks    *state.KeyedMutex
	validate Validators
	texts    Texts
	now      func() time.Time
}

// NewEngine validates opts and builds an Engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.AdminID == 0 {
		return nil, errors.New("exchange: admin id is required")
	}
	if opts.Orders == nil {
		return nil, errors.New("exchange: order store is required")
	}
	drafts := opts.Drafts
	if drafts == nil {
		drafts = state.NewStore[Draft](state.WithTTL(opts.DraftTTL))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		adminID:  opts.AdminID,
		orders:   opts.Orders,
		drafts:   drafts,
		locks:    state.NewKeyedMutex(),
		validate: opts.Validators.withDefaults(),
		texts:    opts.Texts,
		now:      now,
	}, nil
}

// Texts exposes the renderer so adapters can reuse the same wording.
func (e *Engine) Texts() Texts { return e.texts }

// AdminID is the only user allowed to decide orders.
func (e *Engine) AdminID() int64 { return e.adminID }

// InProgress reports whether userID has a live draft.
func (e *Engine) InProgress(userID int64) bool {
	_, ok := e.drafts.Get(userID)
	return ok
}

// Draft returns a copy of the user's live draft.
func (e *Engine) Draft(userID int64) (Draft, bool) {
	return e.drafts.Get(userID)
}

// Start returns the welcome message with the main menu. It leaves any draft untouched.
func (e *Engine) Start(userID int64) []Action {
	return []Action{Reply{UserID: userID, Text: e.texts.Welcome(), Buttons: e.texts.MenuButtons()}}
}

// HandleMenuSelection starts a fresh draft or shows the info text.
func (e *Engine) HandleMenuSelection(ctx context.Context, ev MenuSelection) ([]Action, error) {
	switch ev.Choice {
	case ChoiceBeginExchange:
		unlock := e.locks.Lock(ev.UserID)
		defer unlock()

		_, replaced := e.drafts.Get(ev.UserID)
		e.putDraft(Draft{UserID: ev.UserID, State: StateAwaitingAddress})
		e.logTransition(ctx, ev.UserID, "draft.begin", StateAwaitingAddress, slog.Bool("replaced", replaced))
		return []Action{Reply{UserID: ev.UserID, Text: e.texts.AskAddress()}}, nil
	case ChoiceShowInfo:
		return []Action{Reply{UserID: ev.UserID, Text: e.texts.Info()}}, nil
	}
	logger.LogEvent(ctx, logger.SVCExchange, slog.LevelDebug, "menu.ignored",
		slog.Int64("user_id", ev.UserID),
		slog.String("reason", "unknown_choice"),
	)
	return nil, nil
}

// HandleText advances the draft by one step. Text without a draft, and text
// while waiting for the payment proof, is ignored.
func (e *Engine) HandleText(ctx context.Context, ev TextMessage) ([]Action, error) {
	unlock := e.locks.Lock(ev.UserID)
	defer unlock()

	d, ok := e.drafts.Get(ev.UserID)
	if !ok {
		return nil, nil
	}
	// address and code are kept exactly as typed
	text := ev.Text
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	switch d.State {
	case StateAwaitingAddress:
		if err := e.validate.Address(text); err != nil {
			e.logRejected(ctx, d, err)
			return e.reply(ev.UserID, e.texts.InvalidAddress()), nil
		}
		d.Address = text
		d.State = StateAwaitingCode
		e.putDraft(d)
		e.logTransition(ctx, d.UserID, "draft.address", d.State, slog.String("address", logger.Mask(text, 4)))
		return e.reply(ev.UserID, e.texts.AskCode()), nil

	case StateAwaitingCode:
		if err := e.validate.Code(text); err != nil {
			e.logRejected(ctx, d, err)
			return e.reply(ev.UserID, e.texts.InvalidCode()), nil
		}
		d.Code = text
		d.State = StateAwaitingAmount
		e.putDraft(d)
		e.logTransition(ctx, d.UserID, "draft.code", d.State, slog.String("code", logger.Mask(text, 2)))
		return e.reply(ev.UserID, e.texts.AskAmount()), nil

	case StateAwaitingAmount:
		amount, err := ParseAmount(text)
		if err != nil {
			e.logRejected(ctx, d, err)
			return e.reply(ev.UserID, e.texts.InvalidAmount()), nil
		}
		d.Amount = amount
		d.Fee, d.Payout = Split(amount)
		d.State = StateAwaitingProof
		e.putDraft(d)
		e.logTransition(ctx, d.UserID, "draft.amount", d.State,
			slog.String("amount", d.Amount.String()),
			slog.String("fee", d.Fee.String()),
		)
		return e.reply(ev.UserID, e.texts.Summary(d)), nil
	}
	return nil, nil
}

// HandleMedia turns a draft waiting for proof into a pending order and
// produces the user confirmation and the admin review request. When the
// order cannot be stored the draft is kept so the user can resend the proof.
func (e *Engine) HandleMedia(ctx context.Context, ev MediaMessage) ([]Action, error) {
	unlock := e.locks.Lock(ev.UserID)
	defer unlock()

	d, ok := e.drafts.Get(ev.UserID)
	if !ok || d.State != StateAwaitingProof {
		return nil, nil
	}
	if err := e.validate.Proof(ev); err != nil {
		e.logRejected(ctx, d, err)
		return e.reply(ev.UserID, e.texts.InvalidProof()), nil
	}

	id, err := e.orders.CreateOrder(ctx, orders.NewOrder{
		UserID:    d.UserID,
		Username:  ev.Username,
		Address:   d.Address,
		Code:      d.Code,
		Amount:    d.Amount,
		Fee:       d.Fee,
		Payout:    d.Payout,
		ProofRef:  ev.Ref,
		ProofKind: ev.Kind,
	})
	if err != nil {
		// keep the draft untouched but refresh its idle timer
		e.putDraft(d)
		return e.reply(ev.UserID, e.texts.Failure()), storageError("create_order", err)
	}
	e.drafts.Delete(ev.UserID)

	logger.LogEvent(ctx, logger.SVCExchange, slog.LevelInfo, "draft.submitted",
		slog.Int64("user_id", d.UserID),
		slog.Int64("order_id", id),
		slog.String("proof_kind", string(ev.Kind)),
	)
	return []Action{
		Reply{UserID: ev.UserID, Text: e.texts.Submitted()},
		MediaWithButtons{
			ChatID:  e.adminID,
			Ref:     ev.Ref,
			Kind:    ev.Kind,
			Caption: e.texts.AdminReview(id, d, ev.Username),
			Buttons: e.texts.DecisionButtons(id),
		},
	}, nil
}

// HandleDecision applies the admin's verdict. Decisions from anyone else and
// decisions on unknown orders are dropped without a reply.
func (e *Engine) HandleDecision(ctx context.Context, ev DecisionEvent) ([]Action, error) {
	attrs := []slog.Attr{
		slog.Int64("actor_id", ev.ActorID),
		slog.Int64("order_id", ev.OrderID),
		slog.String("action", string(ev.Action)),
	}
	if ev.ActorID != e.adminID {
		logger.LogEvent(ctx, logger.SVCExchange, slog.LevelWarn, "decision.ignored",
			append(attrs, slog.String("reason", "unauthorized"))...)
		return nil, nil
	}

	var status orders.Status
	switch ev.Action {
	case DecisionAccept:
		status = orders.StatusAccepted
	case DecisionDecline:
		status = orders.StatusDeclined
	default:
		logger.LogEvent(ctx, logger.SVCExchange, slog.LevelDebug, "decision.ignored",
			append(attrs, slog.String("reason", "unknown_action"))...)
		return nil, nil
	}

	owner, err := e.orders.GetOrderOwner(ctx, ev.OrderID)
	if errors.Is(err, orders.ErrNotFound) {
		logger.LogEvent(ctx, logger.SVCExchange, slog.LevelDebug, "decision.ignored",
			append(attrs, slog.String("reason", "not_found"))...)
		return nil, nil
	}
	if err != nil {
		return e.reply(e.adminID, e.texts.Failure()), storageError("get_order_owner", err)
	}

	err = e.orders.SetStatus(ctx, ev.OrderID, status)
	switch {
	case errors.Is(err, orders.ErrInvalidTransition):
		logger.LogEvent(ctx, logger.SVCExchange, slog.LevelInfo, "decision.ignored",
			append(attrs, slog.String("reason", "already_decided"))...)
		return e.reply(e.adminID, e.texts.AlreadyDecided(ev.OrderID)), nil
	case errors.Is(err, orders.ErrNotFound):
		return nil, nil
	case err != nil:
		return e.reply(e.adminID, e.texts.Failure()), storageError("set_status", err)
	}

	logger.LogEvent(ctx, logger.SVCExchange, slog.LevelInfo, "decision.applied",
		append(attrs, slog.String("order_status", string(status)))...)

	ownerText := e.texts.OwnerDeclined()
	if status == orders.StatusAccepted {
		ownerText = e.texts.OwnerAccepted(FormatAmount(owner.Payout))
	}
	return []Action{
		Reply{UserID: owner.UserID, Text: ownerText},
		Reply{UserID: e.adminID, Text: e.texts.AdminDecided(ev.OrderID, status)},
	}, nil
}

// Cancel drops the user's draft.
func (e *Engine) Cancel(ctx context.Context, userID int64) []Action {
	unlock := e.locks.Lock(userID)
	defer unlock()

	if !e.drafts.Delete(userID) {
		return e.reply(userID, e.texts.NothingToCancel())
	}
	logger.LogEvent(ctx, logger.SVCExchange, slog.LevelInfo, "draft.cancelled",
		slog.Int64("user_id", userID),
	)
	return e.reply(userID, e.texts.Cancelled())
}

// Sweep drops expired drafts and returns how many were removed.
func (e *Engine) Sweep() int {
	return e.drafts.Sweep()
}

// RunSweeper expires idle drafts every interval until ctx is done.
func (e *Engine) RunSweeper(ctx context.Context, interval time.Duration) {
	e.drafts.RunSweeper(ctx, interval, func(n int) {
		logger.LogEvent(ctx, logger.SVCExchange, slog.LevelInfo, "draft.expired",
			slog.Int("count", n),
		)
	})
}

func (e *Engine) putDraft(d Draft) {
	d.UpdatedAt = e.now()
	e.drafts.Put(d.UserID, d)
}

func (e *Engine) reply(userID int64, text string) []Action {
	return []Action{Reply{UserID: userID, Text: text}}
}

func (e *Engine) logTransition(ctx context.Context, userID int64, event string, to State, attrs ...slog.Attr) {
	base := []slog.Attr{
		slog.Int64("user_id", userID),
		slog.String("state", to.String()),
	}
	logger.LogEvent(ctx, logger.SVCExchange, slog.LevelDebug, event, append(base, attrs...)...)
}

func (e *Engine) logRejected(ctx context.Context, d Draft, err error) {
	logger.LogEvent(ctx, logger.SVCExchange, slog.LevelDebug, "draft.rejected",
		slog.Int64("user_id", d.UserID),
		slog.String("state", d.State.String()),
		slog.String("err_code", string(KindOf(err))),
		slog.String("err", err.Error()),
	)
}
