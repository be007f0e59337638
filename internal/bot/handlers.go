package bot

import (
	"fmt"
	"log/slog"

	"github.com/acksonp2c/pscbot/core/logger"
	"github.com/acksonp2c/pscbot/core/telegram/callbacks"
	"github.com/acksonp2c/pscbot/core/telegram/commands"
	tghelpers "github.com/acksonp2c/pscbot/core/telegram/helpers"
	"github.com/acksonp2c/pscbot/core/telegram/keyboard"
	"github.com/acksonp2c/pscbot/core/telegram/middleware"
	"github.com/acksonp2c/pscbot/internal/exchange"
	"github.com/acksonp2c/pscbot/internal/orders"

	tele "gopkg.in/telebot.v4"
)

const pendingLimit = 20

func (a *App) register() error {
	a.registry.RegisterCommand("/start", commands.Command{
		Handler:     a.onStart,
		Description: "Hauptmenü öffnen",
	})
	a.registry.RegisterCommand("/cancel", commands.Command{
		Handler:     a.onCancel,
		Description: "Laufenden Exchange abbrechen",
	})
	a.registry.RegisterCommand("/pending", commands.Command{
		Handler:     a.onPending,
		Description: "Offene Anfragen anzeigen",
		AdminOnly:   true,
	})

	for key, h := range map[string]tele.HandlerFunc{
		exchange.KeyMenu:    a.onMenu,
		exchange.KeyAccept:  a.onDecision(exchange.DecisionAccept),
		exchange.KeyDecline: a.onDecision(exchange.DecisionDecline),
	} {
		if err := a.registry.RegisterCallback(key, h); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
	}
	return nil
}

func (a *App) onStart(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	return a.deliver(c, a.engine.Start(c.Sender().ID), false)
}

func (a *App) onCancel(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	return a.deliver(c, a.engine.Cancel(ctx, c.Sender().ID), false)
}

func (a *App) onPending(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	list, err := a.orders.ListByStatus(ctx, orders.StatusPending, pendingLimit)
	if err != nil {
		_ = tghelpers.SendMD(c, a.engine.Texts().Failure())
		return fmt.Errorf("list pending orders: %w", err)
	}
	return tghelpers.SendMD(c, a.engine.Texts().PendingList(list))
}

func (a *App) onMenu(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	actions, err := a.engine.HandleMenuSelection(ctx, exchange.MenuSelection{
		UserID: c.Sender().ID,
		Choice: callbacks.CallbackPayload(c),
	})
	return firstErr(err, a.deliver(c, actions, true))
}

func (a *App) onDecision(action exchange.Decision) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil {
			return nil
		}
		ctx := tghelpers.BuildContext(c)
		id, err := callbacks.PayloadInt64(c)
		if err != nil {
			logger.Warn(ctx, "tg", "decision.bad_payload",
				slog.String("payload", callbacks.CallbackPayload(c)),
			)
			return nil
		}

		actions, err := a.engine.HandleDecision(ctx, exchange.DecisionEvent{
			ActorID: c.Sender().ID,
			Action:  action,
			OrderID: id,
		})
		derr := a.deliver(c, actions, false)
		if err == nil && len(actions) > 0 {
			middleware.Count(c, "decision")
			a.clearButtons(c)
		}
		return firstErr(err, derr)
	}
}

// InProgress reports whether the sender has an open exchange draft.
func (a *App) InProgress(userID int64) bool {
	return a.engine.InProgress(userID)
}

// Handle feeds a text, photo or document message into the engine.
func (a *App) Handle(c tele.Context) error {
	msg, user := c.Message(), c.Sender()
	if msg == nil || user == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	var (
		actions []exchange.Action
		err     error
	)
	switch {
	case msg.Photo != nil:
		actions, err = a.engine.HandleMedia(ctx, exchange.MediaMessage{
			UserID:   user.ID,
			Username: user.Username,
			Ref:      msg.Photo.FileID,
			Kind:     orders.ProofPhoto,
		})
	case msg.Document != nil:
		actions, err = a.engine.HandleMedia(ctx, exchange.MediaMessage{
			UserID:   user.ID,
			Username: user.Username,
			Ref:      msg.Document.FileID,
			Kind:     orders.ProofDocument,
			MIME:     msg.Document.MIME,
		})
	default:
		actions, err = a.engine.HandleText(ctx, exchange.TextMessage{UserID: user.ID, Text: msg.Text})
	}
	if msg.Photo != nil || msg.Document != nil {
		middleware.Count(c, "proof")
	}
	return firstErr(err, a.deliver(c, actions, false))
}

// clearButtons removes the accept and decline buttons from the reviewed message.
func (a *App) clearButtons(c tele.Context) {
	msg := c.Message()
	if msg == nil {
		return
	}
	ctx := tghelpers.BuildContext(c)
	api := a.api(c)
	err := tghelpers.Enqueue(ctx, "edit.markup", "editMessageReplyMarkup", func() error {
		_, err := api.EditReplyMarkup(msg, keyboard.RemoveInline())
		return err
	})
	if err != nil {
		logger.Warn(ctx, "tg", "decision.markup_failed", slog.String("err", err.Error()))
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
