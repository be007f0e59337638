package helpers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/acksonp2c/pscbot/core/logger"
	"github.com/acksonp2c/pscbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// Sender is the subset of tele.API used to reach chats other than the current one.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

// Enqueue runs fn through the shared dispatcher, or inline when none is wired.
// A saturated or closed queue falls back to running fn synchronously.
func Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}

	if err := disp.Enqueue(ctx, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("endpoint", endpoint),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	return Enqueue(BuildContext(c), "send.text", "sendMessage", func() error {
		if sendOpts != nil {
			return c.Send(text, sendOpts)
		}
		return c.Send(text)
	})
}

// SendMD sends a message with Markdown parse mode and optional reply markup.
func SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return SendText(c, text, markdownOpts(markup))
}

// EditOrSendMD tries to edit the message (Markdown) or sends a new one if edit fails.
func EditOrSendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	opts := markdownOpts(markup)
	return Enqueue(BuildContext(c), "edit.text", "editMessageText", func() error {
		return c.EditOrSend(text, opts)
	})
}

// SendTo delivers what to chatID via s using the shared dispatcher.
func SendTo(ctx context.Context, s Sender, chatID int64, action, endpoint string, what interface{}, opts ...interface{}) error {
	return Enqueue(ctx, action, endpoint, func() error {
		_, err := s.Send(tele.ChatID(chatID), what, opts...)
		return err
	})
}

func markdownOpts(markup []*tele.ReplyMarkup) *tele.SendOptions {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: rm}
}
