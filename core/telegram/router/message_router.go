package router

import (
	"time"

	tg "github.com/acksonp2c/pscbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// Conversation is a per-user dialog that claims messages while active.
type Conversation interface {
	InProgress(userID int64) bool
	Handle(c tele.Context) error
}

// MessageOptions controls fallback behaviour for text and media updates.
type MessageOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownMedia tele.HandlerFunc
}

// MessageRoutes builds handlers for text, photo and document messages.
// Active conversations take precedence over command aliases and fallbacks.
func MessageRoutes(conv Conversation, reg *tg.Registry, opts MessageOptions) []tg.Route {
	inProgress := func(c tele.Context) bool {
		return conv != nil && c.Sender() != nil && conv.InProgress(c.Sender().ID)
	}

	textHandler := func(c tele.Context) error {
		start := time.Now()

		if inProgress(c) {
			return handleWithSummary(c, "conversation.text", start, func() error {
				return conv.Handle(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil && !cmd.AdminOnly {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	mediaHandler := func(c tele.Context) error {
		start := time.Now()
		if inProgress(c) {
			return handleWithSummary(c, "conversation.media", start, func() error {
				return conv.Handle(c)
			})
		}
		if opts.UnknownMedia != nil {
			return handleWithSummary(c, "unexpected_media", start, func() error {
				return opts.UnknownMedia(c)
			})
		}
		logHandlerSummary(c, "unexpected_media", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{Endpoint: tele.OnText, Handler: textHandler},
		{Endpoint: tele.OnPhoto, Handler: mediaHandler},
		{Endpoint: tele.OnDocument, Handler: mediaHandler},
	}
}
