package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/acksonp2c/pscbot/core/logger"
	tghelpers "github.com/acksonp2c/pscbot/core/telegram/helpers"
	"github.com/acksonp2c/pscbot/core/telegram/keyboard"
	"github.com/acksonp2c/pscbot/core/telegram/middleware"
	"github.com/acksonp2c/pscbot/internal/exchange"
	"github.com/acksonp2c/pscbot/internal/orders"

	tele "gopkg.in/telebot.v4"
)

// deliver sends engine actions in order. Replies addressed to the current chat
// go through c (edited in place when edit is set); everything else is sent via
// the Bot API. Delivery is best effort: every action is attempted.
func (a *App) deliver(c tele.Context, actions []exchange.Action, edit bool) error {
	if len(actions) == 0 {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	var errs []error
	for _, act := range actions {
		var err error
		switch act := act.(type) {
		case exchange.Reply:
			err = a.sendReply(ctx, c, act, edit)
		case exchange.MediaWithButtons:
			err = a.sendMedia(ctx, c, act)
		}
		if err != nil {
			logger.Warn(ctx, "tg", "deliver.failed",
				slog.String("action", actionName(act)),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) sendReply(ctx context.Context, c tele.Context, r exchange.Reply, edit bool) error {
	markup := inlineMarkup(r.Buttons)
	if chat := c.Chat(); chat != nil && chat.ID == r.UserID {
		if edit {
			return tghelpers.EditOrSendMD(c, r.Text, markup)
		}
		return tghelpers.SendMD(c, r.Text, markup)
	}
	return tghelpers.SendTo(ctx, a.api(c), r.UserID, "send.text", "sendMessage", r.Text,
		&tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup})
}

func (a *App) sendMedia(ctx context.Context, c tele.Context, m exchange.MediaWithButtons) error {
	var (
		what     interface{}
		endpoint string
	)
	switch m.Kind {
	case orders.ProofDocument:
		what = &tele.Document{File: tele.File{FileID: m.Ref}, Caption: m.Caption}
		endpoint = "sendDocument"
	default:
		what = &tele.Photo{File: tele.File{FileID: m.Ref}, Caption: m.Caption}
		endpoint = "sendPhoto"
	}
	err := tghelpers.SendTo(ctx, a.api(c), m.ChatID, "send.media", endpoint, what,
		&tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: inlineMarkup(m.Buttons)})
	if err == nil {
		middleware.Count(c, "review")
	}
	return err
}

func inlineMarkup(rows [][]exchange.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]keyboard.InlineBtn, 0, len(rows))
	for _, row := range rows {
		btns := make([]keyboard.InlineBtn, len(row))
		for i, b := range row {
			btns[i] = keyboard.InlineBtn{Text: b.Text, Unique: b.Key, Data: b.Payload}
		}
		out = append(out, btns)
	}
	return keyboard.InlineButtonsRows(out...)
}

func actionName(a exchange.Action) string {
	switch a.(type) {
	case exchange.Reply:
		return "reply"
	case exchange.MediaWithButtons:
		return "media"
	}
	return "unknown"
}
