package bot

import (
	"github.com/acksonp2c/pscbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

var _ ui.FallbackProvider = fallbacks{}

// fallbacks decides what happens to updates nothing else claimed. Stray text
// and media are dropped; a stale button brings the main menu back.
type fallbacks struct {
	app *App
}

func (fallbacks) UnknownText() tele.HandlerFunc  { return nil }
func (fallbacks) UnknownMedia() tele.HandlerFunc { return nil }

func (f fallbacks) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		if f.app == nil || c.Sender() == nil {
			return nil
		}
		return f.app.deliver(c, f.app.engine.Start(c.Sender().ID), false)
	}
}
