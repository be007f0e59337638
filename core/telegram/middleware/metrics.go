package middleware

import (
	"log/slog"
	"sort"

	tele "gopkg.in/telebot.v4"
)

const countersKey = "metrics.counters"

// Counters summarises what a handler did with one update.
type Counters struct {
	Messages int
	Edits    int
	Media    int
	Keyboard bool
	// Events counts named domain steps, e.g. "proof" or "decision".
	Events map[string]int
}

// EventAttrs renders Events as a sorted log group, or nothing when empty.
func (m Counters) EventAttrs() []slog.Attr {
	if len(m.Events) == 0 {
		return nil
	}
	names := make([]string, 0, len(m.Events))
	for name := range m.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, slog.Int(name, m.Events[name]))
	}
	return []slog.Attr{slog.Group("events", args...)}
}

func counters(c tele.Context) *Counters {
	if m, ok := c.Get(countersKey).(*Counters); ok && m != nil {
		return m
	}
	m := &Counters{}
	c.Set(countersKey, m)
	return m
}

// Count records one occurrence of event for the update handled by c.
func Count(c tele.Context, event string) {
	if c == nil || event == "" {
		return
	}
	m := counters(c)
	if m.Events == nil {
		m.Events = make(map[string]int)
	}
	m.Events[event]++
}

// GetCounters returns a snapshot of the counters collected for c.
func GetCounters(c tele.Context) Counters {
	if c == nil {
		return Counters{}
	}
	if m, ok := c.Get(countersKey).(*Counters); ok && m != nil {
		out := *m
		if len(m.Events) > 0 {
			out.Events = make(map[string]int, len(m.Events))
			for k, v := range m.Events {
				out.Events[k] = v
			}
		}
		return out
	}
	return Counters{}
}

// metricsContext wraps tele.Context to count outgoing messages by kind.
type metricsContext struct{ tele.Context }

func (m metricsContext) record(edit bool, what interface{}, opts []interface{}) {
	n := counters(m.Context)
	switch {
	case edit:
		n.Edits++
	case isMedia(what):
		n.Media++
	default:
		n.Messages++
	}
	if hasKeyboard(opts) {
		n.Keyboard = true
	}
}

func isMedia(what interface{}) bool {
	switch what.(type) {
	case *tele.Photo, *tele.Document, *tele.Video, *tele.Animation, tele.Album:
		return true
	}
	return false
}

func hasKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func (m metricsContext) Send(what interface{}, opts ...interface{}) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.record(false, what, opts)
	}
	return err
}

func (m metricsContext) Reply(what interface{}, opts ...interface{}) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.record(false, what, opts)
	}
	return err
}

func (m metricsContext) Edit(what interface{}, opts ...interface{}) error {
	err := m.Context.Edit(what, opts...)
	if err == nil {
		m.record(true, what, opts)
	}
	return err
}

// EditOrSend counts as an edit only when telebot edits, i.e. on callbacks.
func (m metricsContext) EditOrSend(what interface{}, opts ...interface{}) error {
	err := m.Context.EditOrSend(what, opts...)
	if err == nil {
		m.record(m.Callback() != nil, what, opts)
	}
	return err
}

func (m metricsContext) EditOrReply(what interface{}, opts ...interface{}) error {
	err := m.Context.EditOrReply(what, opts...)
	if err == nil {
		m.record(m.Callback() != nil, what, opts)
	}
	return err
}

// MessageMetricsMiddleware resets the counters and wraps the context so
// outgoing messages are tallied.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(countersKey, &Counters{})
		return next(metricsContext{Context: c})
	}
}
