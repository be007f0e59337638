package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Data builds the callback data Telebot produces for an inline button with
// the given unique key and payload.
func Data(unique, payload string) string {
	if payload == "" {
		return "\f" + unique
	}
	return "\f" + unique + "|" + payload
}

// ParseCallbackData parses Telebot's \f<unique>|<payload> encoding.
// Returns unique and payload (may be empty).
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	return ParseRaw(cb.Data)
}

// ParseRaw splits raw callback data into unique key and payload.
func ParseRaw(raw string) (string, string) {
	raw = strings.TrimPrefix(raw, "\f")
	parts := strings.SplitN(raw, "|", 2)
	unique := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return unique, payload
}

// CallbackKey returns cb.Unique if present; otherwise parses from Data.
func CallbackKey(c tele.Context) string {
	k, _ := ParseCallbackData(c.Callback())
	return k
}

// CallbackPayload returns payload (after '|') parsed from Data.
func CallbackPayload(c tele.Context) string {
	// cb.Unique is empty when routed through the generic OnCallback handler
	_, payload := ParseCallbackData(c.Callback())
	return payload
}
