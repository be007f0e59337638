package netutil

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"
)

// ShouldRetry reports whether a failed Bot API call may be repeated.
// Flood replies, refused or timed out connections and dial failures
// qualify. Cancellation and regular API errors do not.
func ShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if _, ok := RetryAfter(err); ok {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	// *url.Error and *net.OpError both unwrap to the underlying cause.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// RetryAfter returns the wait Telegram asked for in a 429 reply.
func RetryAfter(err error) (time.Duration, bool) {
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return floodWait(flood.RetryAfter), true
	}
	var floodPtr *tele.FloodError
	if errors.As(err, &floodPtr) && floodPtr != nil {
		return floodWait(floodPtr.RetryAfter), true
	}
	return 0, false
}

func floodWait(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
