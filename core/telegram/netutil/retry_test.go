package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

// opaqueWrap wraps without formatting the cause; FloodError values built
// outside telebot cannot render themselves.
type opaqueWrap struct{ err error }

func (w opaqueWrap) Error() string { return "send review" }
func (w opaqueWrap) Unwrap() error { return w.err }

func TestShouldRetry(t *testing.T) {
	assert.False(t, ShouldRetry(nil))
	assert.False(t, ShouldRetry(errors.New("bad request")))
	assert.False(t, ShouldRetry(context.Canceled))
	assert.False(t, ShouldRetry(&url.Error{Op: "Post", URL: "https://api.telegram.org", Err: context.Canceled}))
	assert.False(t, ShouldRetry(&tele.Error{Code: 403, Description: "Forbidden: bot was blocked by the user"}))
	assert.True(t, ShouldRetry(&net.OpError{Op: "dial", Err: errors.New("connection refused")}))
	assert.True(t, ShouldRetry(&url.Error{Op: "Post", URL: "https://api.telegram.org", Err: timeoutErr{}}))
	assert.True(t, ShouldRetry(&url.Error{Op: "Post", URL: "https://api.telegram.org",
		Err: &net.OpError{Op: "read", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}}))
	assert.True(t, ShouldRetry(tele.FloodError{RetryAfter: 3}))
	assert.True(t, ShouldRetry(&tele.FloodError{RetryAfter: 3}))
}

func TestRetryAfter(t *testing.T) {
	wait, ok := RetryAfter(tele.FloodError{RetryAfter: 7})
	assert.True(t, ok)
	assert.Equal(t, 7*time.Second, wait)

	wait, ok = RetryAfter(opaqueWrap{err: &tele.FloodError{RetryAfter: 2}})
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, wait)

	wait, ok = RetryAfter(tele.FloodError{RetryAfter: -1})
	assert.True(t, ok)
	assert.Zero(t, wait)

	_, ok = RetryAfter(errors.New("telegram: Too Many Requests (429)"))
	assert.False(t, ok)
	_, ok = RetryAfter(nil)
	assert.False(t, ok)
}
