package helpers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/acksonp2c/pscbot/core/telegram/sender"
)

type recordingSender struct {
	mu   sync.Mutex
	to   []string
	what []interface{}
	err  error
}

func (r *recordingSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.to = append(r.to, to.Recipient())
	r.what = append(r.what, what)
	return &tele.Message{}, r.err
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.to)
}

func TestSendToRunsInlineWithoutDispatcher(t *testing.T) {
	SetDispatcher(nil)
	s := &recordingSender{err: errors.New("blocked")}

	err := SendTo(context.Background(), s, 42, "send.text", "sendMessage", "hi")
	require.Error(t, err)
	assert.Equal(t, []string{"42"}, s.to)
	assert.Equal(t, []interface{}{"hi"}, s.what)
}

func TestSendToUsesDispatcher(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{Workers: 1, QueueSize: 4})
	SetDispatcher(d)
	t.Cleanup(func() {
		SetDispatcher(nil)
		d.Close()
	})

	s := &recordingSender{}
	require.NoError(t, SendTo(context.Background(), s, 7, "send.text", "sendMessage", "queued"))
	assert.Eventually(t, func() bool { return s.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestEnqueueFallsBackWhenClosed(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{Workers: 1})
	d.Close()
	SetDispatcher(d)
	t.Cleanup(func() { SetDispatcher(nil) })

	ran := false
	require.NoError(t, Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}
