package router

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/acksonp2c/pscbot/core/telegram"
	"github.com/acksonp2c/pscbot/core/telegram/callbacks"
	"github.com/acksonp2c/pscbot/core/telegram/commands"
)

type fakeConversation struct {
	active  map[int64]bool
	handled int
}

func (f *fakeConversation) InProgress(userID int64) bool { return f.active[userID] }
func (f *fakeConversation) Handle(tele.Context) error {
	f.handled++
	return nil
}

func routeFor(routes []tg.Route, endpoint any) tele.HandlerFunc {
	for _, r := range routes {
		if r.Endpoint == endpoint {
			return r.Handler
		}
	}
	return nil
}

func TestCallbackRouteDispatchesByKey(t *testing.T) {
	reg := tg.NewRegistry()
	var payload string
	require.NoError(t, reg.RegisterCallback("order_accept", func(c tele.Context) error {
		payload = callbacks.CallbackPayload(c)
		return nil
	}))
	var missing int
	route := CallbackRoute(reg, CallbackOptions{NotFound: func(tele.Context) error { missing++; return nil }})
	assert.Equal(t, tele.OnCallback, route.Endpoint)

	c := newFakeContext(cbUpdate(1, callbacks.Data("order_accept", "42")))
	require.NoError(t, route.Handler(c))
	assert.Equal(t, "42", payload)
	assert.Equal(t, 1, c.responded)

	require.NoError(t, route.Handler(newFakeContext(cbUpdate(1, callbacks.Data("nope", "")))))
	assert.Equal(t, 1, missing)
}

func TestCommandRoutesAdminOnly(t *testing.T) {
	reg := tg.NewRegistry()
	var calls int
	reg.RegisterCommand("/pending", commands.Command{
		Handler:     func(tele.Context) error { calls++; return nil },
		Description: "pending",
		AdminOnly:   true,
	})
	routes := CommandRoutes(reg, CommandRouteOptions{AdminID: 99})
	h := routeFor(routes, "/pending")
	require.NotNil(t, h)

	require.NoError(t, h(newFakeContext(textUpdate(5, "/pending"))))
	assert.Equal(t, 0, calls)
	require.NoError(t, h(newFakeContext(textUpdate(99, "/pending"))))
	assert.Equal(t, 1, calls)
}

func TestMessageRoutesPreferConversation(t *testing.T) {
	conv := &fakeConversation{active: map[int64]bool{1: true}}
	var unknownText, unknownMedia int
	routes := MessageRoutes(conv, tg.NewRegistry(), MessageOptions{
		UnknownText:  func(tele.Context) error { unknownText++; return nil },
		UnknownMedia: func(tele.Context) error { unknownMedia++; return nil },
	})
	text := routeFor(routes, tele.OnText)
	photo := routeFor(routes, tele.OnPhoto)
	require.NotNil(t, text)
	require.NotNil(t, photo)
	require.NotNil(t, routeFor(routes, tele.OnDocument))

	require.NoError(t, text(newFakeContext(textUpdate(1, "LTC1abc"))))
	require.NoError(t, photo(newFakeContext(photoUpdate(1))))
	assert.Equal(t, 2, conv.handled)

	require.NoError(t, text(newFakeContext(textUpdate(2, "hello"))))
	require.NoError(t, photo(newFakeContext(photoUpdate(2))))
	assert.Equal(t, 1, unknownText)
	assert.Equal(t, 1, unknownMedia)
}

func TestMessageRoutesCommandAlias(t *testing.T) {
	reg := tg.NewRegistry()
	var started int
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { started++; return nil },
		Description: "menu",
		Aliases:     []string{"menu"},
	})
	text := routeFor(MessageRoutes(nil, reg, MessageOptions{}), tele.OnText)
	require.NoError(t, text(newFakeContext(textUpdate(3, "menu"))))
	require.NoError(t, text(newFakeContext(textUpdate(3, "something else"))))
	assert.Equal(t, 1, started)
}

type codedErr struct{}

func (codedErr) Error() string { return "storage down" }
func (codedErr) Code() string  { return "storage failure" }

type plainErr struct{}

func (*plainErr) Error() string { return "plain" }

func TestDeriveErrorCode(t *testing.T) {
	assert.Equal(t, "", deriveErrorCode(nil))
	assert.Equal(t, "STORAGE_FAILURE", deriveErrorCode(fmt.Errorf("wrap: %w", codedErr{})))
	assert.Equal(t, "PLAINERR", deriveErrorCode(&plainErr{}))
	assert.Equal(t, "ERRORSTRING", deriveErrorCode(errors.New("x")))
}

func TestNormalizeHandlerName(t *testing.T) {
	assert.Equal(t, "pending", normalizeHandlerName("/Pending"))
	assert.Equal(t, "unknown", normalizeHandlerName(" "))
	assert.Equal(t, "order_accept", normalizeHandlerName("order accept"))
}
