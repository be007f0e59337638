package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/acksonp2c/pscbot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Menu", Aliases: []string{"menu"}})
	reg.RegisterCommand("/pending", commands.Command{Handler: noop, Description: "Pending orders", AdminOnly: true})
	reg.RegisterCommand("cancel", commands.Command{Handler: noop, Description: "no slash"})
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "duplicate"})

	require.Len(t, reg.Commands(), 2)
	assert.Equal(t, "Menu", reg.Commands()["/start"].Description)

	visible := reg.ListCommands(true)
	require.Len(t, visible, 1)
	assert.Equal(t, "/start", visible[0].Text)
	assert.Len(t, reg.ListCommands(false), 2)
}

func TestRegistryLookupCommand(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Menu", Aliases: []string{"menu"}})

	for _, text := range []string{"/start", "/START@psc_bot", "/start now", "start", "menu", "/menu"} {
		key, _, ok := reg.LookupCommand(text)
		assert.True(t, ok, text)
		assert.Equal(t, "/start", key, text)
	}
	_, _, ok := reg.LookupCommand("   ")
	assert.False(t, ok)
	_, _, ok = reg.LookupCommand("hello")
	assert.False(t, ok)
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("menu", noop))
	require.Error(t, reg.RegisterCallback("menu", noop))
	require.Error(t, reg.RegisterCallback("", noop))
	require.NoError(t, reg.RegisterCallback("order_accept", noop))

	_, ok := reg.GetCallback("menu")
	assert.True(t, ok)
	_, ok = reg.GetCallback("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"menu", "order_accept"}, reg.ListCallbacks())
	assert.NotNil(t, reg.CallbackNotFound())
}

func TestBuildPoller(t *testing.T) {
	p := BuildPoller(PollerOptions{RunMode: "Webhook", Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://example.org/hook"}})
	wh, ok := p.(*tele.Webhook)
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0:8443", wh.Listen)
	assert.Equal(t, "https://example.org/hook", wh.Endpoint.PublicURL)

	lp, ok := BuildPoller(PollerOptions{RunMode: "longpoll"}).(*tele.LongPoller)
	require.True(t, ok)
	assert.Equal(t, 10, int(lp.Timeout.Seconds()))
}
