package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineButtonsRows(t *testing.T) {
	m := InlineButtonsRows(
		[]InlineBtn{{Text: "Accept", Unique: "order_accept", Data: "7"}, {Text: "Decline", Unique: "order_decline", Data: "7"}},
		nil,
		[]InlineBtn{{Text: "Info", Unique: "menu", Data: "info"}},
	)
	require.NotNil(t, m)
	require.Len(t, m.InlineKeyboard, 2)
	require.Len(t, m.InlineKeyboard[0], 2)
	assert.Equal(t, "Accept", m.InlineKeyboard[0][0].Text)
	assert.Equal(t, "order_accept", m.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "order_decline", m.InlineKeyboard[0][1].Unique)
	assert.Equal(t, "menu", m.InlineKeyboard[1][0].Unique)
}

func TestInlineButtonsRowsEmpty(t *testing.T) {
	assert.Nil(t, InlineButtonsRows())
	assert.Nil(t, InlineButtonsRows(nil, []InlineBtn{}))
}
