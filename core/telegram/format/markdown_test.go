package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeMarkdownV1(t *testing.T) {
	out, err := EscapeMarkdown("my_name *bold* [x] `c`", MarkdownV1, "")
	require.NoError(t, err)
	assert.Equal(t, "my\\_name \\*bold\\* \\[x] \\`c\\`", out)
}

func TestEscapeMarkdownV1Code(t *testing.T) {
	assert.Equal(t, "Ltc1_abc'x", MDCode("Ltc1_abc`x"))
}

func TestEscapeMarkdownV2(t *testing.T) {
	out, err := EscapeMarkdown("a.b-c!", MarkdownV2, "")
	require.NoError(t, err)
	assert.Equal(t, "a\\.b\\-c\\!", out)

	out, err = EscapeMarkdown("x`y\\", MarkdownV2, "code")
	require.NoError(t, err)
	assert.Equal(t, "x\\`y\\\\", out)
}

func TestEscapeMarkdownUnsupported(t *testing.T) {
	_, err := EscapeMarkdown("x", 3, "")
	assert.Error(t, err)
}

func TestDerefString(t *testing.T) {
	s := "alice"
	empty := ""
	assert.Equal(t, "alice", DerefString(&s, "-"))
	assert.Equal(t, "-", DerefString(&empty, "-"))
	assert.Equal(t, "-", DerefString(nil, "-"))
}
