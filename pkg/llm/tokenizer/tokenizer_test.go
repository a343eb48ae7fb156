package tokenizer

import (
	"strings"
	"testing"

	"github.com/entrhq/courtbook/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))
	assert.Equal(t, 1, Estimate("abc"))
	assert.Equal(t, 1, Estimate("abcd"))
	assert.Equal(t, 2, Estimate("abcde"))
}

func TestZeroValueFallsBackToEstimate(t *testing.T) {
	var tok Tokenizer

	assert.False(t, tok.Exact())
	assert.Equal(t, 3, tok.CountTokens("Click the Done button"))

	msgs := []*types.Message{
		types.NewSystemMessage("abcd"),
		types.NewUserMessage("abcdefgh"),
	}
	assert.Equal(t, perMessageOverhead*2+3, tok.CountMessagesTokens(msgs))
}

func TestTruncate_Estimate(t *testing.T) {
	var tok Tokenizer
	text := strings.Repeat("a", 100)

	out, cut := tok.Truncate(text, 10)
	assert.True(t, cut)
	assert.Len(t, out, 40)

	out, cut = tok.Truncate(text, 1000)
	assert.False(t, cut)
	assert.Equal(t, text, out)

	out, cut = tok.Truncate(text, 0)
	assert.False(t, cut)
	assert.Equal(t, text, out)
}

func TestTruncate_Encoding(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}
	require.True(t, tok.Exact())

	text := strings.Repeat("court booking slot ", 200)
	out, cut := tok.Truncate(text, 50)
	assert.True(t, cut)
	assert.LessOrEqual(t, tok.CountTokens(out), 51)
	assert.True(t, strings.HasPrefix(text, out))
}
