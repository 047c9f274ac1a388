package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexChunks lexes every chunk on its own, as the bridge does without a
// carry buffer.
func lexChunks(chunks ...string) []Token {
	var tokens []Token
	for _, c := range chunks {
		tokens = append(tokens, Lex([]byte(c))...)
	}
	return tokens
}

func carryChunks(chunks ...string) []Token {
	var c Carry
	var tokens []Token
	for _, chunk := range chunks {
		tokens = append(tokens, c.Feed([]byte(chunk))...)
	}
	return append(tokens, c.Flush()...)
}

func TestSplitSequence(t *testing.T) {
	tests := []struct {
		name      string
		chunks    []string
		perChunk  []Token
		withCarry []Token
	}{
		{
			name:      "graphics split inside parameters",
			chunks:    []string{"ab\x1b[38;5", ";196mcd"},
			perChunk:  []Token{Literal("ab"), Literal("\x1b[38;5"), Literal(";196mcd")},
			withCarry: []Token{Literal("ab"), SGR(38, 5, 196), Literal("cd")},
		},
		{
			name:      "split right after escape",
			chunks:    []string{"x\x1b", "[K"},
			perChunk:  []Token{Literal("x"), Literal("\x1b"), Literal("[K")},
			withCarry: []Token{Literal("x"), Code{Kind: KindEraseLine}},
		},
		{
			name:      "split across three chunks",
			chunks:    []string{"\x1b[", "?20", "04h"},
			perChunk:  []Token{Literal("\x1b["), Literal("?20"), Literal("04h")},
			withCarry: []Token{Code{Kind: KindEnableBracketedPaste}},
		},
		{
			name:      "split utf8 rune",
			chunks:    []string{"caf\xc3", "\xa9"},
			perChunk:  []Token{Literal("caf\xc3"), Literal("\xa9")},
			withCarry: []Token{Literal("caf"), Literal("\xc3\xa9")},
		},
		{
			name:      "unterminated tail is flushed as text",
			chunks:    []string{"ok\x1b[12"},
			perChunk:  []Token{Literal("ok"), Literal("\x1b[12")},
			withCarry: []Token{Literal("ok"), Literal("\x1b[12")},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.perChunk, lexChunks(tc.chunks...), "per chunk")
			assert.Equal(t, tc.withCarry, carryChunks(tc.chunks...), "carry")
		})
	}
}

func TestCarry_CompleteChunksPassThrough(t *testing.T) {
	var c Carry
	tokens := c.Feed([]byte("a\x1b[Kb"))
	assert.Equal(t, []Token{Literal("a"), Code{Kind: KindEraseLine}, Literal("b")}, tokens)
	assert.Zero(t, c.Pending())
	assert.Empty(t, c.Flush())
}

func TestCarry_DoesNotAliasChunk(t *testing.T) {
	var c Carry
	chunk := []byte("hello")
	tokens := c.Feed(chunk)
	chunk[0] = 'X'
	require.Len(t, tokens, 1)
	assert.Equal(t, Literal("hello"), tokens[0])
}

func TestCarry_UnknownSequenceIsNotHeld(t *testing.T) {
	var c Carry
	tokens := c.Feed([]byte("\x1b[5Z"))
	assert.Equal(t, []Token{Literal("\x1b[5Z")}, tokens)
	assert.Zero(t, c.Pending())
}

func TestCarry_LongTailIsReleased(t *testing.T) {
	var c Carry
	tail := "\x1b["
	for range MaxCarry {
		tail += "1"
	}
	tokens := c.Feed([]byte(tail))
	assert.Equal(t, []Token{Literal(tail)}, tokens)
	assert.Zero(t, c.Pending())
}
