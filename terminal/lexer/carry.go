package lexer

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/hnimtadd/emuterm/terminal/ansi"
)

// MaxCarry bounds how many bytes of an unfinished escape sequence are
// held back. Longer tails are released as literal text.
const MaxCarry = 64

// Carry lexes a stream that arrives in chunks. A chunk that ends inside
// an escape sequence or inside a multi-byte UTF-8 rune keeps that tail
// back and lexes it again in front of the next chunk.
//
// The zero value is ready to use. A Carry is not safe for concurrent use.
type Carry struct {
	pending []byte
}

// Feed lexes chunk, prefixed by whatever the previous call held back.
// The returned tokens do not alias chunk.
func (c *Carry) Feed(chunk []byte) []Token {
	data := make([]byte, 0, len(c.pending)+len(chunk))
	data = append(data, c.pending...)
	data = append(data, chunk...)

	cut := holdback(data)
	c.pending = bytes.Clone(data[cut:])
	return Lex(data[:cut])
}

// Flush releases anything still held back, as literal text when it never
// completed.
func (c *Carry) Flush() []Token {
	data := c.pending
	c.pending = nil
	return Lex(data)
}

// Pending reports how many bytes are held back.
func (c *Carry) Pending() int {
	return len(c.pending)
}

// holdback returns the offset where the unfinished tail of data starts,
// or len(data) when there is none.
func holdback(data []byte) int {
	// Walk the escape sequences the way Lexer.Next does so that only a
	// sequence start can be held back.
	for off := 0; off < len(data); {
		i := bytes.IndexByte(data[off:], ansi.C0.ESC)
		if i < 0 {
			break
		}
		off += i
		_, n, err := decode(data[off:])
		switch {
		case err == nil:
			off += n
		case errors.Is(err, errIncomplete) && len(data)-off <= MaxCarry:
			return off
		default:
			off++
		}
	}

	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(data[i]) {
			continue
		}
		if !utf8.FullRune(data[i:]) {
			return i
		}
		break
	}
	return len(data)
}
