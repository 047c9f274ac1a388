// Package lexer splits the raw output of a child process into literal
// byte runs and decoded escape codes.
//
// The lexer keeps no state between inputs: a sequence cut in two by a
// read boundary is surfaced as literal bytes. Use Carry when the input
// arrives in chunks and such sequences should be reassembled.
package lexer

import (
	"bytes"
	"iter"

	"github.com/hnimtadd/emuterm/terminal/ansi"
)

// Lexer yields the tokens of a single byte slice. It never blocks and
// never copies, literal tokens alias the input. A Lexer is exhausted
// once Next returns false and cannot be restarted.
type Lexer struct {
	input []byte
}

func New(input []byte) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token, or false when the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if len(l.input) == 0 {
		return nil, false
	}

	i := bytes.IndexByte(l.input, ansi.C0.ESC)
	switch {
	case i < 0:
		return l.take(len(l.input)), true
	case i > 0:
		return l.take(i), true
	}

	if code, n, err := decode(l.input); err == nil {
		l.input = l.input[n:]
		return code, true
	}

	// Not a sequence we know. Hand the ESC and everything up to the next
	// ESC over as text.
	j := bytes.IndexByte(l.input[1:], ansi.C0.ESC)
	if j < 0 {
		return l.take(len(l.input)), true
	}
	return l.take(j + 1), true
}

func (l *Lexer) take(n int) Literal {
	lit := Literal(l.input[:n])
	l.input = l.input[n:]
	return lit
}

// All returns an iterator over the remaining tokens. Ranging over it
// drains the lexer.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Lex returns every token of input in stream order.
func Lex(input []byte) []Token {
	var tokens []Token
	for tok := range New(input).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}
