package lexer

import "github.com/hnimtadd/emuterm/terminal/ansi"

// Token is one unit of lexer output. It is either a Literal run of bytes
// or a decoded Code; consumers switch on the concrete type.
type Token interface {
	token()
	String() string
}

// Literal is a run of bytes to be printed. It aliases the lexed input.
type Literal []byte

func (Literal) token() {}

func (l Literal) String() string {
	return ansi.Quote(l)
}

var (
	_ Token = Literal(nil)
	_ Token = Code{}
)
