package lexer

import (
	"fmt"
	"strconv"
)

var (
	errNoMatch    = fmt.Errorf("lexer: unrecognized escape sequence")
	errIncomplete = fmt.Errorf("lexer: incomplete escape sequence")
)

// scanner walks the body of an escape sequence, the bytes after ESC.
// short records that the input ended before the rule could decide, which
// is what separates a truncated sequence from an unrecognized one.
type scanner struct {
	in    []byte
	pos   int
	short bool
}

// tag consumes t if the input continues with it.
func (s *scanner) tag(t string) bool {
	for i := 0; i < len(t); i++ {
		if s.pos+i >= len(s.in) {
			s.short = true
			return false
		}
		if s.in[s.pos+i] != t[i] {
			return false
		}
	}
	s.pos += len(t)
	return true
}

// oneOf consumes a single byte if it is one of set.
func (s *scanner) oneOf(set string) (byte, bool) {
	if s.pos >= len(s.in) {
		s.short = true
		return 0, false
	}
	c := s.in[s.pos]
	for i := 0; i < len(set); i++ {
		if set[i] == c {
			s.pos++
			return c, true
		}
	}
	return 0, false
}

// digits consumes a possibly empty run of ASCII digits.
func (s *scanner) digits() []byte {
	start := s.pos
	for s.pos < len(s.in) && s.in[s.pos] >= '0' && s.in[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == len(s.in) {
		s.short = true
	}
	return s.in[start:s.pos]
}

// number parses a digit run, def applies to an empty run and 1 to one
// that does not fit.
func number(d []byte, def uint32) uint32 {
	if len(d) == 0 {
		return def
	}
	v, err := strconv.ParseUint(string(d), 10, 32)
	if err != nil {
		return 1
	}
	return uint32(v)
}

// param parses one graphics rendition parameter.
func param(d []byte) uint8 {
	if len(d) == 0 {
		return 0
	}
	v, err := strconv.ParseUint(string(d), 10, 8)
	if err != nil {
		return 1
	}
	return uint8(v)
}

type rule func(s *scanner) (Code, bool)

// literal matches an exact body.
func literal(seq string, kind Kind) rule {
	return func(s *scanner) (Code, bool) {
		if !s.tag(seq) {
			return Code{}, false
		}
		return Code{Kind: kind}, true
	}
}

func cursorPosition(s *scanner) (Code, bool) {
	if !s.tag("[") {
		return Code{}, false
	}
	row := s.digits()
	s.tag(";")
	col := s.digits()
	if _, ok := s.oneOf("Hf"); !ok {
		return Code{}, false
	}
	return CursorPosition(number(row, 1), number(col, 1)), true
}

func cursorMove(final string, kind Kind) rule {
	return func(s *scanner) (Code, bool) {
		if !s.tag("[") {
			return Code{}, false
		}
		n := s.digits()
		if !s.tag(final) {
			return Code{}, false
		}
		return CursorMove(kind, number(n, 1)), true
	}
}

// graphics matches ESC [ p1 ; ... ; pN m for N up to 5. An entirely empty
// body is left to the reset style rule.
func graphics(s *scanner) (Code, bool) {
	if !s.tag("[") {
		return Code{}, false
	}
	c := Code{Kind: KindSetGraphicsMode}
	empty := true
	for {
		if c.Graphics.Count == uint8(len(c.Graphics.Params)) {
			return Code{}, false
		}
		d := s.digits()
		if len(d) > 0 {
			empty = false
		}
		c.Graphics.Params[c.Graphics.Count] = param(d)
		c.Graphics.Count++
		if !s.tag(";") {
			break
		}
		empty = false
	}
	if empty || !s.tag("m") {
		return Code{}, false
	}
	return c, true
}

func mode(s *scanner) (Code, bool) {
	if !s.tag("[=") {
		return Code{}, false
	}
	d := s.digits()
	if len(d) == 0 {
		return Code{}, false
	}
	final, ok := s.oneOf("hl")
	if !ok {
		return Code{}, false
	}
	kind := KindSetMode
	if final == 'l' {
		kind = KindResetMode
	}
	m, err := strconv.ParseUint(string(d), 10, 8)
	if err != nil {
		m = 1
	}
	return Code{Kind: kind, Mode: uint8(m)}, true
}

func scrollRegion(s *scanner) (Code, bool) {
	if !s.tag("[") {
		return Code{}, false
	}
	top := s.digits()
	if len(top) == 0 || !s.tag(";") {
		return Code{}, false
	}
	bottom := s.digits()
	if len(bottom) == 0 || !s.tag("r") {
		return Code{}, false
	}
	return ScrollRegion(number(top, 1), number(bottom, 1)), true
}

// rules in priority order. The first rule that matches wins.
var rules = []rule{
	literal("\x1b", KindEscape),
	cursorPosition,
	cursorMove("A", KindCursorUp),
	cursorMove("B", KindCursorDown),
	cursorMove("C", KindCursorForward),
	cursorMove("D", KindCursorBackward),
	literal("[s", KindCursorSave),
	literal("[u", KindCursorRestore),
	literal("[2J", KindEraseAllDisplay),
	literal("[J", KindEraseDisplay),
	literal("[K", KindEraseLine),
	graphics,
	mode,
	literal("[?25l", KindHideCursor),
	literal("[?25h", KindShowCursor),
	literal("[?1h", KindCursorToApp),
	literal("[20h", KindSetNewLineMode),
	literal("[?3h", KindSetCol132),
	literal("[?4h", KindSetSmoothScroll),
	literal("[?5h", KindSetReverseVideo),
	literal("[?7h", KindSetAutoWrap),
	literal("[?6h", KindSetOriginRelative),
	literal("[?8h", KindSetAutoRepeat),
	literal("[?9h", KindSetInterlacing),
	literal("[20l", KindSetLineFeedMode),
	literal("[?1l", KindSetCursorKeyToCursor),
	literal("[?2l", KindSetVT52),
	literal("[?3l", KindSetCol80),
	literal("[?4l", KindSetJumpScrolling),
	literal("[?5l", KindSetNormalVideo),
	literal("[?6l", KindSetOriginAbsolute),
	literal("[?7l", KindResetAutoWrap),
	literal("[?8l", KindResetAutoRepeat),
	literal("[?9l", KindResetInterlacing),
	scrollRegion,
	literal("=", KindSetAlternateKeypad),
	literal(">", KindSetNumericKeypad),
	literal("(A", KindSetUKG0),
	literal(")A", KindSetUKG1),
	literal("(B", KindSetUSG0),
	literal(")B", KindSetUSG1),
	literal("(0", KindSetG0SpecialChars),
	literal(")0", KindSetG1SpecialChars),
	literal("(1", KindSetG0AlternateChar),
	literal(")1", KindSetG1AlternateChar),
	literal("(2", KindSetG0AltAndSpecialGraph),
	literal(")2", KindSetG1AltAndSpecialGraph),
	literal("N", KindSetSingleShift2),
	literal("O", KindSetSingleShift3),
	literal("[?2004h", KindEnableBracketedPaste),
	literal("[?2004l", KindDisableBracketedPaste),
	literal("[?12h", KindEnableCursorBlink),
	literal("[?12l", KindDisableCursorBlink),
	literal("[m", KindResetStyle),
}

// decode matches the escape sequence at the start of in, which must begin
// with ESC. It returns the code and the number of bytes it spans.
// errIncomplete means a longer input could still match.
func decode(in []byte) (Code, int, error) {
	body := in[1:]
	short := false
	for _, r := range rules {
		s := scanner{in: body}
		if c, ok := r(&s); ok {
			return c, 1 + s.pos, nil
		}
		short = short || s.short
	}
	if short {
		return Code{}, 0, errIncomplete
	}
	return Code{}, 0, errNoMatch
}
