// Package terminal applies lexer tokens to a character grid.
//
// A Terminal is owned by a single goroutine: it has no locking, and every
// mutation goes through Apply. Readers such as renderers take a Viewport
// from the same goroutine.
package terminal

import (
	"errors"
	"fmt"

	"github.com/hnimtadd/emuterm/logger"
	"github.com/hnimtadd/emuterm/terminal/ansi"
	"github.com/hnimtadd/emuterm/terminal/color"
	"github.com/hnimtadd/emuterm/terminal/lexer"
	"github.com/hnimtadd/emuterm/terminal/screen"
	"github.com/hnimtadd/emuterm/terminal/sgr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	DefaultRows = 50
	DefaultCols = 100

	// A tab moves the brush a fixed distance, tab stops are not tracked.
	TabWidth = 4
)

var ErrInvalidUTF8 = fmt.Errorf("terminal: invalid utf-8 in literal span")

// UTF8Policy decides what happens to a literal span that is not valid
// UTF-8.
type UTF8Policy int

const (
	// Drop the whole span and report ErrInvalidUTF8.
	UTF8Strict UTF8Policy = iota
	// Replace each invalid byte with U+FFFD and print the rest.
	UTF8Replace
)

type (
	Options struct {
		Rows int // Height of the viewport and of the full erase window
		Cols int // Width of the viewport, reported to renderers

		UTF8 UTF8Policy

		// Palette used to resolve indexed colors. Defaults to the xterm
		// palette.
		Palette *color.Palette

		Logger logger.Logger
	}

	Terminal struct {
		// Every row ever written to. Rows are never evicted.
		Grid *screen.Grid

		// Cursor position and pen colors.
		Brush screen.Brush

		rows, cols int
		utf8       UTF8Policy
		palette    color.Palette

		logger logger.Logger
	}
)

func NewTerminal(opts Options) *Terminal {
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	palette := color.DefaultPalette
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	return &Terminal{
		Grid:    screen.NewGrid(),
		Brush:   screen.NewBrush(),
		rows:    opts.Rows,
		cols:    opts.Cols,
		utf8:    opts.UTF8,
		palette: palette,
		logger:  logger.Or(opts.Logger),
	}
}

func (t *Terminal) Rows() int { return t.rows }
func (t *Terminal) Cols() int { return t.cols }

// Apply applies one token. Only a literal span that fails UTF-8 decoding
// returns an error, in which case the state is left untouched.
func (t *Terminal) Apply(tok lexer.Token) error {
	switch tok := tok.(type) {
	case lexer.Literal:
		return t.Print(tok)
	case lexer.Code:
		t.Execute(tok)
		return nil
	default:
		t.logger.Warn("unknown token type", "token", tok)
		return nil
	}
}

// ApplyBatch applies tokens in order. A failed span does not stop the
// batch, every failure is returned joined.
func (t *Terminal) ApplyBatch(tokens []lexer.Token) error {
	var errs []error
	for _, tok := range tokens {
		if err := t.Apply(tok); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Print decodes p and writes it at the brush.
func (t *Terminal) Print(p []byte) error {
	text, err := t.decode(p)
	if err != nil {
		t.logger.Warn("dropping literal span", "bytes", ansi.Quote(p), "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidUTF8, err)
	}

	c0 := ansi.C0
	for _, c := range string(text) {
		switch c {
		case rune(c0.LF):
			t.Brush.Down(1)
		case rune(c0.CR):
			t.Brush.CarriageReturn()
		case rune(c0.HT):
			t.Brush.Right(TabWidth)
		case rune(c0.BS):
			t.Brush.Left(1)
		case rune(c0.ESC), rune(c0.BEL):
			// The lexer already took the escape sequences out, a stray ESC
			// is dropped. The bell has nothing to ring.
		default:
			t.Grid.Paint(t.Brush, c)
			t.Brush.Right(1)
		}
	}
	return nil
}

func (t *Terminal) decode(p []byte) ([]byte, error) {
	switch t.utf8 {
	case UTF8Replace:
		return unicode.UTF8.NewDecoder().Bytes(p)
	default:
		text, _, err := transform.Bytes(encoding.UTF8Validator, p)
		return text, err
	}
}

// Execute applies a decoded escape code.
func (t *Terminal) Execute(code lexer.Code) {
	switch code.Kind {
	case lexer.KindEraseLine:
		t.Grid.EraseLine(t.Brush)

	case lexer.KindEraseAllDisplay:
		t.Grid.EraseFrom(t.Brush, t.rows)

	case lexer.KindSetGraphicsMode:
		t.SetGraphicsRendition(sgr.Parse(code.Graphics))

	// Decoded but deliberately not acted on.
	case lexer.KindEraseDisplay,
		lexer.KindCursorSave,
		lexer.KindCursorRestore,
		lexer.KindResetStyle,
		lexer.KindEscape,
		lexer.KindCursorPosition,
		lexer.KindCursorUp,
		lexer.KindCursorDown,
		lexer.KindCursorForward,
		lexer.KindCursorBackward,
		lexer.KindEnableCursorBlink,
		lexer.KindDisableCursorBlink,
		lexer.KindSetMode,
		lexer.KindResetMode,
		lexer.KindHideCursor,
		lexer.KindShowCursor,
		lexer.KindCursorToApp,
		lexer.KindSetNewLineMode,
		lexer.KindSetCol132,
		lexer.KindSetSmoothScroll,
		lexer.KindSetReverseVideo,
		lexer.KindSetOriginRelative,
		lexer.KindSetAutoWrap,
		lexer.KindSetAutoRepeat,
		lexer.KindSetInterlacing,
		lexer.KindSetLineFeedMode,
		lexer.KindSetCursorKeyToCursor,
		lexer.KindSetVT52,
		lexer.KindSetCol80,
		lexer.KindSetJumpScrolling,
		lexer.KindSetNormalVideo,
		lexer.KindSetOriginAbsolute,
		lexer.KindResetAutoWrap,
		lexer.KindResetAutoRepeat,
		lexer.KindResetInterlacing,
		lexer.KindSetAlternateKeypad,
		lexer.KindSetNumericKeypad,
		lexer.KindSetUKG0,
		lexer.KindSetUKG1,
		lexer.KindSetUSG0,
		lexer.KindSetUSG1,
		lexer.KindSetG0SpecialChars,
		lexer.KindSetG1SpecialChars,
		lexer.KindSetG0AlternateChar,
		lexer.KindSetG1AlternateChar,
		lexer.KindSetG0AltAndSpecialGraph,
		lexer.KindSetG1AltAndSpecialGraph,
		lexer.KindSetSingleShift2,
		lexer.KindSetSingleShift3,
		lexer.KindSetScrollRegion,
		lexer.KindEnableBracketedPaste,
		lexer.KindDisableBracketedPaste:
		t.logger.Debug("ignoring escape code", "code", code.String())

	default:
		t.logger.Warn("unknown escape code", "code", code.String())
	}
}

// SetGraphicsRendition updates the pen colors.
func (t *Terminal) SetGraphicsRendition(attr sgr.Attribute) {
	switch attr.Type {
	case sgr.AttributeTypeUnset:
		t.Brush.ResetColor()
	case sgr.AttributeTypeResetFg:
		t.Brush.FG = color.DefaultForeground
	case sgr.AttributeTypeResetBg:
		t.Brush.BG = color.DefaultBackground
	case sgr.AttributeTypePaletteFg, sgr.AttributeTypeDirectColorFg:
		t.Brush.FG = attr.Color.Resolve(&t.palette)
	case sgr.AttributeTypePaletteBg, sgr.AttributeTypeDirectColorBg:
		t.Brush.BG = attr.Color.Resolve(&t.palette)
	default:
		t.logger.Debug("ignoring SGR attribute", "type", attr.Type.String())
	}
}

// PlainString dumps the characters of the whole grid, one line per row.
func (t *Terminal) PlainString() string {
	return t.Grid.PlainString()
}
