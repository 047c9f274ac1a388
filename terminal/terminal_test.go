package terminal

import (
	"testing"

	"github.com/hnimtadd/emuterm/logger"
	"github.com/hnimtadd/emuterm/terminal/color"
	"github.com/hnimtadd/emuterm/terminal/lexer"
	"github.com/hnimtadd/emuterm/terminal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal(rows, cols int) *Terminal {
	return NewTerminal(Options{
		Rows:   rows,
		Cols:   cols,
		Logger: logger.Discard,
	})
}

// feed lexes input and applies every token.
func feed(t *testing.T, term *Terminal, input string) {
	t.Helper()
	require.NoError(t, term.ApplyBatch(lexer.Lex([]byte(input))))
}

func TestTerminal_InputWithNoControlCharacters(t *testing.T) {
	term := newTestTerminal(40, 40)

	feed(t, term, "hello")

	assert.Equal(t, 6, term.Brush.X)
	assert.Equal(t, 1, term.Brush.Y)
	require.Equal(t, 1, term.Grid.Len())
	for i, c := range "hello" {
		cell, ok := term.Grid.Cell(i+1, 1)
		require.True(t, ok)
		assert.Equal(t, c, cell.Char)
	}
	assert.Equal(t, "hello\n", term.PlainString())
}

func TestTerminal_NewlineCarriageReturn(t *testing.T) {
	term := newTestTerminal(40, 40)

	feed(t, term, "A")
	assert.Equal(t, screen.Brush{X: 2, Y: 1, FG: color.DefaultForeground, BG: color.DefaultBackground}, term.Brush)

	feed(t, term, "\n")
	assert.Equal(t, 2, term.Brush.X)
	assert.Equal(t, 2, term.Brush.Y)

	feed(t, term, "B")
	cell, ok := term.Grid.Cell(2, 2)
	require.True(t, ok)
	assert.Equal(t, 'B', cell.Char)

	feed(t, term, "\rC")
	cell, ok = term.Grid.Cell(1, 2)
	require.True(t, ok)
	assert.Equal(t, 'C', cell.Char)

	assert.Equal(t, "A\nCB\n", term.PlainString())
}

func TestTerminal_TabAndBackspace(t *testing.T) {
	term := newTestTerminal(40, 40)

	feed(t, term, "a\tb")
	assert.Equal(t, "a    b", term.Grid.Rows[0].String())
	assert.Equal(t, 7, term.Brush.X)

	feed(t, term, "\x08\x08X")
	assert.Equal(t, "a   Xb", term.Grid.Rows[0].String())
}

func TestTerminal_BackspaceAtFirstColumn(t *testing.T) {
	term := newTestTerminal(40, 40)

	feed(t, term, "\x08\x08\x08")
	assert.Equal(t, 1, term.Brush.X)

	feed(t, term, "z")
	cell, ok := term.Grid.Cell(1, 1)
	require.True(t, ok)
	assert.Equal(t, 'z', cell.Char)
}

func TestTerminal_StrayControlBytesAreNotPainted(t *testing.T) {
	term := newTestTerminal(40, 40)

	require.NoError(t, term.Apply(lexer.Literal("a\x1bb\x07c")))
	assert.Equal(t, "abc", term.Grid.Rows[0].String())
}

func TestTerminal_InvalidUTF8DropsSpan(t *testing.T) {
	term := newTestTerminal(40, 40)
	feed(t, term, "ok")
	before := term.Brush

	err := term.Apply(lexer.Literal("bad\xff\xfebytes"))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, before, term.Brush)
	assert.Equal(t, "ok\n", term.PlainString())

	// A truncated rune is invalid as well.
	err = term.Apply(lexer.Literal("caf\xc3"))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, "ok\n", term.PlainString())
}

func TestTerminal_InvalidUTF8Replace(t *testing.T) {
	term := NewTerminal(Options{Rows: 10, Cols: 10, UTF8: UTF8Replace, Logger: logger.Discard})

	require.NoError(t, term.Apply(lexer.Literal("a\xffb")))
	assert.Equal(t, "a�b", term.Grid.Rows[0].String())
}

func TestTerminal_ApplyBatchContinuesAfterFailure(t *testing.T) {
	term := newTestTerminal(40, 40)

	err := term.ApplyBatch([]lexer.Token{
		lexer.Literal("a"),
		lexer.Literal("\xff"),
		lexer.Literal("b"),
		lexer.Literal("\xfe"),
	})
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, "ab\n", term.PlainString())
}

func TestTerminal_Multibyte(t *testing.T) {
	term := newTestTerminal(40, 40)

	feed(t, term, "héllo ✤")
	assert.Equal(t, "héllo ✤", term.Grid.Rows[0].String())
	assert.Equal(t, 8, term.Brush.X)
}

func TestTerminal_EraseLine(t *testing.T) {
	term := newTestTerminal(40, 40)

	feed(t, term, "hello world\r\x1b[C\x1b[C")
	// Cursor moves are not interpreted, so the brush stays at column 1.
	assert.Equal(t, 1, term.Brush.X)

	feed(t, term, "abc\x1b[K")
	assert.Equal(t, "abc", term.Grid.Rows[0].String())
	assert.Equal(t, 3, term.Grid.Rows[0].Len())
}

func TestTerminal_EraseAllDisplay(t *testing.T) {
	term := newTestTerminal(3, 10)

	feed(t, term, "\x1b[38;5;196mone\r\ntwo\r\nthree\r\nfour")
	term.Brush.Y = 2
	feed(t, term, "\x1b[2J")

	assert.Equal(t, "one", term.Grid.Rows[0].String())
	for y := 2; y <= 4; y++ {
		row := term.Grid.Rows[y-1]
		for _, cell := range row.Cells {
			assert.Equal(t, screen.EmptyCell(), cell)
		}
	}
	assert.Equal(t, "    ", term.Grid.Rows[3].String())
	// The brush keeps its pen.
	assert.Equal(t, color.RGB{R: 255, G: 0, B: 0}, term.Brush.FG)
}

func TestTerminal_EraseDisplayAndCursorSaveAreNoOps(t *testing.T) {
	term := newTestTerminal(5, 10)
	feed(t, term, "abc\r\ndef")
	before := term.PlainString()
	brush := term.Brush

	feed(t, term, "\x1b[J\x1b[s\x1b[u\x1b[m\x1b[5;5H\x1b[3A\x1b[?25l\x1b[?2004h\x1b(B\x1b[1;10r\x1b\x1b")

	assert.Equal(t, before, term.PlainString())
	assert.Equal(t, brush, term.Brush)
}

func TestTerminal_GraphicsRendition(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fg, bg color.RGB
	}{
		{
			name:  "palette foreground",
			input: "\x1b[38;5;196m",
			fg:    color.RGB{R: 255, G: 0, B: 0},
			bg:    color.DefaultBackground,
		},
		{
			name:  "palette background",
			input: "\x1b[48;5;21m",
			fg:    color.DefaultForeground,
			bg:    color.RGB{R: 0, G: 0, B: 255},
		},
		{
			name:  "direct background",
			input: "\x1b[48;2;10;20;30m",
			fg:    color.DefaultForeground,
			bg:    color.RGB{R: 10, G: 20, B: 30},
		},
		{
			name:  "direct foreground",
			input: "\x1b[38;2;1;2;3m",
			fg:    color.RGB{R: 1, G: 2, B: 3},
			bg:    color.DefaultBackground,
		},
		{
			name:  "reset",
			input: "\x1b[38;2;1;2;3m\x1b[48;2;1;2;3m\x1b[0m",
			fg:    color.DefaultForeground,
			bg:    color.DefaultBackground,
		},
		{
			name:  "reset foreground only",
			input: "\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m\x1b[39m",
			fg:    color.DefaultForeground,
			bg:    color.RGB{R: 4, G: 5, B: 6},
		},
		{
			name:  "reset background only",
			input: "\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m\x1b[49m",
			fg:    color.RGB{R: 1, G: 2, B: 3},
			bg:    color.DefaultBackground,
		},
		{
			name:  "unsupported attributes are ignored",
			input: "\x1b[38;2;1;2;3m\x1b[1m\x1b[1;31m\x1b[7m",
			fg:    color.RGB{R: 1, G: 2, B: 3},
			bg:    color.DefaultBackground,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := newTestTerminal(10, 10)
			feed(t, term, tc.input)
			assert.Equal(t, tc.fg, term.Brush.FG)
			assert.Equal(t, tc.bg, term.Brush.BG)
		})
	}
}

func TestTerminal_PaintedCellsKeepTheirColors(t *testing.T) {
	term := newTestTerminal(10, 10)

	feed(t, term, "\x1b[38;5;196mr\x1b[0md")

	r, ok := term.Grid.Cell(1, 1)
	require.True(t, ok)
	assert.Equal(t, color.RGB{R: 255, G: 0, B: 0}, r.FG)

	d, ok := term.Grid.Cell(2, 1)
	require.True(t, ok)
	assert.Equal(t, color.DefaultForeground, d.FG)
}

func TestTerminal_CustomPalette(t *testing.T) {
	palette := color.DefaultPalette
	palette[1] = color.RGB{R: 9, G: 9, B: 9}
	term := NewTerminal(Options{Palette: &palette, Logger: logger.Discard})

	feed(t, term, "\x1b[38;5;1m")
	assert.Equal(t, color.RGB{R: 9, G: 9, B: 9}, term.Brush.FG)
	assert.Equal(t, DefaultRows, term.Rows())
	assert.Equal(t, DefaultCols, term.Cols())
}

func TestTerminal_UnknownSequenceIsPrinted(t *testing.T) {
	term := newTestTerminal(10, 40)

	feed(t, term, "\x1b[5Zx")
	// The ESC itself is dropped, the rest of the span is text.
	assert.Equal(t, "[5Zx", term.Grid.Rows[0].String())
}

func TestTerminal_PrintSingleVeryLongLine(t *testing.T) {
	term := newTestTerminal(5, 5)

	// Rows grow without wrapping.
	for range 10000 {
		require.NoError(t, term.Apply(lexer.Literal("x")))
	}
	assert.Equal(t, 1, term.Grid.Len())
	assert.Equal(t, 10000, term.Grid.Rows[0].Len())
}
