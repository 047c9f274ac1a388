// Package render draws a terminal viewport on a tcell screen and turns
// tcell input events into payloads for the child.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/emuterm/terminal"
	"github.com/hnimtadd/emuterm/terminal/color"
	"github.com/hnimtadd/emuterm/terminal/screen"
	"github.com/mattn/go-runewidth"
)

// Screen redraws only the rows whose content changed since the previous
// frame.
type Screen struct {
	screen tcell.Screen
	hashes []uint64
}

func New(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Draw renders one frame. Call it with a viewport that is still valid,
// usually from the session's update callback.
func (s *Screen) Draw(v terminal.Viewport) {
	hashes := v.Hashes()
	for y, row := range v.Rows {
		if y >= v.Height {
			break
		}
		if y >= len(s.hashes) || s.hashes[y] != hashes[y] {
			s.drawRow(y, row, v.Width)
		}
	}
	s.hashes = hashes

	if x, y, ok := v.Cursor(); ok {
		s.screen.ShowCursor(x, y)
	} else {
		s.screen.HideCursor()
	}
	s.screen.Show()
}

func (s *Screen) drawRow(y int, row screen.Row, width int) {
	blank := style(screen.EmptyCell())
	for x := range width {
		if x >= len(row.Cells) {
			s.screen.SetContent(x, y, ' ', nil, blank)
			continue
		}
		cell := row.Cells[x]
		ch := cell.Char
		if runewidth.RuneWidth(ch) == 0 {
			ch = ' '
		}
		s.screen.SetContent(x, y, ch, nil, style(cell))
	}
}

// Invalidate forces the next Draw to repaint every row. Like Draw, it
// must be called from the goroutine that owns the terminal.
func (s *Screen) Invalidate() {
	s.hashes = nil
	s.screen.Clear()
}

// Repaint clears the screen and draws v in full, for when the screen
// lost its content, as after a resize.
func (s *Screen) Repaint(v terminal.Viewport) {
	s.Invalidate()
	s.Draw(v)
}

func style(c screen.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(rgb(c.FG)).
		Background(rgb(c.BG))
}

func rgb(c color.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
