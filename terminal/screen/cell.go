package screen

import "github.com/hnimtadd/emuterm/terminal/color"

// Cell is one grid position. A cell that exists always has a character
// and both colors.
type Cell struct {
	Char rune
	FG   color.RGB
	BG   color.RGB
}

// EmptyCell is a blank in the default pen colors.
func EmptyCell() Cell {
	return Cell{
		Char: ' ',
		FG:   color.DefaultForeground,
		BG:   color.DefaultBackground,
	}
}

// Row is one terminal line. It only grows to the right, apart from an
// explicit erase-line truncation.
type Row struct {
	Cells []Cell
}

// cell returns the cell at 1-based column x, appending blanks as needed.
func (r *Row) cell(x int) *Cell {
	for len(r.Cells) < x {
		r.Cells = append(r.Cells, EmptyCell())
	}
	return &r.Cells[x-1]
}

// Truncate drops every cell after the first n.
func (r *Row) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(r.Cells) {
		clear(r.Cells[n:])
		r.Cells = r.Cells[:n]
	}
}

// Blank resets every cell to EmptyCell without changing the length.
func (r *Row) Blank() {
	for i := range r.Cells {
		r.Cells[i] = EmptyCell()
	}
}

func (r Row) Len() int {
	return len(r.Cells)
}

func (r Row) String() string {
	chars := make([]rune, len(r.Cells))
	for i, c := range r.Cells {
		chars[i] = c.Char
	}
	return string(chars)
}
