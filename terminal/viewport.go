package terminal

import (
	"slices"

	"github.com/hnimtadd/emuterm/terminal/screen"
)

// Viewport is what a renderer needs for one frame: the last Rows rows of
// the grid and the brush.
//
// Rows share memory with the grid and are only valid until the next
// Apply. Use Clone to keep a viewport across goroutines.
type Viewport struct {
	Rows  []screen.Row
	Brush screen.Brush

	// Grid row number of Rows[0], 1-based.
	Top int

	// Geometry the rows are meant to be shown in.
	Height, Width int
}

func (t *Terminal) Viewport() Viewport {
	rows := t.Grid.Window(t.rows)
	return Viewport{
		Rows:   rows,
		Brush:  t.Brush,
		Top:    t.Grid.Len() - len(rows) + 1,
		Height: t.rows,
		Width:  t.cols,
	}
}

// Cursor returns the brush position relative to the viewport, 0-based,
// and whether it falls inside it.
func (v Viewport) Cursor() (x, y int, ok bool) {
	x, y = v.Brush.X-1, v.Brush.Y-v.Top
	ok = x >= 0 && x < v.Width && y >= 0 && y < v.Height
	return x, y, ok
}

// Clone returns a viewport that does not share memory with the grid.
func (v Viewport) Clone() Viewport {
	rows := make([]screen.Row, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = screen.Row{Cells: slices.Clone(r.Cells)}
	}
	v.Rows = rows
	return v
}

// Hashes returns the hash of every row, top to bottom.
func (v Viewport) Hashes() []uint64 {
	hashes := make([]uint64, len(v.Rows))
	for i, r := range v.Rows {
		hashes[i] = r.Hash()
	}
	return hashes
}

// Changed reports which rows differ from a previous set of hashes. A row
// without a previous hash counts as changed.
func (v Viewport) Changed(prev []uint64) []bool {
	hashes := v.Hashes()
	changed := make([]bool, len(hashes))
	for i, h := range hashes {
		changed[i] = i >= len(prev) || prev[i] != h
	}
	return changed
}
