package screen

import (
	"fmt"
	"strings"

	"github.com/mitchellh/hashstructure/v2"
)

// Grid is the whole buffer: every row ever touched, scrollback and
// viewport alike. Rows are never evicted. Coordinates are 1-based.
type Grid struct {
	Rows []Row
}

func NewGrid() *Grid {
	return &Grid{}
}

// Len returns the number of allocated rows.
func (g *Grid) Len() int {
	return len(g.Rows)
}

// row returns the row at 1-based index y, appending empty rows as needed.
func (g *Grid) row(y int) *Row {
	for len(g.Rows) < y {
		g.Rows = append(g.Rows, Row{})
	}
	return &g.Rows[y-1]
}

// Paint writes c at the brush position using the brush colors, growing
// the grid and the row so that the position exists.
func (g *Grid) Paint(b Brush, c rune) {
	if b.X < 1 || b.Y < 1 {
		return
	}
	cell := g.row(b.Y).cell(b.X)
	cell.Char = c
	cell.FG = b.FG
	cell.BG = b.BG
}

// EraseLine truncates the brush row to the cells left of the brush.
// Cells before the brush are kept as they are.
func (g *Grid) EraseLine(b Brush) {
	if b.Y < 1 {
		return
	}
	g.row(b.Y).Truncate(b.X - 1)
}

// EraseFrom blanks height rows starting at the brush row. The rows are
// allocated if they do not exist yet.
func (g *Grid) EraseFrom(b Brush, height int) {
	if b.Y < 1 {
		return
	}
	for i := range height {
		g.row(b.Y + i).Blank()
	}
}

// Cell returns the cell at 1-based (x, y), if it was ever allocated.
func (g *Grid) Cell(x, y int) (Cell, bool) {
	if y < 1 || y > len(g.Rows) {
		return Cell{}, false
	}
	row := g.Rows[y-1]
	if x < 1 || x > len(row.Cells) {
		return Cell{}, false
	}
	return row.Cells[x-1], true
}

// Window returns the last height rows, or all of them when the grid is
// shorter. The rows are shared with the grid.
func (g *Grid) Window(height int) []Row {
	if height < 0 {
		height = 0
	}
	if height >= len(g.Rows) {
		return g.Rows
	}
	return g.Rows[len(g.Rows)-height:]
}

// PlainString dumps every row's characters, each followed by a newline.
func (g *Grid) PlainString() string {
	var b strings.Builder
	for _, row := range g.Rows {
		b.WriteString(row.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Hash fingerprints the content and colors of the row. Renderers compare
// hashes to skip rows that did not change.
func (r Row) Hash() uint64 {
	hashed, err := hashstructure.Hash(r.Cells, hashstructure.FormatV2, nil)
	if err != nil {
		panic(fmt.Sprintf("failed to hash row: %v", err))
	}
	return hashed
}
