package screen

import "github.com/hnimtadd/emuterm/terminal/color"

// Brush is the cursor position plus the pen colors used for the next
// painted character. X and Y are 1-based.
type Brush struct {
	X, Y int
	FG   color.RGB
	BG   color.RGB
}

// NewBrush returns a brush at (1, 1) with the default colors.
func NewBrush() Brush {
	return Brush{
		X:  1,
		Y:  1,
		FG: color.DefaultForeground,
		BG: color.DefaultBackground,
	}
}

func (b *Brush) ResetColor() {
	b.FG = color.DefaultForeground
	b.BG = color.DefaultBackground
}

// Left moves the brush n columns left, stopping at column 1.
func (b *Brush) Left(n int) {
	b.X = max(b.X-n, 1)
}

func (b *Brush) Right(n int) {
	b.X += n
}

func (b *Brush) Down(n int) {
	b.Y += n
}

func (b *Brush) CarriageReturn() {
	b.X = 1
}
