package color

import "fmt"

// DefaultPalette is the xterm 256 color palette: the 16 system colors,
// the 6x6x6 color cube and the 24 step gray ramp.
var DefaultPalette = func() Palette {
	var result Palette

	// Named values:
	var i int
	for ; i < 16; i++ {
		result[i] = NewName(ColorType(i)).defaultRGB()
	}

	// Cube
	for r := range 6 {
		for g := range 6 {
			for b := range 6 {
				result[i] = RGB{cubeLevel(r), cubeLevel(g), cubeLevel(b)}
				i++
			}
		}
	}

	// Gray ramp
	for ; i < 256; i++ {
		value := uint8((i-232)*10 + 8)
		result[i] = RGB{value, value, value}
	}

	return result
}()

func cubeLevel(v int) uint8 {
	if v == 0 {
		return 0
	}
	return uint8(v*40 + 55)
}

// Palette is the 256 color palette.
type Palette [256]RGB

// RGB is a struct that represents an RGB color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
	Dark  = RGB{30, 30, 30}
	Red   = RGB{255, 0, 0}

	// Pen colors used when nothing else was requested.
	DefaultForeground = White
	DefaultBackground = Dark
)

type ColorType uint8

const (
	ColorTypeBlack ColorType = iota
	ColorTypeRed
	ColorTypeGreen
	ColorTypeYellow
	ColorTypeBlue
	ColorTypeMagenta
	ColorTypeCyan
	ColorTypeWhite
	ColorTypeBrightBlack
	ColorTypeBrightRed
	ColorTypeBrightGreen
	ColorTypeBrightYellow
	ColorTypeBrightBlue
	ColorTypeBrightMagenta
	ColorTypeBrightCyan
	ColorTypeBrightWhite
)

type Name struct {
	Type ColorType
}

func NewName(colorType ColorType) Name {
	return Name{Type: colorType}
}

func (n Name) defaultRGB() RGB {
	switch n.Type {
	case ColorTypeBlack:
		return RGB{0, 0, 0}
	case ColorTypeRed:
		return RGB{205, 0, 0}
	case ColorTypeGreen:
		return RGB{0, 205, 0}
	case ColorTypeYellow:
		return RGB{205, 205, 0}
	case ColorTypeBlue:
		return RGB{0, 0, 238}
	case ColorTypeMagenta:
		return RGB{205, 0, 205}
	case ColorTypeCyan:
		return RGB{0, 205, 205}
	case ColorTypeWhite:
		return RGB{229, 229, 229}
	case ColorTypeBrightBlack:
		return RGB{127, 127, 127}
	case ColorTypeBrightRed:
		return RGB{255, 0, 0}
	case ColorTypeBrightGreen:
		return RGB{0, 255, 0}
	case ColorTypeBrightYellow:
		return RGB{255, 255, 0}
	case ColorTypeBrightBlue:
		return RGB{92, 92, 255}
	case ColorTypeBrightMagenta:
		return RGB{255, 0, 255}
	case ColorTypeBrightCyan:
		return RGB{0, 255, 255}
	case ColorTypeBrightWhite:
		return RGB{255, 255, 255}
	default:
		return RGB{0, 0, 0}
	}
}

// TermColor is a color as requested by the child process: either a direct
// RGB triple or an index into the 256 color palette. It is always resolved
// to RGB before it reaches a cell or the brush.
type TermColor struct {
	Type    TermColorType
	Palette uint8
	RGB     RGB
}

type TermColorType uint8

const (
	TermColorTypeRGB TermColorType = iota
	TermColorTypePalette
)

func Direct(r, g, b uint8) TermColor {
	return TermColor{Type: TermColorTypeRGB, RGB: RGB{r, g, b}}
}

func Indexed(id uint8) TermColor {
	return TermColor{Type: TermColorTypePalette, Palette: id}
}

// Resolve returns the RGB value of c, looking palette indices up in p.
func (c TermColor) Resolve(p *Palette) RGB {
	switch c.Type {
	case TermColorTypePalette:
		return p[c.Palette]
	default:
		return c.RGB
	}
}

func (c TermColor) String() string {
	switch c.Type {
	case TermColorTypePalette:
		return fmt.Sprintf("Color.palette{ %d }", c.Palette)
	default:
		return fmt.Sprintf("Color.rgb{ %d, %d, %d }", c.RGB.R, c.RGB.G, c.RGB.B)
	}
}
