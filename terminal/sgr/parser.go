// SGR (Select Graphic Rendition) attribute classification.
//
// Only color changes are understood: reset, default foreground/background,
// 256 color palette selection and direct RGB. Everything else classifies
// as AttributeTypeUnknown and is ignored by the terminal.
package sgr

import (
	"github.com/hnimtadd/emuterm/terminal/color"
	"github.com/hnimtadd/emuterm/terminal/lexer"
)

type AttributeType uint16

const (
	// Reset both pen colors.
	AttributeTypeUnset AttributeType = iota

	// Reset fg colors.
	AttributeTypeResetFg
	// Reset bg colors.
	AttributeTypeResetBg

	// Fg from the 256 color palette.
	AttributeTypePaletteFg
	// Bg from the 256 color palette.
	AttributeTypePaletteBg

	// Fg direct color
	AttributeTypeDirectColorFg
	// Bg direct color
	AttributeTypeDirectColorBg

	// Unknown
	AttributeTypeUnknown
)

func (t AttributeType) String() string {
	switch t {
	case AttributeTypeUnset:
		return "unset"
	case AttributeTypeResetFg:
		return "reset_fg"
	case AttributeTypeResetBg:
		return "reset_bg"
	case AttributeTypePaletteFg:
		return "palette_fg"
	case AttributeTypePaletteBg:
		return "palette_bg"
	case AttributeTypeDirectColorFg:
		return "direct_color_fg"
	case AttributeTypeDirectColorBg:
		return "direct_color_bg"
	default:
		return "unknown"
	}
}

// Attribute is the effect of one graphics rendition sequence. Color is
// set for the palette and direct color types.
type Attribute struct {
	Type  AttributeType
	Color color.TermColor
}

// Parse classifies the parameters of a graphics rendition sequence.
// The parameter count matters: "38;5;196" selects a palette color while
// "38;5;196;0" is unknown.
func Parse(g lexer.Graphics) Attribute {
	p := g.Params
	switch g.Count {
	case 1:
		switch p[0] {
		case 0:
			return Attribute{Type: AttributeTypeUnset}
		case 39:
			return Attribute{Type: AttributeTypeResetFg}
		case 49:
			return Attribute{Type: AttributeTypeResetBg}
		}

	case 3:
		if p[1] != 5 {
			break
		}
		switch p[0] {
		case 38:
			return Attribute{Type: AttributeTypePaletteFg, Color: color.Indexed(p[2])}
		case 48:
			return Attribute{Type: AttributeTypePaletteBg, Color: color.Indexed(p[2])}
		}

	case 5:
		if p[1] != 2 {
			break
		}
		switch p[0] {
		case 38:
			return Attribute{Type: AttributeTypeDirectColorFg, Color: color.Direct(p[2], p[3], p[4])}
		case 48:
			return Attribute{Type: AttributeTypeDirectColorBg, Color: color.Direct(p[2], p[3], p[4])}
		}
	}
	return Attribute{Type: AttributeTypeUnknown}
}
