package lexer

import (
	"fmt"
	"strings"
)

// Kind identifies the control function a Code carries.
type Kind uint8

const (
	KindEscape Kind = iota
	KindCursorPosition
	KindCursorUp
	KindCursorDown
	KindCursorForward
	KindCursorBackward
	KindResetStyle
	KindCursorSave
	KindCursorRestore
	KindEnableCursorBlink
	KindDisableCursorBlink
	KindEraseDisplay
	KindEraseAllDisplay
	KindEraseLine
	KindSetGraphicsMode
	KindSetMode
	KindResetMode
	KindHideCursor
	KindShowCursor
	KindCursorToApp
	KindSetNewLineMode
	KindSetCol132
	KindSetSmoothScroll
	KindSetReverseVideo
	KindSetOriginRelative
	KindSetAutoWrap
	KindSetAutoRepeat
	KindSetInterlacing
	KindSetLineFeedMode
	KindSetCursorKeyToCursor
	KindSetVT52
	KindSetCol80
	KindSetJumpScrolling
	KindSetNormalVideo
	KindSetOriginAbsolute
	KindResetAutoWrap
	KindResetAutoRepeat
	KindResetInterlacing
	KindSetAlternateKeypad
	KindSetNumericKeypad
	KindSetUKG0
	KindSetUKG1
	KindSetUSG0
	KindSetUSG1
	KindSetG0SpecialChars
	KindSetG1SpecialChars
	KindSetG0AlternateChar
	KindSetG1AlternateChar
	KindSetG0AltAndSpecialGraph
	KindSetG1AltAndSpecialGraph
	KindSetSingleShift2
	KindSetSingleShift3
	KindSetScrollRegion
	KindEnableBracketedPaste
	KindDisableBracketedPaste

	kindCount
)

var kindNames = [kindCount]string{
	KindEscape:                  "Escape",
	KindCursorPosition:          "CursorPosition",
	KindCursorUp:                "CursorUp",
	KindCursorDown:              "CursorDown",
	KindCursorForward:           "CursorForward",
	KindCursorBackward:          "CursorBackward",
	KindResetStyle:              "ResetStyle",
	KindCursorSave:              "CursorSave",
	KindCursorRestore:           "CursorRestore",
	KindEnableCursorBlink:       "EnableCursorBlink",
	KindDisableCursorBlink:      "DisableCursorBlink",
	KindEraseDisplay:            "EraseDisplay",
	KindEraseAllDisplay:         "EraseAllDisplay",
	KindEraseLine:               "EraseLine",
	KindSetGraphicsMode:         "SetGraphicsMode",
	KindSetMode:                 "SetMode",
	KindResetMode:               "ResetMode",
	KindHideCursor:              "HideCursor",
	KindShowCursor:              "ShowCursor",
	KindCursorToApp:             "CursorToApp",
	KindSetNewLineMode:          "SetNewLineMode",
	KindSetCol132:               "SetCol132",
	KindSetSmoothScroll:         "SetSmoothScroll",
	KindSetReverseVideo:         "SetReverseVideo",
	KindSetOriginRelative:       "SetOriginRelative",
	KindSetAutoWrap:             "SetAutoWrap",
	KindSetAutoRepeat:           "SetAutoRepeat",
	KindSetInterlacing:          "SetInterlacing",
	KindSetLineFeedMode:         "SetLineFeedMode",
	KindSetCursorKeyToCursor:    "SetCursorKeyToCursor",
	KindSetVT52:                 "SetVT52",
	KindSetCol80:                "SetCol80",
	KindSetJumpScrolling:        "SetJumpScrolling",
	KindSetNormalVideo:          "SetNormalVideo",
	KindSetOriginAbsolute:       "SetOriginAbsolute",
	KindResetAutoWrap:           "ResetAutoWrap",
	KindResetAutoRepeat:         "ResetAutoRepeat",
	KindResetInterlacing:        "ResetInterlacing",
	KindSetAlternateKeypad:      "SetAlternateKeypad",
	KindSetNumericKeypad:        "SetNumericKeypad",
	KindSetUKG0:                 "SetUKG0",
	KindSetUKG1:                 "SetUKG1",
	KindSetUSG0:                 "SetUSG0",
	KindSetUSG1:                 "SetUSG1",
	KindSetG0SpecialChars:       "SetG0SpecialChars",
	KindSetG1SpecialChars:       "SetG1SpecialChars",
	KindSetG0AlternateChar:      "SetG0AlternateChar",
	KindSetG1AlternateChar:      "SetG1AlternateChar",
	KindSetG0AltAndSpecialGraph: "SetG0AltAndSpecialGraph",
	KindSetG1AltAndSpecialGraph: "SetG1AltAndSpecialGraph",
	KindSetSingleShift2:         "SetSingleShift2",
	KindSetSingleShift3:         "SetSingleShift3",
	KindSetScrollRegion:         "SetScrollRegion",
	KindEnableBracketedPaste:    "EnableBracketedPaste",
	KindDisableBracketedPaste:   "DisableBracketedPaste",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Graphics holds the parameters of a graphics rendition (SGR) sequence.
// Count is the number of parameters present in the sequence (1..5),
// unused trailing slots are zero.
type Graphics struct {
	Count  uint8
	Params [5]uint8
}

// Code is one decoded control function. Only the fields that belong to
// Kind are meaningful, the others are left zero. Defaults are already
// applied, a Code never carries an unset parameter.
type Code struct {
	Kind Kind

	// 1-based target of KindCursorPosition.
	Row, Col uint32

	// Distance of KindCursorUp, KindCursorDown, KindCursorForward and
	// KindCursorBackward.
	Amount uint32

	// Parameters of KindSetGraphicsMode.
	Graphics Graphics

	// Mode number of KindSetMode and KindResetMode.
	Mode uint8

	// Margins of KindSetScrollRegion.
	Top, Bottom uint32
}

func (Code) token() {}

func (c Code) String() string {
	switch c.Kind {
	case KindCursorPosition:
		return fmt.Sprintf("%s(%d, %d)", c.Kind, c.Row, c.Col)
	case KindCursorUp, KindCursorDown, KindCursorForward, KindCursorBackward:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Amount)
	case KindSetGraphicsMode:
		params := make([]string, c.Graphics.Count)
		for i := range params {
			params[i] = fmt.Sprint(c.Graphics.Params[i])
		}
		return fmt.Sprintf("%s(%s)", c.Kind, strings.Join(params, ", "))
	case KindSetMode, KindResetMode:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Mode)
	case KindSetScrollRegion:
		return fmt.Sprintf("%s(%d, %d)", c.Kind, c.Top, c.Bottom)
	default:
		return c.Kind.String()
	}
}

func CursorPosition(row, col uint32) Code {
	return Code{Kind: KindCursorPosition, Row: row, Col: col}
}

func CursorMove(kind Kind, amount uint32) Code {
	return Code{Kind: kind, Amount: amount}
}

// SGR builds a graphics rendition code. At most five parameters are kept.
func SGR(params ...uint8) Code {
	c := Code{Kind: KindSetGraphicsMode}
	c.Graphics.Count = uint8(copy(c.Graphics.Params[:], params))
	return c
}

func ScrollRegion(top, bottom uint32) Code {
	return Code{Kind: KindSetScrollRegion, Top: top, Bottom: bottom}
}
