package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/emuterm"
)

// Translate returns the bytes to send to the child for a key press, or
// nil when the key has no payload.
func Translate(ev *tcell.EventKey) []byte {
	switch key := ev.Key(); key {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return emuterm.KeySpace.Bytes()
		}
		return []byte(string(ev.Rune()))
	case tcell.KeyEnter:
		return emuterm.KeyEnter.Bytes()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return emuterm.KeyBackspace.Bytes()
	case tcell.KeyEscape:
		return emuterm.KeyEscape.Bytes()
	case tcell.KeyCtrlC:
		return emuterm.KeyInterrupt.Bytes()
	default:
		// Remaining control keys (Ctrl+letter, tab) carry their own byte.
		if key <= tcell.KeyUS {
			return []byte{byte(key)}
		}
		return nil
	}
}

// TranslateMouse returns the payload for a wheel scroll, or nil.
func TranslateMouse(ev *tcell.EventMouse) []byte {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return emuterm.KeyWheelUp.Bytes()
	case buttons&tcell.WheelDown != 0:
		return emuterm.KeyWheelDown.Bytes()
	default:
		return nil
	}
}
