package emuterm

import "github.com/hnimtadd/emuterm/terminal/ansi"

// Key is a keyboard or mouse action with a fixed byte payload. Printable
// characters are sent as their UTF-8 bytes instead.
type Key uint8

const (
	KeyEnter Key = iota
	KeySpace
	KeyBackspace
	KeyEscape
	KeyInterrupt
	KeyWheelUp
	KeyWheelDown
)

var keyPayloads = [...][]byte{
	KeyEnter:     {ansi.C0.LF},
	KeySpace:     {' '},
	KeyBackspace: {ansi.C0.DEL},
	KeyEscape:    {ansi.C0.ESC},
	KeyInterrupt: {ansi.C0.ETX},
	KeyWheelUp:   {ansi.C0.ESC, '[', 'T'},
	KeyWheelDown: {ansi.C0.ESC, '[', 'S'},
}

var keyNames = [...]string{
	KeyEnter:     "Enter",
	KeySpace:     "Space",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeyInterrupt: "Interrupt",
	KeyWheelUp:   "WheelUp",
	KeyWheelDown: "WheelDown",
}

// Bytes returns the payload written to the child for k. The slice is a
// fresh copy.
func (k Key) Bytes() []byte {
	if int(k) >= len(keyPayloads) {
		return nil
	}
	return append([]byte(nil), keyPayloads[k]...)
}

func (k Key) String() string {
	if int(k) >= len(keyNames) {
		return "Unknown"
	}
	return keyNames[k]
}
