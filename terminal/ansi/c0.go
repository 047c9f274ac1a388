package ansi

type c0 struct {
	NUL uint8 // NUL is the null character (Caret: ^@, Char: \0).
	ETX uint8 // ETX is the end of text character, sent for an interrupt (Caret: ^C).
	EOT uint8 // EOT is the end of transmission character, end of input for a shell (Caret: ^D).
	BEL uint8 // BEL is the bell character (Caret: ^G, Char: \a).
	BS  uint8 // BS is the backspace character (Caret: ^H, Char: \b).
	HT  uint8 // HT is the horizontal tab character (Caret: ^I, Char: \t).
	LF  uint8 // LF is the line feed character (Caret: ^J, Char: \n).
	CR  uint8 // CR is the carriage return character (Caret: ^M, Char: \r).
	ESC uint8 // ESC is the Escape character (Caret: ^[).
	DEL uint8 // DEL is the delete character, sent by the backspace key (Caret: ^?).
}

// C0 (7-bit) control characters the engine reacts to or emits.
//
// This is not complete, control characters are only added to this
// as the engine handles them.
var C0 = c0{
	NUL: 0x00,
	ETX: 0x03,
	EOT: 0x04,
	BEL: 0x07,
	BS:  0x08,
	HT:  0x09,
	LF:  0x0A,
	CR:  0x0D,
	ESC: 0x1B,
	DEL: 0x7F,
}
