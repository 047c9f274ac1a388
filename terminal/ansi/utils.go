package ansi

import (
	"fmt"
	"strings"
)

// table is a map of ANSI control characters to their names.
// any unsupported ansi characters will have hex value key.
var table = map[uint8]string{
	C0.NUL: "NUL", // Null
	0x01:   "SOH", // Start of Heading
	0x02:   "STX", // Start of Text
	C0.ETX: "ETX", // End of Text
	C0.EOT: "EOT", // End of Transmission
	0x05:   "ENQ", // Enquiry
	0x06:   "ACK", // Acknowledge
	C0.BEL: "BEL", // Bell
	C0.BS:  "BS",  // Backspace
	C0.HT:  "HT",  // Horizontal Tab
	C0.LF:  "LF",  // Line Feed
	0x0B:   "VT",  // Vertical Tab
	0x0C:   "FF",  // Form Feed
	C0.CR:  "CR",  // Carriage Return
	0x0E:   "SO",  // Shift Out
	0x0F:   "SI",  // Shift In
	0x18:   "CAN", // Cancel
	0x1A:   "SUB", // Substitute
	C0.ESC: "ESC", // Escape
	C0.DEL: "DEL", // Delete
}

func String(val uint8) string {
	if name, ok := table[val]; ok {
		return fmt.Sprintf("%s (0x%02X) (%q)", name, val, rune(val))
	}
	return fmt.Sprintf("0x%02X (%q)", val, rune(val))
}

// Quote renders a raw byte span for debug output. Printable ASCII is kept
// as is, control bytes are replaced by their names in angle brackets.
func Quote(p []byte) string {
	var b strings.Builder
	for _, c := range p {
		if name, ok := table[c]; ok {
			b.WriteString("<" + name + ">")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
