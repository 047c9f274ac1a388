package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, `ESC (0x1B) ('\x1b')`, String(C0.ESC))
	assert.Equal(t, `0x41 ('A')`, String('A'))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "<ESC>[2J<CR><LF>ok", Quote([]byte("\x1b[2J\r\nok")))
}
