package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPalette(t *testing.T) {
	tests := []struct {
		id       uint8
		expected RGB
	}{
		{0, RGB{0, 0, 0}},
		{1, RGB{205, 0, 0}},
		{12, RGB{92, 92, 255}},
		{15, RGB{255, 255, 255}},
		{16, RGB{0, 0, 0}},
		{21, RGB{0, 0, 255}},
		{67, RGB{95, 135, 175}},
		{196, RGB{255, 0, 0}},
		{231, RGB{255, 255, 255}},
		{232, RGB{8, 8, 8}},
		{244, RGB{128, 128, 128}},
		{255, RGB{238, 238, 238}},
	}
	for _, tc := range tests {
		t.Run(tc.expected.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, DefaultPalette[tc.id])
		})
	}
}

func TestTermColorResolve(t *testing.T) {
	p := DefaultPalette
	assert.Equal(t, RGB{10, 20, 30}, Direct(10, 20, 30).Resolve(&p))
	assert.Equal(t, RGB{255, 0, 0}, Indexed(196).Resolve(&p))

	p[196] = RGB{1, 2, 3}
	assert.Equal(t, RGB{1, 2, 3}, Indexed(196).Resolve(&p))
}
