package bytesutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormats(t *testing.T) {
	tests := map[int64][2]string{
		-1:                  {"", ""},
		0:                   {"0 B", "0 B"},
		2140:                {"2.09 KiB", "2.14 KB"},
		2828382:             {"2.70 MiB", "2.83 MB"},
		2341234123412341234: {"2.03 EiB", "2.34 EB"},
	}
	for value, expected := range tests {
		assert.Equal(t, expected[0], BinaryFormat(value))
		assert.Equal(t, expected[1], DecimalFormat(value))
	}
}
