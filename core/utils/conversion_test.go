package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Budi", "Budi"},
		{"bytes", []byte("x"), "x"},
		{"large float keeps digits", float64(3201234567890123), "3201234567890123"},
		{"fraction", 1.5, "1.5"},
		{"bool", true, "TRUE"},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToStringsAndCells(t *testing.T) {
	cells := ToCells([]string{"a", "b"})
	assert.Equal(t, []any{"a", "b"}, cells)
	assert.Equal(t, []string{"a", "b"}, ToStrings(cells))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "no nik", NormalizeKey("No. NIK"))
	assert.Equal(t, "nama lengkap", NormalizeKey("nama_lengkap"))
	assert.Equal(t, "no kk", NormalizeKey("  No_KK "))
	assert.Equal(t, "jk", NormalizeKey("JK"))
	assert.Equal(t, "kabupaten/kota", NormalizeKey("Kabupaten/Kota"))
}
