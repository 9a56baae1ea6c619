package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString converts a spreadsheet cell value to its string form.
// Floats are printed without exponent so long digit strings (NIK, No KK)
// read back from unformatted cells keep every digit.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToStrings converts a row of cell values.
func ToStrings(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = ToString(v)
	}
	return out
}

// ToCells converts strings to the []any shape the Sheets API expects.
func ToCells(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// NormalizeKey lowercases a header and collapses underscores, dots and
// repeated whitespace into single spaces ("No._KK " -> "no kk").
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", ".", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
