package sync

import (
	"fmt"
	"strings"
	"unicode"
)

// a1 prefixes a cell range with a sheet name, quoting names that are not
// plain identifiers ("Data Warga" -> 'Data Warga'!A1:S).
func a1(sheetName, rng string) string {
	if sheetName == "" {
		return rng
	}
	return quoteSheetName(sheetName) + "!" + rng
}

func quoteSheetName(name string) string {
	plain := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func rowRange(sheetName string, row int) string {
	return a1(sheetName, fmt.Sprintf("A%d:S%d", row, row))
}
