package sync

import (
	"strings"

	"smartwarga/core/utils"
	"smartwarga/feature/resident"
)

// SplitLine tokenizes one CSV line. Both ',' and ';' separate fields; a '"'
// toggles quoted state, inside which delimiters are literal and '""' is an
// escaped quote. Fields are trimmed.
func SplitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case (ch == ',' || ch == ';') && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}

// ReadCSV splits CSV text into its header and data records. Blank lines are
// dropped. A quoted field may not span lines.
func ReadCSV(text string) (header []string, records [][]string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line)
		if header == nil {
			header = fields
			continue
		}
		records = append(records, fields)
	}
	return header, records
}

// MapRows binds records to header fields. Missing trailing cells read as
// empty; records with every cell empty are dropped. When two headers map to
// the same field the rightmost column wins.
func MapRows(header []string, records [][]string) []Row {
	fields := make([]Field, len(header))
	for i, h := range header {
		fields[i] = LookupField(h)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		var row Row
		for i, h := range header {
			value := ""
			if i < len(rec) {
				value = strings.TrimSpace(rec[i])
			}
			if fields[i] == FieldUnknown {
				if row.Extra == nil {
					row.Extra = make(map[string]string)
				}
				row.Extra[h] = value
				continue
			}
			row.Set(fields[i], value)
		}
		rows = append(rows, row)
	}
	return rows
}

// MapValues binds Sheets API values (header first) to rows.
func MapValues(values [][]any) (header []string, rows []Row) {
	if len(values) == 0 {
		return nil, nil
	}
	header = utils.ToStrings(values[0])
	records := make([][]string, 0, len(values)-1)
	for _, v := range values[1:] {
		records = append(records, utils.ToStrings(v))
	}
	return header, MapRows(header, records)
}

// NormalizedHeaders returns the canonical name of each recognized header and
// the original text of the rest.
func NormalizedHeaders(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if f := LookupField(h); f != FieldUnknown {
			out[i] = Headers[int(f)-1]
		} else {
			out[i] = h
		}
	}
	return out
}

// HasField reports whether any header maps to f.
func HasField(header []string, f Field) bool {
	for _, h := range header {
		if LookupField(h) == f {
			return true
		}
	}
	return false
}

// WriteCSV renders residents as CSV in the Headers layout. The header line is
// bare; every data field is quoted.
func WriteCSV(residents []resident.Resident) string {
	lines := make([]string, 0, len(residents)+1)
	lines = append(lines, strings.Join(Headers, ","))
	for _, res := range residents {
		row := EncodeResident(res)
		values := row.Values()
		for i, v := range values {
			values[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(values, ","))
	}
	return strings.Join(lines, "\n")
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
