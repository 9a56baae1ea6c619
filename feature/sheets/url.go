package sheets

import (
	"regexp"
	"strings"
)

var (
	fullPathPattern  = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	shortPathPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
)

// ExtractSheetID pulls the spreadsheet id out of a Google Sheets URL.
// It reports false when the URL carries no id.
func ExtractSheetID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if m := fullPathPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if m := shortPathPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

// PublishedCSVURL is the publish-to-web CSV endpoint of a sheet.
func PublishedCSVURL(baseURL, sheetID string) string {
	return strings.TrimRight(baseURL, "/") + "/spreadsheets/d/" + sheetID + "/pub?output=csv"
}

// ExportCSVURL is the export endpoint used when the sheet is shared but not published.
func ExportCSVURL(baseURL, sheetID string) string {
	return strings.TrimRight(baseURL, "/") + "/spreadsheets/d/" + sheetID + "/export?format=csv&gid=0"
}
