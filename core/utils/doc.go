// Package utils provides small conversion helpers shared by the sheets
// transport and the row codec: cell value stringification and header key
// normalization.
package utils
