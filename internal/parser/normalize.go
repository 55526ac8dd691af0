// Package parser turns free-text spreadsheet instructions into typed
// commands. It classifies intent over an ordered pattern table, normalizes
// captured parameters, resolves deictic references against the session
// selection, and validates the result with example-bearing diagnostics.
package parser

import (
	"math"
	"strconv"
	"strings"

	"gridshell/pkg/gridtypes"
)

// NormalizeCellReference uppercases an A1-style reference. It does not
// validate the format; validation is a separate pass.
func NormalizeCellReference(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeRangeReference uppercases a two-corner reference like "a1:b10".
// Corner order is not normalized and the format is not validated here.
func NormalizeRangeReference(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseValue coerces a raw token into a typed scalar. Coercion order is
// number, then boolean literal, then raw string. Numeric wins over string
// even for inputs like "100", so string-typed numeric IDs ("007") are lossy
// here; the grammar accepts that trade for natural phrasing like
// "set A1 to 100". NaN and infinities stay strings: they are not storable
// cell numbers and cannot survive a JSON round trip.
func ParseValue(s string) any {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return n
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	return trimmed
}

// ColumnLetterToNumber converts a column letter to its 0-based index:
// "A"→0, "Z"→25, "AA"→26. The conversion is base-26 with 1-indexed digits,
// matching spreadsheet column semantics.
func ColumnLetterToNumber(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	n := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return -1
		}
		n = n*26 + int(r-'A') + 1
	}
	return n - 1
}

// ColumnNumberToLetter is the inverse of ColumnLetterToNumber: 0→"A",
// 25→"Z", 26→"AA".
func ColumnNumberToLetter(n int) string {
	if n < 0 {
		return ""
	}
	var b []byte
	for n >= 0 {
		b = append([]byte{byte('A' + n%26)}, b...)
		n = n/26 - 1
	}
	return string(b)
}

// formatKeywords maps phrase substrings to the format they select. Matching
// is case-insensitive and the last matching branch wins; multiple keywords
// in one phrase are not composed, which covers the supported command
// grammar ("format ... as currency", "make ... bold").
var formatKeywords = []struct {
	keyword string
	format  gridtypes.CellFormat
}{
	{"currency", gridtypes.CellFormat{NumberFormat: "$#,##0.00"}},
	{"percentage", gridtypes.CellFormat{NumberFormat: "0.00%"}},
	{"percent", gridtypes.CellFormat{NumberFormat: "0.00%"}},
	{"date", gridtypes.CellFormat{NumberFormat: "yyyy-mm-dd"}},
	{"bold", gridtypes.CellFormat{Bold: boolPtr(true)}},
	{"italic", gridtypes.CellFormat{Italic: boolPtr(true)}},
	{"red", gridtypes.CellFormat{FontColor: "#FF0000"}},
	{"blue", gridtypes.CellFormat{FontColor: "#0000FF"}},
	{"green", gridtypes.CellFormat{FontColor: "#00FF00"}},
}

// ParseFormat keyword-matches a phrase against the fixed format table.
// Returns nil when no keyword matches.
func ParseFormat(text string) *gridtypes.CellFormat {
	lowered := strings.ToLower(text)
	var result *gridtypes.CellFormat
	for _, entry := range formatKeywords {
		if strings.Contains(lowered, entry.keyword) {
			f := entry.format
			result = &f
		}
	}
	return result
}

func boolPtr(b bool) *bool { return &b }
