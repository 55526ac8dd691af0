package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCellReference(t *testing.T) {
	assert.Equal(t, "A1", NormalizeCellReference(" a1 "))
	assert.Equal(t, "AA10", NormalizeCellReference("aa10"))
	// Format is not validated here; validation is a separate pass.
	assert.Equal(t, "NOT-A-REF", NormalizeCellReference("not-a-ref"))
}

func TestParseValue_CoercionOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{"integer becomes number", "100", float64(100)},
		{"decimal becomes number", "3.14", 3.14},
		{"negative number", "-42", float64(-42)},
		{"numeric-looking string is lossy", "007", float64(7)},
		{"true literal", "true", true},
		{"false literal case-insensitive", "FALSE", false},
		{"plain string", "hello world", "hello world"},
		{"trimmed string", "  hello  ", "hello"},
		{"NaN stays a string", "NaN", "NaN"},
		{"infinity stays a string", "Inf", "Inf"},
		{"negative infinity stays a string", "-Infinity", "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseValue(tt.input))
		})
	}
}

func TestColumnLetterToNumber(t *testing.T) {
	tests := []struct {
		letter   string
		expected int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"a", 0},
		{"", -1},
		{"A1", -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ColumnLetterToNumber(tt.letter), "letter %q", tt.letter)
	}
}

func TestColumnNumberToLetter_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 25, 26, 51, 52, 701, 702} {
		letter := ColumnNumberToLetter(n)
		require.NotEmpty(t, letter)
		assert.Equal(t, n, ColumnLetterToNumber(letter), "n=%d letter=%s", n, letter)
	}
	assert.Equal(t, "A", ColumnNumberToLetter(0))
	assert.Equal(t, "Z", ColumnNumberToLetter(25))
	assert.Equal(t, "AA", ColumnNumberToLetter(26))
}

func TestParseFormat(t *testing.T) {
	currency := ParseFormat("format this as currency")
	require.NotNil(t, currency)
	assert.Equal(t, "$#,##0.00", currency.NumberFormat)

	percent := ParseFormat("percent")
	require.NotNil(t, percent)
	assert.Equal(t, "0.00%", percent.NumberFormat)

	date := ParseFormat("as a date")
	require.NotNil(t, date)
	assert.Equal(t, "yyyy-mm-dd", date.NumberFormat)

	bold := ParseFormat("BOLD")
	require.NotNil(t, bold)
	require.NotNil(t, bold.Bold)
	assert.True(t, *bold.Bold)

	red := ParseFormat("red")
	require.NotNil(t, red)
	assert.Equal(t, "#FF0000", red.FontColor)

	assert.Nil(t, ParseFormat("no keyword here"))
}

func TestParseFormat_LastMatchingBranchWins(t *testing.T) {
	// Keywords are not composed; the last matching table branch wins.
	format := ParseFormat("currency bold")
	require.NotNil(t, format)
	require.NotNil(t, format.Bold)
	assert.True(t, *format.Bold)
	assert.Empty(t, format.NumberFormat)
}
