// Package money normalizes locale-specific monetary strings and performs
// decimal-safe arithmetic over parsed amounts.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/models"
)

// symbolReplacer strips currency symbols and whitespace before parsing.
var symbolReplacer = strings.NewReplacer(
	"R$", "",
	"US$", "",
	"$", "",
	" ", "",
	" ", "",
	"\t", "",
)

// Parse converts a locale-formatted monetary string into a float64 amount.
// For pt-BR it removes `.` thousands separators and swaps `,` to the decimal
// point; for en-US it removes `,` thousands separators. Malformed input never
// produces an error: the second return value is false for blank input or any
// input that does not parse to a finite number.
func Parse(value string, format models.CurrencyFormat) (float64, bool) {
	cleaned := symbolReplacer.Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return 0, false
	}

	switch format {
	case models.FormatPTBR:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case models.FormatENUS:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Format renders an amount with two decimals, grouped thousands and a
// leading `-` for negatives, using the separators of the given format.
func Format(value float64, format models.CurrencyFormat, includeSymbol bool) string {
	d := decimal.NewFromFloat(value)
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	thousandsSep, decimalSep := ",", "."
	if format == models.FormatPTBR {
		thousandsSep, decimalSep = ".", ","
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	if includeSymbol {
		b.WriteString(format.Symbol())
		if format == models.FormatPTBR {
			b.WriteByte(' ')
		}
	}
	b.WriteString(groupThousands(intPart, thousandsSep))
	b.WriteString(decimalSep)
	b.WriteString(fracPart)
	return b.String()
}

// groupThousands inserts sep every three digits from the right.
func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Sum adds amounts without binary floating-point drift by accumulating
// integer cents: each value is scaled by 100 and rounded to the nearest
// integer before addition, so Sum([]float64{0.1, 0.2}) is exactly 0.3.
func Sum(values []float64) float64 {
	var cents int64
	for _, v := range values {
		cents += int64(math.Round(v * 100))
	}
	return float64(cents) / 100
}

// Add is a convenience wrapper over Sum for two amounts.
func Add(a, b float64) float64 {
	return Sum([]float64{a, b})
}

// DetectFormat guesses the currency format of a sample value by separator
// position: a single `,` within the last three characters implies pt-BR, a
// single `.` within the last three implies en-US. Ambiguous input yields
// ok == false.
func DetectFormat(value string) (models.CurrencyFormat, bool) {
	cleaned := symbolReplacer.Replace(strings.TrimSpace(value))
	n := len(cleaned)
	if n == 0 {
		return "", false
	}

	commas := strings.Count(cleaned, ",")
	dots := strings.Count(cleaned, ".")

	if commas == 1 && strings.LastIndex(cleaned, ",") >= n-3 {
		return models.FormatPTBR, true
	}
	if dots == 1 && strings.LastIndex(cleaned, ".") >= n-3 {
		return models.FormatENUS, true
	}
	return "", false
}
