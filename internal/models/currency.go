package models

// CurrencyFormat identifies the locale convention used to write amounts
// in an imported statement.
type CurrencyFormat string

const (
	// FormatPTBR uses `.` as the thousands separator and `,` as the
	// decimal separator (e.g. "1.234,56").
	FormatPTBR CurrencyFormat = "pt-BR"
	// FormatENUS uses `,` as the thousands separator and `.` as the
	// decimal separator (e.g. "1,234.56").
	FormatENUS CurrencyFormat = "en-US"
)

// Symbol returns the currency symbol conventionally paired with the format.
func (f CurrencyFormat) Symbol() string {
	if f == FormatPTBR {
		return "R$"
	}
	return "$"
}

// AmountFilterMode selects whether a value-range filter compares the
// algebraic (signed) amount or its absolute magnitude.
type AmountFilterMode string

const (
	AmountFilterSigned   AmountFilterMode = "signed"
	AmountFilterAbsolute AmountFilterMode = "absolute"
)
