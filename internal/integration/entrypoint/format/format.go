// Package format renders report numbers for people: thousands separators,
// currency symbols and two-decimal percentages.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/brokerdash/backend/internal/domain/analytics"
)

// Formatter formats numbers for one locale.
type Formatter struct {
	printer *message.Printer
}

// New creates a Formatter for the given BCP 47 locale, e.g. "en" or "es".
// An unparsable locale falls back to English.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

var defaultFormatter = New("en")

// Amount formats d with thousands separators and two decimals.
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.printer.Sprintf("%.2f", analytics.Round2(d).InexactFloat64())
}

// Integer formats d rounded to a whole number with thousands separators.
func (f *Formatter) Integer(d decimal.Decimal) string {
	return f.printer.Sprintf("%d", d.Round(0).IntPart())
}

// Money formats d as an amount prefixed by the currency symbol.
func (f *Formatter) Money(d decimal.Decimal, symbol string) string {
	if symbol == "" {
		return f.Amount(d)
	}
	return symbol + " " + f.Amount(d)
}

// Percentage formats part/total*100 with two decimals and no thousands
// separators, so 1234 reads "1234.00". A zero total yields "0.00".
func (f *Formatter) Percentage(part, total decimal.Decimal) string {
	return f.Percent(analytics.Percentage(part, total))
}

// Percent formats a value that already is a percentage. Only the decimal mark
// follows the locale; digits are never grouped.
func (f *Formatter) Percent(pct decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(analytics.Round2(pct).InexactFloat64(), number.Scale(2), number.NoSeparator()))
}

// Amount formats d with the default English formatter.
func Amount(d decimal.Decimal) string {
	return defaultFormatter.Amount(d)
}

// Money formats d with the default English formatter.
func Money(d decimal.Decimal, symbol string) string {
	return defaultFormatter.Money(d, symbol)
}

// Percentage formats part/total with the default English formatter.
func Percentage(part, total decimal.Decimal) string {
	return defaultFormatter.Percentage(part, total)
}

// Percent formats a percentage value with the default English formatter.
func Percent(pct decimal.Decimal) string {
	return defaultFormatter.Percent(pct)
}
