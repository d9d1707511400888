package price

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders monetary amounts as localized display strings with a
// currency suffix, e.g. "1 234kr" for Swedish.
type Formatter struct {
	printer *message.Printer
	suffix  string
}

// NewFormatter builds a formatter for the given BCP 47 locale. An
// unparseable locale falls back to Swedish, the storefront default.
func NewFormatter(locale, suffix string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Swedish
	}
	return &Formatter{printer: message.NewPrinter(tag), suffix: suffix}
}

// Format renders the amount with locale-aware grouping and decimal
// separators, up to two fraction digits, followed by the currency suffix.
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Float64()
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + f.suffix
}
