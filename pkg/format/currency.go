// Package format renders currency and percentage values for display.
package format

import (
	"fmt"
	"strings"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with the digit grouping and decimal separator of
// a locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

var defaultFormatter = NewFormatter(language.AmericanEnglish, "$")

// NewFormatter creates a formatter for the locale. The symbol is prefixed to
// currency values and may be empty.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Default returns the en-US dollar formatter used by the package-level functions.
func Default() *Formatter {
	return defaultFormatter
}

// ParseLocale parses a BCP 47 locale such as "en-US" or "de-DE". An empty
// locale selects the default.
func ParseLocale(locale string) (language.Tag, error) {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		trimmed = constants.DefaultLocale
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return tag, nil
}

// Currency renders an amount with cents, e.g. "-$1,234.56".
func (f *Formatter) Currency(amount float64) string {
	return f.currency(amount, constants.CurrencyPlaces)
}

// CurrencyWhole renders an amount rounded to whole units, e.g. "$1,199".
func (f *Formatter) CurrencyWhole(amount float64) string {
	return f.currency(amount, 0)
}

// Number renders an amount with separators and no symbol, e.g. "1,234.56".
func (f *Formatter) Number(amount float64) string {
	return f.number(decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces), constants.CurrencyPlaces)
}

// Percentage renders a percentage value such as 53.669 as "53.67%".
func (f *Formatter) Percentage(value float64, places int32) string {
	rounded := decimal.NewFromFloat(value).Round(places)
	return f.number(rounded, places) + "%"
}

func (f *Formatter) currency(amount float64, places int32) string {
	rounded := decimal.NewFromFloat(amount).Round(places)
	if rounded.IsNegative() {
		return "-" + f.symbol + f.number(rounded.Abs(), places)
	}
	return f.symbol + f.number(rounded, places)
}

func (f *Formatter) number(value decimal.Decimal, places int32) string {
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", places), value.InexactFloat64())
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return defaultFormatter.Currency(amount)
}

// CurrencyWhole returns a dollar amount without cents (e.g., "$1,199").
func CurrencyWhole(amount float64) string {
	return defaultFormatter.CurrencyWhole(amount)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return defaultFormatter.Number(amount)
}

// Percentage returns a percentage with the given number of decimals (e.g., "46.33%").
func Percentage(value float64, places int32) string {
	return defaultFormatter.Percentage(value, places)
}
