package loans

import (
	"math"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/shopspring/decimal"
)

// Amounts are carried as float64 and compared at one cent.

// settled reports whether a remaining balance is small enough to count as
// paid off.
func settled(balance float64) bool {
	return math.Abs(balance) <= constants.CurrencyTolerance
}

func withinCent(a, b float64) bool {
	return math.Abs(a-b) <= constants.CurrencyTolerance
}

// roundCents rounds half away from zero to whole cents.
func roundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces).InexactFloat64()
}

// shareOf returns part as a percentage of total, or 0 when total is 0.
func shareOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * constants.PercentageMultiplier
}

func fractionOf(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}
