// Package loans provides the amortization core: rate normalization, solving
// for an unknown loan variable, schedule generation and summaries.
package loans

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/amortize/pkg/constants"
)

// CalculationMode selects which loan variable is unknown.
type CalculationMode int

const (
	// ModePayment solves for the periodic payment from principal, rate and term.
	ModePayment CalculationMode = iota
	// ModePeriods solves for the number of periods from principal, rate and payment.
	ModePeriods
	// ModeRate solves for the periodic rate from principal, payment and term.
	ModeRate
	// ModePrincipal solves for the principal from rate, payment and term.
	ModePrincipal
)

var modeNames = map[CalculationMode]string{
	ModePayment:   "payment",
	ModePeriods:   "periods",
	ModeRate:      "rate",
	ModePrincipal: "principal",
}

func (m CalculationMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CalculationMode(%d)", int(m))
}

// ParseCalculationMode maps a mode name to its CalculationMode. An empty
// string selects ModePayment.
func ParseCalculationMode(value string) (CalculationMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ModePayment, nil
	}
	for mode, name := range modeNames {
		if name == normalized {
			return mode, nil
		}
	}
	return ModePayment, fmt.Errorf("unknown calculation mode %q: expected payment, periods, rate or principal", value)
}

// MarshalText implements encoding.TextMarshaler.
func (m CalculationMode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("unknown calculation mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *CalculationMode) UnmarshalText(text []byte) error {
	mode, err := ParseCalculationMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Terms holds the per-period view of a loan's rate and length.
type Terms struct {
	PeriodicRate float64
	TotalPeriods int
}

// Normalize converts an annual percentage rate and a term given in years plus
// leftover periods into a periodic rate and a total period count. Inputs are
// expected to be validated by the caller.
func Normalize(annualRatePercent float64, periodsPerYear, years, months int) Terms {
	return Terms{
		PeriodicRate: PeriodicRate(annualRatePercent, periodsPerYear),
		TotalPeriods: years*periodsPerYear + months,
	}
}

// PeriodicRate converts an annual percentage rate into a per-period fraction.
func PeriodicRate(annualRatePercent float64, periodsPerYear int) float64 {
	return fractionOf(annualRatePercent) / float64(periodsPerYear)
}

// AnnualRatePercent converts a per-period fraction back into an annual percentage.
func AnnualRatePercent(periodicRate float64, periodsPerYear int) float64 {
	return periodicRate * float64(periodsPerYear) * constants.PercentageMultiplier
}

// PaymentFor calculates the periodic payment that amortizes principal over
// the given number of periods using the standard annuity formula.
func PaymentFor(principal, periodicRate float64, periods int) float64 {
	n := float64(periods)
	if periodicRate == 0 {
		return principal / n
	}

	power := math.Pow(1+periodicRate, n)
	return principal * periodicRate * power / (power - 1)
}

// PeriodsFor calculates how many periods a payment needs to amortize the
// principal. The result is fractional; the last period of a schedule absorbs
// the remainder.
func PeriodsFor(principal, periodicRate, payment float64) (float64, error) {
	if payment <= 0 {
		return 0, invalidInput("payment", payment, "must be positive")
	}
	if periodicRate == 0 {
		return principal / payment, nil
	}

	interest := principal * periodicRate
	if payment <= interest {
		return 0, fmt.Errorf("%w: payment %.2f, first period interest %.2f", ErrInvalidPayment, payment, interest)
	}
	return -math.Log(1-interest/payment) / math.Log(1+periodicRate), nil
}

// RateFor solves for the periodic rate at which the payment amortizes the
// principal over the given periods. No closed form exists, so it iterates
// Newton-Raphson on the present value of the payment stream.
func RateFor(principal, payment float64, periods, periodsPerYear int) (float64, error) {
	guess := PeriodicRate(constants.InitialRateGuessPercent, periodsPerYear)
	return solveRate(principal, payment, periods, guess, constants.MaxRateIterations)
}

func solveRate(principal, payment float64, periods int, guess float64, maxIterations int) (float64, error) {
	n := float64(periods)
	total := payment * n
	if withinCent(total, principal) {
		return 0, nil
	}
	if total < principal {
		// Only a negative rate would balance this.
		return 0, fmt.Errorf("%w: %d payments of %.2f total less than principal %.2f",
			ErrInvalidPayment, periods, payment, principal)
	}

	rate := guess
	for i := 1; i <= maxIterations; i++ {
		pv, slope := presentValue(payment, rate, n)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return 0, &DidNotConvergeError{Iterations: i, LastEstimate: rate}
		}

		next := rate - (pv-principal)/slope
		if next <= 0 {
			next = min(constants.MinPeriodicRate, rate/2)
		}
		if math.Abs(next-rate) < constants.RateTolerance {
			return next, nil
		}
		rate = next
	}

	return 0, &DidNotConvergeError{Iterations: maxIterations, LastEstimate: rate}
}

// presentValue returns the present value of n payments at the periodic rate
// and its derivative with respect to the rate.
func presentValue(payment, rate, n float64) (float64, float64) {
	discount := math.Pow(1+rate, -n)
	pv := payment * (1 - discount) / rate
	slope := payment * (n*discount/(1+rate)*rate - (1 - discount)) / (rate * rate)
	return pv, slope
}

// PrincipalFor calculates the principal a payment stream can amortize.
func PrincipalFor(periodicRate, payment float64, periods int) float64 {
	n := float64(periods)
	if periodicRate == 0 {
		return payment * n
	}
	return payment * (1 - math.Pow(1+periodicRate, -n)) / periodicRate
}

// Known holds the loan variables supplied to Solve. The field matching the
// mode is ignored.
type Known struct {
	Principal      float64
	PeriodicRate   float64
	TotalPeriods   int
	Payment        float64
	PeriodsPerYear int
}

// Solve computes the variable selected by mode from the other three. Rates
// are returned per period and period counts may be fractional.
func Solve(mode CalculationMode, known Known) (float64, error) {
	if err := known.validate(mode); err != nil {
		return 0, err
	}

	switch mode {
	case ModePayment:
		return PaymentFor(known.Principal, known.PeriodicRate, known.TotalPeriods), nil
	case ModePeriods:
		return PeriodsFor(known.Principal, known.PeriodicRate, known.Payment)
	case ModeRate:
		return RateFor(known.Principal, known.Payment, known.TotalPeriods, known.PeriodsPerYear)
	case ModePrincipal:
		return PrincipalFor(known.PeriodicRate, known.Payment, known.TotalPeriods), nil
	default:
		return 0, fmt.Errorf("unknown calculation mode %d", int(mode))
	}
}

func (k Known) validate(mode CalculationMode) error {
	if mode != ModePrincipal {
		if err := requirePositive("principal", k.Principal); err != nil {
			return err
		}
	}
	if mode != ModeRate {
		if isNotFinite(k.PeriodicRate) || k.PeriodicRate < 0 {
			return invalidInput("periodic rate", k.PeriodicRate, "must not be negative")
		}
	}
	if mode != ModePeriods && k.TotalPeriods <= 0 {
		return invalidInput("total periods", float64(k.TotalPeriods), "must be positive")
	}
	if mode != ModePayment {
		if err := requirePositive("payment", k.Payment); err != nil {
			return err
		}
	}
	if mode == ModeRate && k.PeriodsPerYear <= 0 {
		return invalidInput("periods per year", float64(k.PeriodsPerYear), "must be positive")
	}
	return nil
}

func requirePositive(field string, value float64) error {
	if isNotFinite(value) || value <= 0 {
		return invalidInput(field, value, "must be positive")
	}
	return nil
}

func isNotFinite(value float64) bool {
	return math.IsNaN(value) || math.IsInf(value, 0)
}
