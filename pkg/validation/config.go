// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/loans"
)

const (
	// fractionalRateCeiling flags rates that look like fractions rather than percentages
	fractionalRateCeiling = 1.0

	// highRateThreshold flags annual rates above this percentage
	highRateThreshold = 50.0

	// longTermYears flags terms longer than this many years
	longTermYears = 50
)

// ValidateLoan returns warnings for settings that are accepted but are likely
// mistakes. It never rejects a loan; hard preconditions are enforced by the
// loans package. The known fields depend on mode, so the unknown one is not
// inspected.
func ValidateLoan(loan loans.LoanDefinition, mode loans.CalculationMode, payment float64) []string {
	var warnings []string

	if mode != loans.ModeRate {
		if loan.AnnualRatePercent > 0 && loan.AnnualRatePercent < fractionalRateCeiling {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' has an annual rate of %.4f%% - rates are percentages, e.g. 6 for 6%%",
				loan.Name, loan.AnnualRatePercent))
		}
		if loan.AnnualRatePercent > highRateThreshold {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' has an unusually high annual rate of %.2f%%",
				loan.Name, loan.AnnualRatePercent))
		}
	}

	if mode != loans.ModePeriods && loan.PeriodsPerYear > 0 && loan.TermPeriods > longTermYears*loan.PeriodsPerYear {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' runs for more than %d years (%d periods)",
			loan.Name, longTermYears, loan.TermPeriods))
	}

	if mode == loans.ModePayment && payment > 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' declares a payment of %.2f which is ignored when solving for the payment",
			loan.Name, payment))
	}

	warnings = append(warnings, ValidateExtraPayments(loan, mode)...)
	return warnings
}

// ValidateExtraPayments checks that one-time extra payments fall inside the
// schedule's nominal lifetime.
func ValidateExtraPayments(loan loans.LoanDefinition, mode loans.CalculationMode) []string {
	var warnings []string

	for _, extra := range loan.Extra.OneTime {
		if extra.Date.Before(loan.StartDate) && !datetime.SameMonth(extra.Date, loan.StartDate) {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' one-time extra payment on %s is before the loan starts (%s) and will not be applied",
				loan.Name, extra.Date, loan.StartDate))
			continue
		}
		if mode == loans.ModePeriods || loan.TermPeriods <= 0 {
			continue
		}
		maturity := datetime.PeriodDate(loan.StartDate, loan.TermPeriods-1, loan.PeriodsPerYear)
		if extra.Date.After(maturity) && !datetime.SameMonth(extra.Date, maturity) {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' one-time extra payment on %s is after the loan matures (%s) and will not be applied",
				loan.Name, extra.Date, maturity))
		}
	}

	return warnings
}
