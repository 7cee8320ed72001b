// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/amortize/internal/calculator"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/loans"
)

// FindResult finds a result by loan name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []calculator.Result, name string) *calculator.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// StandardMortgage is a 30-year $200,000 loan at 6% starting 2025-01-01. Its
// payment is 1199.10 and it accrues 231,676.38 of interest.
func StandardMortgage() calculator.Request {
	return calculator.Request{
		Name:              "30-year fixed",
		Mode:              loans.ModePayment,
		Principal:         200000,
		AnnualRatePercent: 6,
		Years:             30,
		PeriodsPerYear:    12,
		StartDate:         datetime.MustParseDate("2025-01-01"),
	}
}

// WithMonthlyExtra returns the request with a recurring monthly extra payment
// starting with the loan.
func WithMonthlyExtra(req calculator.Request, amount float64) calculator.Request {
	req.Extra.Monthly = loans.RecurringExtra{Amount: amount}
	return req
}
