package config

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/iwvelando/amortize/internal/calculator"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/loans"
)

// ToRequest converts a configured loan into a calculator request, parsing its
// mode and dates.
func (loan Loan) ToRequest() (calculator.Request, error) {
	mode, err := loans.ParseCalculationMode(loan.Mode)
	if err != nil {
		return calculator.Request{}, fmt.Errorf("loan %q: %w", loan.Name, err)
	}

	startDate, err := parseField(loan.Name, "startDate", loan.StartDate)
	if err != nil {
		return calculator.Request{}, err
	}

	extra, err := loan.ExtraPayments.toLoans(loan.Name)
	if err != nil {
		return calculator.Request{}, err
	}

	return calculator.Request{
		Name:              loan.Name,
		Mode:              mode,
		Principal:         loan.Principal,
		AnnualRatePercent: loan.AnnualRate,
		Years:             loan.Years,
		Months:            loan.Months,
		PeriodsPerYear:    loan.PeriodsPerYear,
		Payment:           loan.Payment,
		StartDate:         startDate,
		Extra:             extra,
	}, nil
}

func (e ExtraPayments) toLoans(loanName string) (loans.ExtraPayments, error) {
	var extra loans.ExtraPayments
	var err error

	extra.Monthly.Amount = e.Monthly.Amount
	if e.Monthly.StartDate != "" {
		if extra.Monthly.StartDate, err = parseField(loanName, "extraPayments.monthly.startDate", e.Monthly.StartDate); err != nil {
			return extra, err
		}
	}

	extra.Yearly.Amount = e.Yearly.Amount
	if e.Yearly.StartDate != "" {
		if extra.Yearly.StartDate, err = parseField(loanName, "extraPayments.yearly.startDate", e.Yearly.StartDate); err != nil {
			return extra, err
		}
	}

	for i, payment := range e.OneTime {
		date, err := parseField(loanName, fmt.Sprintf("extraPayments.oneTime[%d].date", i), payment.Date)
		if err != nil {
			return extra, err
		}
		extra.OneTime = append(extra.OneTime, loans.OneTimeExtra{Date: date, Amount: payment.Amount})
	}

	return extra, nil
}

func parseField(loanName, field, value string) (civil.Date, error) {
	if value == "" {
		return civil.Date{}, fmt.Errorf("loan %q: %s is required", loanName, field)
	}
	date, err := datetime.ParseDate(value)
	if err != nil {
		return civil.Date{}, fmt.Errorf("loan %q: %s: %w", loanName, field, err)
	}
	return date, nil
}

// Requests converts every configured loan into a calculator request.
func (c *Configuration) Requests() ([]calculator.Request, error) {
	requests := make([]calculator.Request, 0, len(c.Loans))
	for _, loan := range c.Loans {
		req, err := loan.ToRequest()
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
