// Package calculator resolves a loan request into a complete result: it fills
// in the unknown variable, expands the schedule and summarizes it.
package calculator

import (
	"fmt"
	"math"

	"cloud.google.com/go/civil"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/loans"
	"github.com/iwvelando/amortize/pkg/validation"
	"go.uber.org/zap"
)

// periodSlack absorbs floating error when rounding a solved period count up.
const periodSlack = 1e-9

// Request describes one loan with exactly one unknown, selected by Mode.
type Request struct {
	Name              string                `json:"name"`
	Mode              loans.CalculationMode `json:"mode"`
	Principal         float64               `json:"principal"`
	AnnualRatePercent float64               `json:"annualRate"`
	Years             int                   `json:"years"`
	Months            int                   `json:"months"`
	PeriodsPerYear    int                   `json:"periodsPerYear"`
	Payment           float64               `json:"payment"`
	StartDate         civil.Date            `json:"startDate"`
	Extra             loans.ExtraPayments   `json:"extraPayments"`
}

// Result is a fully resolved loan.
type Result struct {
	Name              string                `json:"name"`
	Mode              loans.CalculationMode `json:"mode"`
	Principal         float64               `json:"principal"`
	AnnualRatePercent float64               `json:"annualRate"`
	PeriodsPerYear    int                   `json:"periodsPerYear"`
	TermPeriods       int                   `json:"termPeriods"`
	// ExactPeriods is the fractional period count when periods were solved for.
	ExactPeriods float64               `json:"exactPeriods"`
	Payment      float64               `json:"payment"`
	Schedule     []loans.ScheduleEntry `json:"schedule"`
	Summary      loans.Summary         `json:"summary"`
	Yearly       []loans.YearTotals    `json:"yearly"`
	Savings      *loans.Savings        `json:"savings,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
}

// Calculate solves for the request's unknown and builds its schedule. When
// extra payments are configured the result also carries the savings against
// the same loan without them.
func Calculate(logger *zap.Logger, req Request) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	periodsPerYear := req.PeriodsPerYear
	if periodsPerYear == 0 {
		periodsPerYear = constants.DefaultPeriodsPerYear
	}
	if req.Years < 0 || req.Months < 0 {
		return nil, fmt.Errorf("loan %q: %w: term must not be negative", req.Name, loans.ErrInvalidInput)
	}

	terms := loans.Normalize(req.AnnualRatePercent, periodsPerYear, req.Years, req.Months)
	solved, err := loans.Solve(req.Mode, loans.Known{
		Principal:      req.Principal,
		PeriodicRate:   terms.PeriodicRate,
		TotalPeriods:   terms.TotalPeriods,
		Payment:        req.Payment,
		PeriodsPerYear: periodsPerYear,
	})
	if err != nil {
		return nil, fmt.Errorf("loan %q: solving for %s: %w", req.Name, req.Mode, err)
	}

	result := &Result{
		Name:              req.Name,
		Mode:              req.Mode,
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		PeriodsPerYear:    periodsPerYear,
		TermPeriods:       terms.TotalPeriods,
		ExactPeriods:      float64(terms.TotalPeriods),
		Payment:           req.Payment,
	}

	switch req.Mode {
	case loans.ModePayment:
		result.Payment = solved
	case loans.ModePeriods:
		result.ExactPeriods = solved
		result.TermPeriods = int(math.Max(1, math.Ceil(solved-periodSlack)))
	case loans.ModeRate:
		result.AnnualRatePercent = loans.AnnualRatePercent(solved, periodsPerYear)
	case loans.ModePrincipal:
		result.Principal = solved
	}

	logger.Debug(fmt.Sprintf("solved %s for loan %s: %f", req.Mode, req.Name, solved),
		zap.String("op", "calculator.Calculate"),
	)

	definition := loans.LoanDefinition{
		Name:              req.Name,
		Principal:         result.Principal,
		AnnualRatePercent: result.AnnualRatePercent,
		TermPeriods:       result.TermPeriods,
		PeriodsPerYear:    periodsPerYear,
		StartDate:         req.StartDate,
		Extra:             req.Extra,
	}
	result.Warnings = validation.ValidateLoan(definition, req.Mode, req.Payment)
	for _, warning := range result.Warnings {
		logger.Warn(warning, zap.String("op", "calculator.Calculate"))
	}

	builder := loans.NewScheduleBuilder(logger)
	result.Schedule, err = builder.Build(definition, result.Payment)
	if err != nil {
		return nil, fmt.Errorf("loan %q: building schedule: %w", req.Name, err)
	}
	result.Summary = loans.Summarize(result.Principal, result.Schedule)
	result.Yearly = loans.YearlyTotals(result.Schedule)

	if !req.Extra.Empty() {
		baselineDefinition := definition
		baselineDefinition.Extra = loans.ExtraPayments{}
		baseline, err := builder.Build(baselineDefinition, result.Payment)
		if err != nil {
			return nil, fmt.Errorf("loan %q: building baseline schedule: %w", req.Name, err)
		}
		savings := loans.CompareSchedules(baseline, result.Schedule)
		result.Savings = &savings
	}

	logger.Info(fmt.Sprintf("calculated loan %s", req.Name),
		zap.String("op", "calculator.Calculate"),
		zap.String("mode", req.Mode.String()),
		zap.Int("periods", result.Summary.Periods),
		zap.Float64("totalInterest", result.Summary.TotalInterest),
	)

	return result, nil
}

// CalculateAll calculates every request in order and stops at the first error.
func CalculateAll(logger *zap.Logger, reqs []Request) ([]Result, error) {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		result, err := Calculate(logger, req)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}
