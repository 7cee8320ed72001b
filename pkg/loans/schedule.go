package loans

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/datetime"
	"go.uber.org/zap"
)

// LoanDefinition describes a fixed-rate loan with every variable known.
type LoanDefinition struct {
	Name              string
	Principal         float64
	AnnualRatePercent float64
	TermPeriods       int
	PeriodsPerYear    int
	StartDate         civil.Date
	Extra             ExtraPayments
}

// PeriodicRate returns the loan's rate per payment period as a fraction.
func (l LoanDefinition) PeriodicRate() float64 {
	return PeriodicRate(l.AnnualRatePercent, l.PeriodsPerYear)
}

// Validate checks the preconditions of the schedule builder.
func (l LoanDefinition) Validate() error {
	if err := requirePositive("principal", l.Principal); err != nil {
		return err
	}
	if isNotFinite(l.AnnualRatePercent) || l.AnnualRatePercent < 0 {
		return invalidInput("annual rate", l.AnnualRatePercent, "must not be negative")
	}
	if l.TermPeriods <= 0 {
		return invalidInput("term periods", float64(l.TermPeriods), "must be positive")
	}
	if l.PeriodsPerYear <= 0 {
		return invalidInput("periods per year", float64(l.PeriodsPerYear), "must be positive")
	}
	if !l.StartDate.IsValid() {
		return fmt.Errorf("%w: start date %v is not a calendar date", ErrInvalidInput, l.StartDate)
	}
	return l.Extra.validate()
}

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	Period              int        `json:"period"`
	Date                civil.Date `json:"date"`
	ScheduledPayment    float64    `json:"scheduledPayment"`
	Interest            float64    `json:"interest"`
	Principal           float64    `json:"principal"`
	Extra               float64    `json:"extra"`
	RemainingBalance    float64    `json:"remainingBalance"`
	CumulativeInterest  float64    `json:"cumulativeInterest"`
	CumulativePrincipal float64    `json:"cumulativePrincipal"`
}

// TotalPayment is everything paid in the period, extra principal included.
func (e ScheduleEntry) TotalPayment() float64 {
	return e.ScheduledPayment + e.Extra
}

// ScheduleBuilder expands loan definitions into amortization schedules.
type ScheduleBuilder struct {
	logger *zap.Logger
}

// NewScheduleBuilder creates a new builder instance
func NewScheduleBuilder(logger *zap.Logger) *ScheduleBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleBuilder{logger: logger}
}

// BuildSchedule builds a schedule without logging.
func BuildSchedule(loan LoanDefinition, payment float64) ([]ScheduleEntry, error) {
	return NewScheduleBuilder(nil).Build(loan, payment)
}

// Build walks the loan period by period until the balance is paid off. The
// last entry's scheduled payment is whatever remained, not the nominal
// payment. A loan that is still outstanding after twice its nominal term
// yields ErrScheduleIncomplete along with the entries built up to the cap.
func (b *ScheduleBuilder) Build(loan LoanDefinition, payment float64) ([]ScheduleEntry, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	if err := requirePositive("payment", payment); err != nil {
		return nil, err
	}

	rate := loan.PeriodicRate()
	if interest := loan.Principal * rate; rate > 0 && payment <= interest {
		return nil, fmt.Errorf("%w: payment %.2f, first period interest %.2f", ErrInvalidPayment, payment, interest)
	}

	extras := loan.Extra.withDefaults(loan.StartDate)
	maxPeriods := constants.ScheduleSafetyFactor * loan.TermPeriods

	schedule := make([]ScheduleEntry, 0, loan.TermPeriods)
	state := accumulator{balance: loan.Principal}
	var previous civil.Date

	for period := 1; period <= maxPeriods; period++ {
		date := datetime.PeriodDate(loan.StartDate, period-1, loan.PeriodsPerYear)
		firstInMonth := period == 1 || !datetime.SameMonth(date, previous)

		extra := extras.AmountFor(date, firstInMonth)
		if extra > 0 {
			b.logger.Debug(fmt.Sprintf("%s: applying extra principal payment %.2f for loan %s", date, extra, loan.Name),
				zap.String("op", "loans.Build"),
			)
		}

		var entry ScheduleEntry
		entry, state = state.apply(period, date, rate, payment, extra)
		schedule = append(schedule, entry)

		if state.balance == 0 {
			return schedule, nil
		}
		previous = date
	}

	b.logger.Warn("schedule reached safety cap before payoff",
		zap.String("op", "loans.Build"),
		zap.String("loan", loan.Name),
		zap.Int("periods", maxPeriods),
		zap.Float64("balance", state.balance),
	)
	return schedule, fmt.Errorf("%w: balance %.2f after %d periods", ErrScheduleIncomplete, state.balance, maxPeriods)
}

// accumulator carries the running totals between periods.
type accumulator struct {
	balance             float64
	cumulativeInterest  float64
	cumulativePrincipal float64
}

func (a accumulator) apply(period int, date civil.Date, rate, payment, extra float64) (ScheduleEntry, accumulator) {
	interest := a.balance * rate
	principal := payment - interest

	// The final period pays exactly what remains.
	if principal+extra > a.balance {
		principal = a.balance
		extra = 0
	}

	next := accumulator{
		balance:             a.balance - principal - extra,
		cumulativeInterest:  a.cumulativeInterest + interest,
		cumulativePrincipal: a.cumulativePrincipal + principal + extra,
	}
	if settled(next.balance) {
		next.balance = 0
	}

	return ScheduleEntry{
		Period:              period,
		Date:                date,
		ScheduledPayment:    interest + principal,
		Interest:            interest,
		Principal:           principal,
		Extra:               extra,
		RemainingBalance:    next.balance,
		CumulativeInterest:  next.cumulativeInterest,
		CumulativePrincipal: next.cumulativePrincipal,
	}, next
}
