package loans

import (
	"cloud.google.com/go/civil"
	"github.com/iwvelando/amortize/pkg/constants"
)

// Summary reduces a schedule to its headline figures.
type Summary struct {
	Periods             int        `json:"periods"`
	TotalInterest       float64    `json:"totalInterest"`
	TotalAmount         float64    `json:"totalAmount"`
	PayoffDate          civil.Date `json:"payoffDate"`
	PrincipalPercentage float64    `json:"principalPercentage"`
	InterestPercentage  float64    `json:"interestPercentage"`
}

// Summarize derives the summary from the schedule's final entry. The two
// percentages are shares of principal plus interest and always sum to 100.
func Summarize(principal float64, schedule []ScheduleEntry) Summary {
	if len(schedule) == 0 {
		return Summary{}
	}

	last := schedule[len(schedule)-1]
	total := principal + last.CumulativeInterest
	summary := Summary{
		Periods:       len(schedule),
		TotalInterest: last.CumulativeInterest,
		TotalAmount:   total,
		PayoffDate:    last.Date,
	}
	if total > 0 {
		summary.InterestPercentage = shareOf(last.CumulativeInterest, total)
		summary.PrincipalPercentage = constants.PercentageMultiplier - summary.InterestPercentage
	}
	return summary
}

// YearTotals aggregates the schedule entries dated in one calendar year.
type YearTotals struct {
	Year          int     `json:"year"`
	Periods       int     `json:"periods"`
	Interest      float64 `json:"interest"`
	Principal     float64 `json:"principal"`
	Extra         float64 `json:"extra"`
	TotalPaid     float64 `json:"totalPaid"`
	EndingBalance float64 `json:"endingBalance"`
}

// YearlyTotals groups a schedule by calendar year, in schedule order.
func YearlyTotals(schedule []ScheduleEntry) []YearTotals {
	var years []YearTotals
	for _, entry := range schedule {
		if len(years) == 0 || years[len(years)-1].Year != entry.Date.Year {
			years = append(years, YearTotals{Year: entry.Date.Year})
		}
		current := &years[len(years)-1]
		current.Periods++
		current.Interest += entry.Interest
		current.Principal += entry.Principal
		current.Extra += entry.Extra
		current.TotalPaid += entry.TotalPayment()
		current.EndingBalance = entry.RemainingBalance
	}
	return years
}

// Savings compares a schedule with extra payments against its baseline.
type Savings struct {
	InterestSaved         float64    `json:"interestSaved"`
	PeriodsSaved          int        `json:"periodsSaved"`
	BaselinePayoffDate    civil.Date `json:"baselinePayoffDate"`
	AcceleratedPayoffDate civil.Date `json:"acceleratedPayoffDate"`
}

// CompareSchedules reports the interest and periods the accelerated schedule
// saves relative to the baseline. Interest saved is rounded to cents.
func CompareSchedules(baseline, accelerated []ScheduleEntry) Savings {
	if len(baseline) == 0 || len(accelerated) == 0 {
		return Savings{}
	}

	base := baseline[len(baseline)-1]
	fast := accelerated[len(accelerated)-1]
	return Savings{
		InterestSaved:         roundCents(base.CumulativeInterest - fast.CumulativeInterest),
		PeriodsSaved:          len(baseline) - len(accelerated),
		BaselinePayoffDate:    base.Date,
		AcceleratedPayoffDate: fast.Date,
	}
}
