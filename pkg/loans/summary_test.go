package loans

import (
	"math"
	"testing"

	"github.com/iwvelando/amortize/pkg/datetime"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name             string
		loan             LoanDefinition
		expectedInterest float64
		expectedPayoff   string
	}{
		{
			name:             "30-year mortgage",
			loan:             monthlyLoan(200000, 6.0, 360),
			expectedInterest: 231676.38,
			expectedPayoff:   "2054-12-01",
		},
		{
			name:             "15-year mortgage",
			loan:             monthlyLoan(200000, 6.0, 180),
			expectedInterest: 103788.46,
			expectedPayoff:   "2039-12-01",
		},
		{
			name:             "Zero rate",
			loan:             monthlyLoan(10000, 0, 12),
			expectedInterest: 0,
			expectedPayoff:   "2025-12-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := buildWithSolvedPayment(t, tt.loan)
			summary := Summarize(tt.loan.Principal, schedule)

			if math.Abs(summary.TotalInterest-tt.expectedInterest) > 0.01 {
				t.Errorf("TotalInterest = %.2f, expected %.2f", summary.TotalInterest, tt.expectedInterest)
			}
			if math.Abs(summary.TotalAmount-(tt.loan.Principal+summary.TotalInterest)) > 1e-9 {
				t.Errorf("TotalAmount = %.2f, expected principal plus interest", summary.TotalAmount)
			}
			if summary.PayoffDate.String() != tt.expectedPayoff {
				t.Errorf("PayoffDate = %s, expected %s", summary.PayoffDate, tt.expectedPayoff)
			}
			if summary.Periods != len(schedule) {
				t.Errorf("Periods = %d, expected %d", summary.Periods, len(schedule))
			}
			if sum := summary.PrincipalPercentage + summary.InterestPercentage; math.Abs(sum-100) > 1e-9 {
				t.Errorf("percentages sum to %v, expected 100", sum)
			}
		})
	}
}

func TestSummarizePercentages(t *testing.T) {
	schedule := buildWithSolvedPayment(t, monthlyLoan(200000, 6.0, 360))
	summary := Summarize(200000, schedule)

	// 231676.38 / 431676.38
	if math.Abs(summary.InterestPercentage-53.67) > 0.01 {
		t.Errorf("InterestPercentage = %.4f, expected about 53.67", summary.InterestPercentage)
	}
	if math.Abs(summary.PrincipalPercentage-46.33) > 0.01 {
		t.Errorf("PrincipalPercentage = %.4f, expected about 46.33", summary.PrincipalPercentage)
	}

	zero := Summarize(10000, buildWithSolvedPayment(t, monthlyLoan(10000, 0, 12)))
	if zero.PrincipalPercentage != 100 || zero.InterestPercentage != 0 {
		t.Errorf("zero-rate percentages = %v/%v, expected 100/0", zero.PrincipalPercentage, zero.InterestPercentage)
	}
}

func TestSummarizeEmptySchedule(t *testing.T) {
	summary := Summarize(1000, nil)
	if summary != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, expected zero summary", summary)
	}
}

func TestYearlyTotals(t *testing.T) {
	loan := monthlyLoan(200000, 6.0, 360)
	loan.StartDate = datetime.MustParseDate("2025-07-01")
	schedule := buildWithSolvedPayment(t, loan)

	years := YearlyTotals(schedule)
	if len(years) != 31 {
		t.Fatalf("years = %d, expected 31 calendar years for a mid-year start", len(years))
	}
	if years[0].Year != 2025 || years[0].Periods != 6 {
		t.Errorf("first year = %d with %d periods, expected 2025 with 6", years[0].Year, years[0].Periods)
	}
	if years[30].Year != 2055 || years[30].Periods != 6 {
		t.Errorf("last year = %d with %d periods, expected 2055 with 6", years[30].Year, years[30].Periods)
	}
	if years[30].EndingBalance != 0 {
		t.Errorf("last ending balance = %.2f, expected 0", years[30].EndingBalance)
	}

	interest, principal, periods := 0.0, 0.0, 0
	for _, year := range years {
		interest += year.Interest
		principal += year.Principal + year.Extra
		periods += year.Periods
		if math.Abs(year.TotalPaid-(year.Interest+year.Principal+year.Extra)) > 1e-6 {
			t.Errorf("%d total paid %.2f does not match its parts", year.Year, year.TotalPaid)
		}
	}
	if periods != len(schedule) {
		t.Errorf("periods across years = %d, expected %d", periods, len(schedule))
	}
	if math.Abs(interest-schedule[len(schedule)-1].CumulativeInterest) > 1e-6 {
		t.Errorf("interest across years = %.2f, expected %.2f", interest, schedule[len(schedule)-1].CumulativeInterest)
	}
	if math.Abs(principal-200000) > 0.01 {
		t.Errorf("principal across years = %.2f, expected 200000", principal)
	}
}

func TestCompareSchedules(t *testing.T) {
	base := buildWithSolvedPayment(t, monthlyLoan(200000, 6.0, 360))

	loan := monthlyLoan(200000, 6.0, 360)
	loan.Extra.Monthly = RecurringExtra{Amount: 200}
	accelerated := buildWithSolvedPayment(t, loan)

	savings := CompareSchedules(base, accelerated)
	if savings.PeriodsSaved != 108 {
		t.Errorf("PeriodsSaved = %d, expected 108", savings.PeriodsSaved)
	}
	if math.Abs(savings.InterestSaved-(231676.38-151875.87)) > 0.02 {
		t.Errorf("InterestSaved = %.2f, expected about 79800.51", savings.InterestSaved)
	}
	if savings.BaselinePayoffDate.String() != "2054-12-01" {
		t.Errorf("BaselinePayoffDate = %s, expected 2054-12-01", savings.BaselinePayoffDate)
	}
	if savings.AcceleratedPayoffDate.String() != "2045-12-01" {
		t.Errorf("AcceleratedPayoffDate = %s, expected 2045-12-01", savings.AcceleratedPayoffDate)
	}

	if (CompareSchedules(nil, accelerated) != Savings{}) {
		t.Error("CompareSchedules() with an empty baseline should be zero")
	}
}
