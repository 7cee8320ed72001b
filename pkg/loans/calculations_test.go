package loans

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/amortize/pkg/constants"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		annualRate     float64
		periodsPerYear int
		years          int
		months         int
		expectedRate   float64
		expectedTotal  int
	}{
		{"30-year monthly", 6.0, 12, 30, 0, 0.005, 360},
		{"Years plus months", 4.5, 12, 5, 6, 0.00375, 66},
		{"Months only", 12.0, 12, 0, 18, 0.01, 18},
		{"Zero rate", 0.0, 12, 1, 0, 0.0, 12},
		{"Quarterly", 8.0, 4, 10, 2, 0.02, 42},
		{"Biweekly", 5.2, 26, 2, 0, 0.002, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := Normalize(tt.annualRate, tt.periodsPerYear, tt.years, tt.months)
			if math.Abs(terms.PeriodicRate-tt.expectedRate) > 1e-12 {
				t.Errorf("Normalize() rate = %v, expected %v", terms.PeriodicRate, tt.expectedRate)
			}
			if terms.TotalPeriods != tt.expectedTotal {
				t.Errorf("Normalize() periods = %d, expected %d", terms.TotalPeriods, tt.expectedTotal)
			}
		})
	}
}

func TestAnnualRatePercent(t *testing.T) {
	if got := AnnualRatePercent(0.005, 12); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("AnnualRatePercent(0.005, 12) = %v, expected 6", got)
	}
	if got := AnnualRatePercent(PeriodicRate(7.25, 26), 26); math.Abs(got-7.25) > 1e-12 {
		t.Errorf("AnnualRatePercent round trip = %v, expected 7.25", got)
	}
}

func TestPaymentFor(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRate    float64
		periods       int
		expectedRange []float64 // [min, max] expected range
	}{
		{
			name:          "Standard 30-year mortgage",
			principal:     200000,
			annualRate:    6.0,
			periods:       360,
			expectedRange: []float64{1199.09, 1199.11}, // $1199.10
		},
		{
			name:          "15-year mortgage",
			principal:     200000,
			annualRate:    6.0,
			periods:       180,
			expectedRange: []float64{1687.70, 1687.72}, // $1687.71
		},
		{
			name:          "5-year car loan",
			principal:     20000,
			annualRate:    4.0,
			periods:       60,
			expectedRange: []float64{360, 380}, // Around $368
		},
		{
			name:          "Zero interest loan",
			principal:     10000,
			annualRate:    0.0,
			periods:       12,
			expectedRange: []float64{833.33, 833.34}, // Exactly $833.33...
		},
		{
			name:          "High interest loan",
			principal:     10000,
			annualRate:    18.0,
			periods:       36,
			expectedRange: []float64{360, 380}, // Around $362
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PaymentFor(tt.principal, PeriodicRate(tt.annualRate, 12), tt.periods)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("PaymentFor() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestPaymentForZeroRateIsLinear(t *testing.T) {
	if got := PaymentFor(10000, 0, 12); got != 10000.0/12.0 {
		t.Errorf("PaymentFor() zero rate = %v, expected %v", got, 10000.0/12.0)
	}
}

func TestPeriodsFor(t *testing.T) {
	rate := PeriodicRate(6.0, 12)

	for _, n := range []int{12, 60, 180, 360} {
		payment := PaymentFor(200000, rate, n)
		periods, err := PeriodsFor(200000, rate, payment)
		if err != nil {
			t.Fatalf("PeriodsFor() error = %v", err)
		}
		if math.Abs(periods-float64(n)) > 1 {
			t.Errorf("PeriodsFor() = %.4f, expected %d within one period", periods, n)
		}
	}

	periods, err := PeriodsFor(10000, 0, 1000)
	if err != nil {
		t.Fatalf("PeriodsFor() zero rate error = %v", err)
	}
	if periods != 10 {
		t.Errorf("PeriodsFor() zero rate = %v, expected 10", periods)
	}
}

func TestPeriodsForInvalidPayment(t *testing.T) {
	tests := []struct {
		name    string
		payment float64
	}{
		{"Payment below first interest", 50},
		{"Payment equal to first interest", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periods, err := PeriodsFor(10000, PeriodicRate(12.0, 12), tt.payment)
			if !errors.Is(err, ErrInvalidPayment) {
				t.Fatalf("PeriodsFor() error = %v, expected ErrInvalidPayment", err)
			}
			if periods != 0 {
				t.Errorf("PeriodsFor() = %v, expected 0 alongside the error", periods)
			}
		})
	}

	if _, err := PeriodsFor(10000, 0.01, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("PeriodsFor() zero payment error = %v, expected ErrInvalidInput", err)
	}
}

func TestRateFor(t *testing.T) {
	tests := []struct {
		name       string
		annualRate float64
	}{
		{"Half percent", 0.5},
		{"Two percent", 2.0},
		{"Six percent", 6.0},
		{"Twelve percent", 12.0},
		{"Thirty-six percent", 36.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := PeriodicRate(tt.annualRate, 12)
			payment := PaymentFor(100000, expected, 360)

			rate, err := RateFor(100000, payment, 360, 12)
			if err != nil {
				t.Fatalf("RateFor() error = %v", err)
			}
			if math.Abs(rate-expected) > 1e-6 {
				t.Errorf("RateFor() = %v, expected %v", rate, expected)
			}
		})
	}
}

func TestRateForEdgeCases(t *testing.T) {
	rate, err := RateFor(10000, 10000.0/12.0, 12, 12)
	if err != nil {
		t.Fatalf("RateFor() zero-rate payment error = %v", err)
	}
	if rate != 0 {
		t.Errorf("RateFor() zero-rate payment = %v, expected 0", rate)
	}

	if _, err := RateFor(10000, 800, 12, 12); !errors.Is(err, ErrInvalidPayment) {
		t.Errorf("RateFor() payments below principal error = %v, expected ErrInvalidPayment", err)
	}
}

func TestSolveRateRecoversFromNegativeStep(t *testing.T) {
	const principal, payment, periods = 10000.0, 100.0, 120
	guess := 0.5

	pv, slope := presentValue(payment, guess, periods)
	if step := guess - (pv-principal)/slope; step >= 0 {
		t.Fatalf("first Newton step = %v, expected a negative iterate from guess %v", step, guess)
	}

	rate, err := solveRate(principal, payment, periods, guess, constants.MaxRateIterations)
	if err != nil {
		t.Fatalf("solveRate() error = %v", err)
	}
	if math.Abs(rate-0.0031141819) > 1e-6 {
		t.Errorf("solveRate() = %v, expected about 0.0031142", rate)
	}
	if got := PaymentFor(principal, rate, periods); math.Abs(got-payment) > 0.01 {
		t.Errorf("payment at solved rate = %.4f, expected %.2f", got, payment)
	}
}

func TestSolveRateDidNotConverge(t *testing.T) {
	payment := PaymentFor(200000, 0.005, 360)

	_, err := solveRate(200000, payment, 360, 0.0001, 1)
	if !errors.Is(err, ErrDidNotConverge) {
		t.Fatalf("solveRate() error = %v, expected ErrDidNotConverge", err)
	}

	var convergence *DidNotConvergeError
	if !errors.As(err, &convergence) {
		t.Fatalf("solveRate() error %T is not a *DidNotConvergeError", err)
	}
	if convergence.Iterations != 1 {
		t.Errorf("Iterations = %d, expected 1", convergence.Iterations)
	}
	if convergence.LastEstimate <= 0 {
		t.Errorf("LastEstimate = %v, expected a positive iterate", convergence.LastEstimate)
	}
}

func TestPrincipalFor(t *testing.T) {
	rate := PeriodicRate(6.0, 12)
	payment := PaymentFor(200000, rate, 360)

	if got := PrincipalFor(rate, payment, 360); math.Abs(got-200000) > 0.01 {
		t.Errorf("PrincipalFor() = %.2f, expected 200000", got)
	}
	if got := PrincipalFor(0, 500, 24); got != 12000 {
		t.Errorf("PrincipalFor() zero rate = %.2f, expected 12000", got)
	}
}

func TestSolve(t *testing.T) {
	rate := PeriodicRate(6.0, 12)
	payment := PaymentFor(200000, rate, 360)

	tests := []struct {
		name      string
		mode      CalculationMode
		known     Known
		expected  float64
		tolerance float64
	}{
		{
			name:      "Payment",
			mode:      ModePayment,
			known:     Known{Principal: 200000, PeriodicRate: rate, TotalPeriods: 360},
			expected:  payment,
			tolerance: 1e-9,
		},
		{
			name:      "Periods",
			mode:      ModePeriods,
			known:     Known{Principal: 200000, PeriodicRate: rate, Payment: payment},
			expected:  360,
			tolerance: 1e-6,
		},
		{
			name:      "Rate",
			mode:      ModeRate,
			known:     Known{Principal: 200000, Payment: payment, TotalPeriods: 360, PeriodsPerYear: 12},
			expected:  rate,
			tolerance: 1e-6,
		},
		{
			name:      "Principal",
			mode:      ModePrincipal,
			known:     Known{PeriodicRate: rate, Payment: payment, TotalPeriods: 360},
			expected:  200000,
			tolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Solve(tt.mode, tt.known)
			if err != nil {
				t.Fatalf("Solve(%s) error = %v", tt.mode, err)
			}
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("Solve(%s) = %v, expected %v", tt.mode, result, tt.expected)
			}
		})
	}
}

func TestSolveInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		mode  CalculationMode
		known Known
		field string
	}{
		{"Zero principal", ModePayment, Known{PeriodicRate: 0.005, TotalPeriods: 360}, "principal"},
		{"Negative rate", ModePayment, Known{Principal: 1000, PeriodicRate: -0.01, TotalPeriods: 12}, "periodic rate"},
		{"Zero term", ModePayment, Known{Principal: 1000, PeriodicRate: 0.01}, "total periods"},
		{"Missing payment", ModePeriods, Known{Principal: 1000, PeriodicRate: 0.01}, "payment"},
		{"Missing frequency", ModeRate, Known{Principal: 1000, Payment: 100, TotalPeriods: 12}, "periods per year"},
		{"NaN principal", ModePayment, Known{Principal: math.NaN(), TotalPeriods: 12}, "principal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.mode, tt.known)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Solve() error = %v, expected ErrInvalidInput", err)
			}
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("Solve() error %T is not an *InvalidInputError", err)
			}
			if inputErr.Field != tt.field {
				t.Errorf("InvalidInputError.Field = %q, expected %q", inputErr.Field, tt.field)
			}
		})
	}
}

func TestParseCalculationMode(t *testing.T) {
	tests := []struct {
		input    string
		expected CalculationMode
		wantErr  bool
	}{
		{"", ModePayment, false},
		{"payment", ModePayment, false},
		{"Periods", ModePeriods, false},
		{" rate ", ModeRate, false},
		{"PRINCIPAL", ModePrincipal, false},
		{"term", ModePayment, true},
	}

	for _, tt := range tests {
		mode, err := ParseCalculationMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCalculationMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && mode != tt.expected {
			t.Errorf("ParseCalculationMode(%q) = %s, expected %s", tt.input, mode, tt.expected)
		}
	}
}

func TestCalculationModeText(t *testing.T) {
	for _, mode := range []CalculationMode{ModePayment, ModePeriods, ModeRate, ModePrincipal} {
		text, err := mode.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) error = %v", int(mode), err)
		}
		var decoded CalculationMode
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if decoded != mode {
			t.Errorf("text round trip = %s, expected %s", decoded, mode)
		}
	}

	if _, err := CalculationMode(42).MarshalText(); err == nil {
		t.Error("MarshalText() expected error for unknown mode")
	}
}
