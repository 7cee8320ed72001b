package loans

import (
	"math"
	"testing"
)

func TestSettled(t *testing.T) {
	tests := []struct {
		name     string
		balance  float64
		expected bool
	}{
		{"Paid off exactly", 0, true},
		{"Floating residue after final payment", 3.637978807091713e-11, true},
		{"Half a cent left", 0.005, true},
		{"One cent left", 0.01, true},
		{"Just over a cent", 0.011, false},
		{"Final month still owed", 407.70, false},
		{"Overpaid by a rounding error", -1e-9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := settled(tt.balance); got != tt.expected {
				t.Errorf("settled(%v) = %v, expected %v", tt.balance, got, tt.expected)
			}
		})
	}
}

func TestWithinCent(t *testing.T) {
	// 360 payments of 1199.10 against the 200000 principal are far apart;
	// 12 payments of 833.33 against 10000 are 4 cents short.
	tests := []struct {
		a, b     float64
		expected bool
	}{
		{360 * 1199.10, 200000, false},
		{12 * 833.33, 10000, false},
		{12 * (10000.0 / 12.0), 10000, true},
		{1199.1010503, 1199.10, true},
	}

	for _, tt := range tests {
		if got := withinCent(tt.a, tt.b); got != tt.expected {
			t.Errorf("withinCent(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected float64
	}{
		{"Monthly payment", 1199.1010503, 1199.10},
		{"Interest saved", 79800.5149, 79800.51},
		{"Binary midpoint rounds away from zero", 1.005, 1.01},
		{"Negative midpoint", -2.675, -2.68},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roundCents(tt.amount); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("roundCents(%v) = %v, expected %v", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestShareOf(t *testing.T) {
	tests := []struct {
		name     string
		part     float64
		total    float64
		expected float64
	}{
		{"Interest share of a 30-year mortgage", 231676.38, 431676.38, 53.669},
		{"Interest share of a 15-year mortgage", 103788.46, 303788.46, 34.165},
		{"Zero-rate loan", 0, 10000, 0},
		{"Whole amount", 10000, 10000, 100},
		{"Empty total", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shareOf(tt.part, tt.total); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("shareOf(%v, %v) = %v, expected %v", tt.part, tt.total, got, tt.expected)
			}
		})
	}
}

func TestFractionOf(t *testing.T) {
	if got := fractionOf(6); math.Abs(got/12-0.005) > 1e-15 {
		t.Errorf("fractionOf(6)/12 = %v, expected a monthly rate of 0.005", got/12)
	}
	if got := fractionOf(0); got != 0 {
		t.Errorf("fractionOf(0) = %v, expected 0", got)
	}
}
