package config

// Loan describes one loan in a calculation file. Mode names the unknown
// variable; the matching field is ignored.
type Loan struct {
	Name           string        `yaml:"name" json:"name"`
	Mode           string        `yaml:"mode,omitempty" json:"mode,omitempty"` // payment, periods, rate, principal
	Principal      float64       `yaml:"principal,omitempty" json:"principal,omitempty"`
	AnnualRate     float64       `yaml:"annualRate,omitempty" json:"annualRate,omitempty"` // percent
	Years          int           `yaml:"years,omitempty" json:"years,omitempty"`
	Months         int           `yaml:"months,omitempty" json:"months,omitempty"`
	PeriodsPerYear int           `yaml:"periodsPerYear,omitempty" json:"periodsPerYear,omitempty"`
	Payment        float64       `yaml:"payment,omitempty" json:"payment,omitempty"`
	StartDate      string        `yaml:"startDate" json:"startDate"`
	ExtraPayments  ExtraPayments `yaml:"extraPayments,omitempty" json:"extraPayments,omitempty"`
}

// ExtraPayments holds the extra principal payments of a loan.
type ExtraPayments struct {
	Monthly RecurringPayment `yaml:"monthly,omitempty" json:"monthly,omitempty"`
	Yearly  RecurringPayment `yaml:"yearly,omitempty" json:"yearly,omitempty"`
	OneTime []OneTimePayment `yaml:"oneTime,omitempty" json:"oneTime,omitempty"`
}

// RecurringPayment is repeated from StartDate on. An empty StartDate means
// the loan's start date.
type RecurringPayment struct {
	Amount    float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
	StartDate string  `yaml:"startDate,omitempty" json:"startDate,omitempty"`
}

// OneTimePayment is applied once, in the month of Date.
type OneTimePayment struct {
	Date   string  `yaml:"date" json:"date"`
	Amount float64 `yaml:"amount" json:"amount"`
}
