package loans

import (
	"cloud.google.com/go/civil"
	"github.com/iwvelando/amortize/pkg/datetime"
)

// RecurringExtra is an extra principal payment repeated from StartDate on.
type RecurringExtra struct {
	Amount    float64    `json:"amount"`
	StartDate civil.Date `json:"startDate"`
}

// OneTimeExtra is a single extra principal payment. Only the year and month
// of Date matter: it is applied on the first period in that month.
type OneTimeExtra struct {
	Date   civil.Date `json:"date"`
	Amount float64    `json:"amount"`
}

// ExtraPayments groups the extra principal payments of a loan.
type ExtraPayments struct {
	// Monthly is applied once in every calendar month on or after its start.
	Monthly RecurringExtra `json:"monthly"`
	// Yearly is applied once a year, in the month of its start date.
	Yearly  RecurringExtra `json:"yearly"`
	OneTime []OneTimeExtra `json:"oneTime,omitempty"`
}

// Empty reports whether no extra payment is configured.
func (e ExtraPayments) Empty() bool {
	if e.Monthly.Amount > 0 || e.Yearly.Amount > 0 {
		return false
	}
	for _, p := range e.OneTime {
		if p.Amount > 0 {
			return false
		}
	}
	return true
}

// withDefaults anchors recurring payments without a start date to the loan start.
func (e ExtraPayments) withDefaults(loanStart civil.Date) ExtraPayments {
	if e.Monthly.StartDate.IsZero() {
		e.Monthly.StartDate = loanStart
	}
	if e.Yearly.StartDate.IsZero() {
		e.Yearly.StartDate = loanStart
	}
	return e
}

func (e ExtraPayments) validate() error {
	if e.Monthly.Amount < 0 || isNotFinite(e.Monthly.Amount) {
		return invalidInput("monthly extra payment", e.Monthly.Amount, "must not be negative")
	}
	if e.Yearly.Amount < 0 || isNotFinite(e.Yearly.Amount) {
		return invalidInput("yearly extra payment", e.Yearly.Amount, "must not be negative")
	}
	for _, p := range e.OneTime {
		if p.Amount < 0 || isNotFinite(p.Amount) {
			return invalidInput("one-time extra payment", p.Amount, "must not be negative")
		}
	}
	return nil
}

// AmountFor sums the extra principal due on a period dated date. Each kind of
// extra payment is applied at most once per calendar month, so firstInMonth
// must report whether date is the first period falling in its month.
func (e ExtraPayments) AmountFor(date civil.Date, firstInMonth bool) float64 {
	if !firstInMonth {
		return 0
	}

	amount := 0.0
	if e.Monthly.Amount > 0 && datetime.OnOrAfter(date, e.Monthly.StartDate) {
		amount += e.Monthly.Amount
	}
	if e.Yearly.Amount > 0 && datetime.OnOrAfter(date, e.Yearly.StartDate) && date.Month == e.Yearly.StartDate.Month {
		amount += e.Yearly.Amount
	}
	for _, p := range e.OneTime {
		if datetime.SameMonth(date, p.Date) {
			amount += p.Amount
		}
	}
	return amount
}
