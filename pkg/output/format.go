// Package output provides utilities for formatting and displaying loan results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/iwvelando/amortize/internal/calculator"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/format"
	"github.com/shopspring/decimal"
)

// Write renders results in the named output format. A nil formatter uses
// en-US dollars.
func Write(w io.Writer, outputFormat string, results []calculator.Result, f *format.Formatter) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results, f)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report:
// a summary, the yearly totals and the full schedule of every loan.
func PrettyFormat(w io.Writer, results []calculator.Result, f *format.Formatter) error {
	if f == nil {
		f = format.Default()
	}

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "--- Results for loan %s ---\n", result.Name)

		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		fmt.Fprintf(tw, "Solved for:\t%s\n", result.Mode)
		fmt.Fprintf(tw, "Principal:\t%s\n", f.Currency(result.Principal))
		fmt.Fprintf(tw, "Annual rate:\t%s\n", f.Percentage(result.AnnualRatePercent, 3))
		fmt.Fprintf(tw, "Term:\t%d periods (%d per year)\n", result.TermPeriods, result.PeriodsPerYear)
		fmt.Fprintf(tw, "Payment:\t%s\n", f.Currency(result.Payment))
		fmt.Fprintf(tw, "Total interest:\t%s\n", f.Currency(result.Summary.TotalInterest))
		fmt.Fprintf(tw, "Total paid:\t%s\n", f.Currency(result.Summary.TotalAmount))
		fmt.Fprintf(tw, "Payoff date:\t%s\n", result.Summary.PayoffDate)
		fmt.Fprintf(tw, "Principal / interest:\t%s / %s\n",
			f.Percentage(result.Summary.PrincipalPercentage, 2), f.Percentage(result.Summary.InterestPercentage, 2))
		if result.Savings != nil {
			fmt.Fprintf(tw, "Interest saved:\t%s (%d periods sooner)\n",
				f.Currency(result.Savings.InterestSaved), result.Savings.PeriodsSaved)
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(tw, "Warning:\t%s\n", warning)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Year\tPeriods\tInterest\tPrincipal\tExtra\tTotal paid\tEnding balance\t")
		for _, year := range result.Yearly {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n", year.Year, year.Periods,
				f.Currency(year.Interest), f.Currency(year.Principal), f.Currency(year.Extra),
				f.Currency(year.TotalPaid), f.Currency(year.EndingBalance))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Period\tDate\tPayment\tInterest\tPrincipal\tExtra\tBalance\t")
		for _, entry := range result.Schedule {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n", entry.Period, entry.Date,
				f.Currency(entry.ScheduledPayment), f.Currency(entry.Interest), f.Currency(entry.Principal),
				f.Currency(entry.Extra), f.Currency(entry.RemainingBalance))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

var csvHeader = []string{
	"loan", "period", "date", "payment", "interest", "principal", "extra",
	"balance", "cumulative interest", "cumulative principal",
}

// CsvFormat outputs every schedule entry of every loan in comma-separated
// value format.
func CsvFormat(w io.Writer, results []calculator.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, result := range results {
		for _, entry := range result.Schedule {
			record := []string{
				result.Name,
				strconv.Itoa(entry.Period),
				entry.Date.String(),
				amount(entry.ScheduledPayment),
				amount(entry.Interest),
				amount(entry.Principal),
				amount(entry.Extra),
				amount(entry.RemainingBalance),
				amount(entry.CumulativeInterest),
				amount(entry.CumulativePrincipal),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the results as an indented JSON array.
func JSONFormat(w io.Writer, results []calculator.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if results == nil {
		results = []calculator.Result{}
	}
	return encoder.Encode(results)
}

func amount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(constants.CurrencyPlaces)
}
