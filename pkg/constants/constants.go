// Package constants provides shared constants for the amortize application.
package constants

import "time"

// DateLayout is the calendar date format accepted in calculation files and
// used in rendered output.
const DateLayout = "2006-01-02"

// Loan constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DefaultPeriodsPerYear is used when a loan does not declare a payment frequency
	DefaultPeriodsPerYear = MonthsPerYear

	// DaysPerYear is used to derive the day step of sub-monthly payment frequencies
	DaysPerYear = 365

	// CurrencyPlaces is the number of decimal places amounts are rounded to
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent).
	// A schedule balance at or below it is treated as paid off.
	CurrencyTolerance = 0.01

	// ScheduleSafetyFactor bounds a schedule at this multiple of the nominal term
	ScheduleSafetyFactor = 2
)

// Rate solver constants
const (
	// InitialRateGuessPercent is the annual rate the Newton-Raphson solver starts from
	InitialRateGuessPercent = 5.0

	// RateTolerance is the largest step between iterates considered converged
	RateTolerance = 1e-6

	// MaxRateIterations caps the Newton-Raphson solver
	MaxRateIterations = 100

	// MinPeriodicRate replaces negative iterates in the rate solver
	MinPeriodicRate = 0.001
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default calculation file name
	DefaultConfigFile = "loans.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultLocale is the locale used for rendering when none is configured
	DefaultLocale = "en-US"

	// DefaultCurrencySymbol prefixes rendered amounts when none is configured
	DefaultCurrencySymbol = "$"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultReadTimeout bounds reading a request, upload included
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response
	DefaultWriteTimeout = 10 * time.Second

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML calculation files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// RequestIDHeader carries the per-request identifier
	RequestIDHeader = "X-Request-ID"
)
