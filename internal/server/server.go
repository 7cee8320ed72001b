// Package server exposes the loan calculator over a stateless HTTP JSON API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/amortize/internal/calculator"
	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/format"
	"github.com/iwvelando/amortize/pkg/loans"
	"github.com/iwvelando/amortize/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := mux.NewRouter()

	// Calculation from a JSON document
	r.HandleFunc("/api/calculate", h.handleCalculate).Methods(http.MethodPost)

	// Calculation from an uploaded YAML calculation file
	r.HandleFunc("/api/calculate/upload", h.handleUpload).Methods(http.MethodPost)

	// Calculation file serialization for downloads
	r.HandleFunc("/api/export", h.handleExport).Methods(http.MethodPost)

	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	return requestIDMiddleware(loggingMiddleware(logger)(r))
}

type calculationResponse struct {
	RequestID string              `json:"requestId"`
	Results   []calculator.Result `json:"results"`
	Display   []displaySummary    `json:"display"`
	CSV       string              `json:"csv"`
	Warnings  []string            `json:"warnings,omitempty"`
	Duration  string              `json:"duration"`
}

// displaySummary holds headline figures rendered for the configured locale.
type displaySummary struct {
	Name          string `json:"name"`
	Payment       string `json:"payment"`
	AnnualRate    string `json:"annualRate"`
	TotalInterest string `json:"totalInterest"`
	TotalAmount   string `json:"totalAmount"`
	PayoffDate    string `json:"payoffDate"`
	InterestSaved string `json:"interestSaved,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	cfg, err := h.decodeJSONConfig(w, r)
	if err != nil {
		h.respondError(w, r, statusForDecode(err), fmt.Sprintf("failed to decode calculation: %v", err), op)
		return
	}

	h.runCalculation(w, r, cfg, start, op)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "missing calculation file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read calculation file: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runCalculation(w, r, cfg, start, op)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	cfg, err := h.decodeJSONConfig(w, r)
	if err != nil {
		h.respondError(w, r, statusForDecode(err), fmt.Sprintf("failed to decode calculation: %v", err), op)
		return
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode calculation file: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeJSONConfig reads a calculation document shaped like the YAML
// calculation file.
func (h *handler) decodeJSONConfig(w http.ResponseWriter, r *http.Request) (*config.Configuration, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var cfg config.Configuration
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

func (h *handler) runCalculation(w http.ResponseWriter, r *http.Request, cfg *config.Configuration, start time.Time, op string) {
	logger := h.logger.With(zap.String("requestId", RequestID(r.Context())))

	if err := cfg.ValidateConfiguration(); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	requests, err := cfg.Requests()
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	results, err := calculator.CalculateAll(logger, requests)
	if err != nil {
		h.respondError(w, r, statusForCalculation(err), err.Error(), op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, results); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	tag, err := format.ParseLocale(cfg.Locale)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	formatter := format.NewFormatter(tag, cfg.CurrencySymbol)

	var warnings []string
	display := make([]displaySummary, 0, len(results))
	for _, result := range results {
		warnings = append(warnings, result.Warnings...)
		display = append(display, summarize(formatter, result))
	}

	elapsed := time.Since(start)
	response := calculationResponse{
		RequestID: RequestID(r.Context()),
		Results:   results,
		Display:   display,
		CSV:       csvBuf.String(),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	logger.Info("calculation computed",
		zap.String("op", op),
		zap.Int("loans", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func summarize(f *format.Formatter, result calculator.Result) displaySummary {
	summary := displaySummary{
		Name:          result.Name,
		Payment:       f.Currency(result.Payment),
		AnnualRate:    f.Percentage(result.AnnualRatePercent, 3),
		TotalInterest: f.Currency(result.Summary.TotalInterest),
		TotalAmount:   f.Currency(result.Summary.TotalAmount),
		PayoffDate:    result.Summary.PayoffDate.String(),
	}
	if result.Savings != nil {
		summary.InterestSaved = f.Currency(result.Savings.InterestSaved)
	}
	return summary
}

// statusForCalculation maps calculator errors onto HTTP statuses: bad input
// is the client's fault, a loan the engine cannot resolve is unprocessable.
func statusForCalculation(err error) int {
	switch {
	case errors.Is(err, loans.ErrInvalidInput), errors.Is(err, loans.ErrInvalidPayment):
		return http.StatusBadRequest
	case errors.Is(err, loans.ErrDidNotConverge), errors.Is(err, loans.ErrScheduleIncomplete):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusForDecode(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	requestID := RequestID(r.Context())
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
