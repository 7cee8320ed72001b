package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/amortize/internal/calculator"
	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/format"
	"github.com/iwvelando/amortize/pkg/output"
	"github.com/iwvelando/amortize/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type calculateOptions struct {
	configPath   string
	outputFormat string
	logLevel     string
}

func newCalculateCommand(root *rootOptions) *cobra.Command {
	opts := calculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the loans described in a calculation file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.logLevel = root.logLevel
			return runCalculate(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to calculation file")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	return cmd
}

func runCalculate(w io.Writer, opts calculateOptions) error {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	if opts.outputFormat != "" {
		conf.Output.Format = opts.outputFormat
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		logger.Error(err.Error(), zap.String("op", "main.runCalculate"))
		return err
	}

	if err := conf.ValidateConfiguration(); err != nil {
		logger.Error("invalid configuration",
			zap.String("op", "main.runCalculate"),
			zap.Error(err),
		)
		return err
	}

	requests, err := conf.Requests()
	if err != nil {
		logger.Error("failed to parse loans",
			zap.String("op", "main.runCalculate"),
			zap.Error(err),
		)
		return err
	}

	results, err := calculator.CalculateAll(logger, requests)
	if err != nil {
		logger.Error("failed to calculate loans",
			zap.String("op", "main.runCalculate"),
			zap.Error(err),
		)
		return err
	}

	tag, err := format.ParseLocale(conf.Locale)
	if err != nil {
		return err
	}
	return output.Write(w, conf.Output.Format, results, format.NewFormatter(tag, conf.CurrencySymbol))
}
