package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/amortize/internal/server"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	serverConfigPath string
	address          string
	maxUploadSize    string
	logLevel         string
}

func newServeCommand(root *rootOptions) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.logLevel = root.logLevel
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&opts.address, "address", "", "listen address override, e.g. :8080")
	cmd.Flags().StringVar(&opts.maxUploadSize, "max-upload-size", "", "upload size limit override, e.g. 512K")
	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := server.LoadConfig(opts.serverConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", opts.serverConfigPath, err)
	}
	if opts.address != "" {
		cfg.Address = opts.address
	}
	if opts.maxUploadSize != "" {
		size, err := server.ParseSize(opts.maxUploadSize)
		if err != nil {
			return err
		}
		cfg.SetUploadSizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	srv := cfg.NewHTTPServer(server.NewHandler(logger, cfg.UploadSizeBytes(), version))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main.runServe"),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.String("op", "main.runServe"), zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "main.runServe"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
