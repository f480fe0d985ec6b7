package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/michaelbrown/crucible/internal/config"
	"github.com/michaelbrown/crucible/internal/executor"
	"github.com/michaelbrown/crucible/internal/runner"
	"github.com/michaelbrown/crucible/internal/server"
	"github.com/michaelbrown/crucible/internal/workspace"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Crucible HTTP server",
	Long: `Start the HTTP server exposing POST /execute/python.

Examples:
  crucible serve
  crucible serve --port 9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	coordinator := executor.New(executor.Config{
		PythonBin:     cfg.Execution.PythonBin,
		Flake8Bin:     cfg.Lint.Flake8Bin,
		Timeout:       cfg.ExecutionTimeout(),
		LintTimeout:   cfg.LintTimeout(),
		MaxConcurrent: cfg.Execution.MaxConcurrent,
	}, runner.New(), workspace.NewManager(cfg.Workspace.Dir))

	port := cfg.Server.Port
	if portFlag > 0 {
		port = portFlag
	}

	srv := server.New(coordinator)

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		srv.Shutdown(context.Background())
	}()

	if err := srv.Start(port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
