package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/environment-evaluator/internal/evaluation"
	"github.com/jonathan/environment-evaluator/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the evaluate and lookup endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	port := appConfig.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{Port: port}, server.Deps{
		Evaluator: evaluation.NewPipeline(database, logger),
		Finder:    evaluation.NewLookup(database, logger),
		Generator: client,
		Pinger:    database,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("using model", zap.String("provider", appConfig.LLMProvider), zap.String("model", client.Model()))
	return srv.Start(ctx)
}
