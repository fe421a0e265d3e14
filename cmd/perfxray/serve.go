package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NickCirv/perf-x-ray/pkg/matcher"
	"github.com/NickCirv/perf-x-ray/pkg/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a long-lived NDJSON scanner over stdin/stdout",
	Long: `Serve newline-delimited JSON requests on stdin and write responses to
stdout. Intended for editor plugins and other hosts that want to scan
content repeatedly without paying catalog compilation per invocation.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&scanRulesPath, "rules", "", "YAML file with extra rules, appended after the builtins")
}

func runServe(cmd *cobra.Command, args []string) error {
	rules, err := loadRules(scanRulesPath)
	if err != nil {
		return err
	}
	engine, err := matcher.New(rules)
	if err != nil {
		return fmt.Errorf("creating matcher: %w", err)
	}

	// Coarse cancellation: requests in flight finish, the loop stops after.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := serve.NewServer(engine, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
