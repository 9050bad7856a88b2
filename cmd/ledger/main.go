package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/config"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/logging"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/runner"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/storage/postgres"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage: ledger <transactions.csv>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(args) < 1 {
		return errUsage
	}
	path := args[0]

	logger.Info("opening file", zap.String("path", path))
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithPrecision(cfg.DisplayPrecision),
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("closing kafka publisher", zap.Error(err))
			}
		}()
		opts = append(opts, runner.WithPublisher(publisher))
	}

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("opening postgres: %w", err)
		}
		defer db.Close()

		sink := postgres.NewSnapshotStore(db)
		if err := sink.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, runner.WithSink(sink))
	}

	_, err = runner.New(memory.NewStore(), opts...).Run(ctx, bufio.NewReader(file), stdout)
	return err
}
