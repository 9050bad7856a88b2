package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/api"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/config"
	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/ledger"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/logging"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/storage/memory"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ledgerService := ledger.NewLedger(func() interfaces.LedgerStore { return memory.NewStore() })

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewHandler(ledgerService, logger, cfg.DisplayPrecision).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutting down server", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	<-drained
	logger.Info("server stopped")
}
