package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/config"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/events/kafka"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/logger"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/storage/memory"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	opts := []ledger.Option{
		ledger.WithLogger(log),
		ledger.WithProcessor(ledger.NewProcessor(ledger.WithDuplicatePolicy(cfg.Duplicates))),
	}
	if cfg.Kafka.Enabled() {
		pub := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer pub.Close()
		opts = append(opts, ledger.WithPublisher(pub))
	}

	ledgerService := ledger.NewLedger(memory.NewMemoryAccountStore(), opts...)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newMux(ledgerService, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", zap.String("addr", cfg.HTTPAddr), zap.String("run_id", ledgerService.RunID()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", zap.Error(err))
	}
}
