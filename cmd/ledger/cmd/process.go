package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/config"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/csvio"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/events/kafka"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/logger"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/storage/memory"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/storage/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type processOptions struct {
	postgresDSN  string
	kafkaBrokers string
	duplicates   string
}

func newProcessCmd() *cobra.Command {
	var opts processOptions

	c := &cobra.Command{
		Use:   "process <transactions.csv>",
		Short: "Apply a transaction log and print final balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			f, err := os.Open(args[0])
			if err != nil {
				log.Error("cannot open transaction log", zap.String("path", args[0]), zap.Error(err))
				return fmt.Errorf("open transaction log: %w", err)
			}
			defer f.Close()

			return process(cmd.Context(), cfg, log, f, cmd.OutOrStdout())
		},
	}

	c.Flags().StringVar(&opts.postgresDSN, "postgres-dsn", "", "also export balances to this postgres database")
	c.Flags().StringVar(&opts.kafkaBrokers, "kafka-brokers", "", "comma separated brokers for transaction events")
	c.Flags().StringVar(&opts.duplicates, "duplicates", "", "duplicate tx id policy: reject or credit")

	return c
}

// apply overrides configuration values with flags given on the command line.
func (o processOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("postgres-dsn") {
		cfg.PostgresDSN = o.postgresDSN
	}
	if cmd.Flags().Changed("kafka-brokers") {
		cfg.Kafka.Brokers = nil
		for _, b := range strings.Split(o.kafkaBrokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	if cmd.Flags().Changed("duplicates") {
		p, err := ledger.ParseDuplicatePolicy(o.duplicates)
		if err != nil {
			return err
		}
		cfg.Duplicates = p
	}
	return cfg.Validate()
}

func process(ctx context.Context, cfg *config.Config, log *zap.Logger, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []ledger.Option{
		ledger.WithLogger(log),
		ledger.WithProcessor(ledger.NewProcessor(ledger.WithDuplicatePolicy(cfg.Duplicates))),
	}
	if cfg.Kafka.Enabled() {
		pub := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := pub.Close(); err != nil {
				log.Warn("close kafka publisher", zap.Error(err))
			}
		}()
		opts = append(opts, ledger.WithPublisher(pub))
	}

	l := ledger.NewLedger(memory.NewMemoryAccountStore(), opts...)

	if _, err := l.Run(ctx, csvio.NewReader(in).Records()); err != nil {
		log.Error("run aborted", zap.String("run_id", l.RunID()), zap.Error(err))
		return err
	}

	if err := csvio.NewWriter(out).WriteBalances(ctx, l.Snapshot()); err != nil {
		return fmt.Errorf("write balances: %w", err)
	}

	if cfg.PostgresDSN == "" {
		return nil
	}

	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	sink := postgres.NewPostgresBalanceSink(db, l.RunID())
	if err := sink.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := sink.WriteBalances(ctx, l.Snapshot()); err != nil {
		return err
	}
	log.Info("balances exported", zap.String("run_id", l.RunID()))
	return nil
}
