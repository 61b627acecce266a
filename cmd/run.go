package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/simulado/internal/app"
	"github.com/abhisek/simulado/internal/config"
	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/llm"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// deps holds everything a presentation binding needs.
type deps struct {
	store     *store.Store
	provider  questionbank.Provider
	recorder  *events.Recorder
	publisher events.Publisher
	redis     *redis.Client
}

func (d *deps) Close() {
	if d.publisher != nil {
		d.publisher.Close()
	}
	if d.redis != nil {
		d.redis.Close()
	}
	if d.store != nil {
		d.store.Close()
	}
}

// openStore opens the event store for the configured driver. SQLite uses
// resolveDBPath; postgres needs a DSN from --db or SIMULADO_DB.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	driver, err := store.ParseDriver(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	if driver == store.DriverSQLite {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		return store.Open(dbPath)
	}

	dsn, _ := cmd.Flags().GetString("db")
	if dsn == "" {
		dsn = cfg.DBDSN
	}
	if dsn == "" {
		return nil, fmt.Errorf("%s driver requires --db or SIMULADO_DB", driver)
	}
	return store.OpenDriver(cmd.Context(), driver, dsn)
}

// buildDeps opens the store and assembles the question bank provider and
// the event recorder.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.FromEnv()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d := &deps{store: st}
	eventRepo := st.EventRepo()

	base, err := baseProvider(ctx, cmd, cfg, eventRepo)
	if err != nil {
		d.Close()
		return nil, err
	}

	if cfg.RedisAddr != "" {
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := d.redis.Ping(ctx).Err(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: redis unavailable, bank cache disabled: %v\n", err)
			d.redis.Close()
			d.redis = nil
		} else {
			base = questionbank.NewCachedProvider(base, questionbank.NewRedisCache(d.redis, cfg.RedisTTL))
		}
	}
	d.provider = questionbank.NewGuard(base)

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, quiz events will not be published\n", err)
		d.recorder = events.NewRecorder(eventRepo, nil)
	} else {
		d.publisher = publisher
		d.recorder = events.NewRecorder(eventRepo, publisher)
	}

	return d, nil
}

// baseProvider returns a static provider when a bank file is configured,
// otherwise the LLM-backed provider. A missing LLM configuration is not
// fatal: every generation then fails with a credentials ProviderFailure.
func baseProvider(ctx context.Context, cmd *cobra.Command, cfg config.Config, eventRepo store.EventRepo) (questionbank.Provider, error) {
	bankPath, _ := cmd.Flags().GetString("bank")
	if bankPath == "" {
		bankPath = cfg.BankPath
	}
	if bankPath != "" {
		qs, err := questionbank.LoadFile(bankPath)
		if err != nil {
			return nil, fmt.Errorf("load bank: %w", err)
		}
		return questionbank.NewStaticProvider(qs), nil
	}

	provider, _, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will fail until an API key is set.")
		return questionbank.Unavailable("credentials", err), nil
	}
	return questionbank.NewLLMProvider(provider, questionbank.DefaultConfig()), nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Provider:  d.provider,
		Recorder:  d.recorder,
		EventRepo: d.store.EventRepo(),
	})
}
