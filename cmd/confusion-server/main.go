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

	"github.com/atomicstack/confusion-tui/internal/devserver"
	"github.com/atomicstack/confusion-tui/internal/devserver/seed"
	"github.com/atomicstack/confusion-tui/internal/devserver/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type serverOptions struct {
	addr   string
	db     string
	seed   string
	delay  time.Duration
	reseed bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := serverOptions{}
	cmd := &cobra.Command{
		Use:   "confusion-server",
		Short: "Development REST API for the confusion terminal client",
		Long: `Serves dishes and feedback over HTTP from a sqlite database.

The database is seeded from a YAML menu on first start (or with --reseed).
Use --delay to slow every response down and watch the client's spinners.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts, newLogger())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", ":3000", "listen address")
	flags.StringVar(&opts.db, "db", "confusion.db", "sqlite database path (:memory: for a throwaway store)")
	flags.StringVar(&opts.seed, "seed", "", "YAML seed file (embedded menu when empty)")
	flags.DurationVar(&opts.delay, "delay", 0, "artificial latency added to every response")
	flags.BoolVar(&opts.reseed, "reseed", false, "replace stored dishes with the seed menu")
	return cmd
}

func newLogger() zerolog.Logger {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func run(ctx context.Context, opts serverOptions, log zerolog.Logger) error {
	st, err := store.Open(opts.db)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := seedIfEmpty(ctx, st, opts, log); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           devserver.New(st, devserver.Options{Logger: log, Delay: opts.delay}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", opts.addr).Str("db", opts.db).Dur("delay", opts.delay).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func seedIfEmpty(ctx context.Context, st *store.Store, opts serverOptions, log zerolog.Logger) error {
	n, err := st.CountDishes(ctx)
	if err != nil {
		return fmt.Errorf("count dishes: %w", err)
	}
	if n > 0 && !opts.reseed {
		return nil
	}
	data, err := seed.Load(opts.seed)
	if err != nil {
		return err
	}
	if err := st.ReplaceDishes(ctx, data.Dishes); err != nil {
		return fmt.Errorf("seed dishes: %w", err)
	}
	log.Info().Int("dishes", len(data.Dishes)).Msg("seeded menu")
	return nil
}
