package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bjaus/ephemera"
)

const version = "0.1.0"

type record struct {
	Name  string
	Count int
}

type options struct {
	keys     int
	spread   int
	workers  int
	sweep    time.Duration
	example  bool
	verbose  bool
	showVers bool
}

func main() {
	var opts options
	flag.IntVar(&opts.keys, "keys", 1_000_000, "number of keys to insert")
	flag.IntVar(&opts.spread, "spread", 10, "number of TTL tiers; key i lives 1+i/(keys/spread) seconds")
	flag.IntVar(&opts.workers, "workers", 4, "concurrent inserters")
	flag.DurationVar(&opts.sweep, "sweep", ephemera.DefaultSweepInterval, "sweep interval")
	flag.BoolVar(&opts.example, "example", false, "run the example scenario instead of the benchmark")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.BoolVar(&opts.showVers, "version", false, "print version and exit")
	flag.Parse()

	if opts.showVers {
		fmt.Println("ephemera v" + version)
		return
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Canceling ctx stops the sweeper, so a signal shuts it down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	run := runBenchmark
	if opts.example {
		run = runExample
	}
	if err := run(ctx, opts, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func newCache(opts options, logger *slog.Logger) *ephemera.Cache[record] {
	return ephemera.New[record](
		ephemera.WithSweepInterval[record](opts.sweep),
		ephemera.WithLogger[record](logger),
	)
}

// runBenchmark inserts opts.keys entries spread over opts.spread TTL tiers and
// waits until the sweeper has evicted the last one.
func runBenchmark(ctx context.Context, opts options, logger *slog.Logger) error {
	if opts.keys <= 0 || opts.spread <= 0 || opts.workers <= 0 {
		return fmt.Errorf("keys, spread and workers must be positive")
	}

	cache := newCache(opts, logger)
	if err := cache.Start(ctx); err != nil {
		return err
	}
	defer cache.Close()

	tier := max(opts.keys/opts.spread, 1)
	value := record{Name: "foo", Count: 123}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := range opts.workers {
		g.Go(func() error {
			for i := w; i < opts.keys; i += opts.workers {
				if i%10_000 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				ttl := time.Duration(1+i/tier) * time.Second
				if err := cache.SetWithTTL("key"+strconv.Itoa(i), value, ttl); err != nil {
					return fmt.Errorf("set key%d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("inserted", "keys", opts.keys, "elapsed", time.Since(start))

	last := "key" + strconv.Itoa(opts.keys-1)
	ticker := time.NewTicker(opts.sweep)
	defer ticker.Stop()
	for cache.Has(last) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			logger.Debug("waiting", "remaining", cache.Len())
		}
	}

	stats := cache.Stats()
	logger.Info("done",
		"elapsed", time.Since(start),
		"expired", stats.Expirations,
		"sweeps", stats.Sweeps,
		"remaining", cache.Len(),
	)
	return nil
}

// runExample sets a few keys with default and explicit TTLs, reads one back,
// then lets the sweeper run until interrupted.
func runExample(ctx context.Context, opts options, logger *slog.Logger) error {
	cache := newCache(opts, logger)
	if err := cache.Start(ctx); err != nil {
		return err
	}
	defer cache.Close()

	foo := record{Name: "foo", Count: 123}
	for _, key := range []string{"key1", "key2", "key3"} {
		if err := cache.Set(key, foo); err != nil {
			return err
		}
	}

	bar := record{Name: "bar", Count: 321}
	for i, key := range []string{"keyA", "keyB", "keyC"} {
		if err := cache.SetWithTTL(key, bar, time.Duration(i+2)*ephemera.DefaultTTL); err != nil {
			return err
		}
	}

	v, err := cache.Get("keyC")
	if err != nil {
		return err
	}
	fmt.Printf("Key: %q\nValue: {name: %q, count: %d}\n", "keyC", v.Name, v.Count)

	<-ctx.Done()
	return ctx.Err()
}
