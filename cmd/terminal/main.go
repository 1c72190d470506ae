package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"StockTerminal/internal/api"
	"StockTerminal/internal/cache"
	"StockTerminal/internal/collector"
	"StockTerminal/internal/config"
	"StockTerminal/internal/markethours"
	"StockTerminal/internal/metrics"
	"StockTerminal/internal/recorder"
	"StockTerminal/internal/report"
	"StockTerminal/internal/scheduler"
	"StockTerminal/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher, closeCache := withCache(cfg, newFetcher(cfg))
	defer closeCache()
	col := collector.NewCollector(fetcher, cfg.DataSource.HistoryRange)

	// One-shot mode: terminal <SYMBOL>
	if len(os.Args) > 1 {
		code := printReport(col, os.Args[1])
		closeCache()
		os.Exit(code)
	}

	log.Println("[INFO] StockTerminal starting...")
	log.Printf("[INFO] data source: %s, history range: %s", col.Fetcher.Name(), col.Range)

	rec := newRecorder(cfg.Database.SQLitePath)
	defer rec.Close()

	store := session.NewStore(cfg.Watchlist)
	if err := store.SetDefaults(session.AutoRefresh{Enabled: cfg.Refresh.Enabled, Interval: cfg.Refresh.Interval}); err != nil {
		log.Fatalf("[FATAL] refresh defaults: %v", err)
	}
	m := metrics.New()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, store, rec, cfg.Session.IdleTimeout)
	sched.Metrics = m
	if err := sched.RegisterAll(cfg.Refresh.TickCron, cfg.Refresh.ReapCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()

	srv := api.NewServer(api.NewHandler(col, store, rec, m),
		api.WithHost(cfg.Server.Host), api.WithPort(cfg.Server.Port))
	srv.Start()

	log.Printf("[INFO] StockTerminal is running on %s (%s). Press Ctrl+C to stop.",
		cfg.Addr(), markethours.Status(time.Now()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("[ERROR] %v", err)
	}
	sched.Stop()
	log.Println("[INFO] StockTerminal stopped")
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.DataSource.BaseURL != "" {
		return collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	}
	f := collector.NewYahooFetcher(cfg.Proxy)
	if cfg.DataSource.YahooURL != "" {
		f.BaseURL = cfg.DataSource.YahooURL
	}
	return f
}

// withCache wraps f in a Redis-backed cache when cache.redis_addr is set.
// An unreachable server is logged and the fetcher is used uncached.
func withCache(cfg *config.Config, f collector.Fetcher) (collector.Fetcher, func()) {
	if cfg.Cache.RedisAddr == "" {
		return f, func() {}
	}
	rc, err := cache.NewRedisCache(cache.Config{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		log.Printf("[WARN] redis cache unavailable, continuing without cache: %v", err)
		return f, func() {}
	}
	cf := collector.NewCachedFetcher(f, rc)
	cf.HistoryTTL = cfg.Cache.HistoryTTL
	cf.QuoteTTL = cfg.Cache.QuoteTTL
	cf.ProfileTTL = cfg.Cache.ProfileTTL
	return cf, func() { rc.Close() }
}

// newRecorder falls back to a no-op recorder when path is "-" or the database cannot be opened.
func newRecorder(path string) recorder.Recorder {
	if path == "" || path == "-" {
		return recorder.NewNoopRecorder()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("[WARN] create sqlite dir failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func printReport(col *collector.Collector, symbol string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, series, err := col.Technical(ctx, symbol)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error fetching data for %s: %v\n", collector.NormalizeSymbol(symbol), err)
		return 1
	}
	if err != nil {
		log.Printf("[WARN] %v", err)
	}
	fmt.Println(markethours.Status(time.Now()))
	fmt.Println()
	fmt.Print(report.Stock(data, series))
	return 0
}
