package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"PatternScout/internal/api"
	"PatternScout/internal/chart"
	"PatternScout/internal/collector"
	"PatternScout/internal/config"
	"PatternScout/internal/notifier"
	"PatternScout/internal/recorder"
	"PatternScout/internal/report"
	"PatternScout/internal/scanner"
	"PatternScout/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PatternScout starting...")

	// .env is optional; real env vars still win.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "binance":
		fetcher = collector.NewBinanceFetcher(cfg.Proxy)
	case "mock":
		fetcher = &collector.MockFetcher{Price: 100, Bars: collector.GenerateMockBars(100, cfg.DataSource.Lookback)}
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.DataSource.Interval, cfg.DataSource.Lookback)
	sc := scanner.New(col)

	// Init notifier
	var tn notifier.Notifier
	var telegram *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		tn = telegram
	} else {
		log.Println("[WARN] Telegram not configured, alerts stay on the console")
		tn = notifier.NewNoopNotifier()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler with chart and report output
	renderer := chart.NewRenderer(cfg.Output.ChartDir)
	excel := report.NewExcelWriter(cfg.Output.ReportDir)
	sched := scheduler.NewScheduler(ctx, sc, tn, rec, renderer, excel, cfg.DataSource.Symbols)
	if err := sched.RegisterAll(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start API server
	srv := api.NewServer(sc, rec, cfg.Output.ChartDir)
	srv.Start(cfg.Server.ListenAddr)

	// Start Telegram polling
	if telegram != nil {
		go telegram.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, scanning watchlist now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] PatternScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] API shutdown: %v", err)
	}
	log.Println("[INFO] PatternScout stopped")
}
