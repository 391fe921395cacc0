package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MetalWatch/internal/api"
	"MetalWatch/internal/collector"
	"MetalWatch/internal/config"
	"MetalWatch/internal/logger"
	"MetalWatch/internal/notifier"
	"MetalWatch/internal/scheduler"
	"MetalWatch/internal/screen"
)

func main() {
	// Load config
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

	lg, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("[FATAL] init logger: %v", err)
	}
	defer lg.Sync()
	lg.Info("MetalWatch starting")

	loc, _ := cfg.Location()

	// Init fetcher
	var fetcher collector.Fetcher = collector.NewMetalsDevFetcher(collector.FeedConfig{
		BaseURL:  cfg.Feed.BaseURL,
		APIKey:   cfg.Feed.APIKey,
		Currency: cfg.Feed.Currency,
		Unit:     cfg.Feed.Unit,
		Timeout:  cfg.Feed.Timeout,
		Location: loc,
	}, cfg.Proxy)
	fetcher = collector.NewInstrumentedFetcher(fetcher, lg)
	lg.Info("data source", zap.String("name", fetcher.Name()), zap.String("currency", cfg.Feed.Currency))

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ticker for elapsed-time text
	sched := scheduler.NewScheduler(lg)
	sched.Start()
	defer sched.Stop()

	// Screens
	opts := screen.Options{
		CurrencySymbol: cfg.Display.CurrencySymbol,
		CardUnit:       cfg.Display.CardUnit,
		DetailUnit:     cfg.Display.DetailUnit,
		TickInterval:   cfg.Display.TickInterval,
		Location:       loc,
	}
	list := screen.NewListScreen(fetcher, sched, opts, lg)
	defer list.Close()
	nav := screen.NewNavigator(fetcher, opts, lg)

	go list.Mount(ctx)

	// HTTP API
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(api.NewMetalsHandler(list, nav), lg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		lg.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server", zap.Error(err))
		}
	}()

	// Telegram bot
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, lg)
		bot := notifier.NewBot(list, nav)
		go tn.StartPolling(ctx, bot.HandleCommand)
		lg.Info("telegram polling started")
	} else {
		lg.Info("telegram disabled: bot_token or chat_id not set")
	}

	lg.Info("MetalWatch is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	lg.Info("shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown", zap.Error(err))
	}
	lg.Info("MetalWatch stopped")
}
