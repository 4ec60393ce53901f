package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockWatch/internal/app"
	"StockWatch/internal/notifier"
	"StockWatch/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockWatch bot starting...")

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.ValidateTelegram(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, c := app.NewService(ctx, cfg)
	defer c.Close()

	session := app.NewSession(cfg)
	log.Printf("[INFO] watchlist: %v", session.Tickers())

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, svc, session, tn)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending digest now")
		go sched.RunDigestNow()
	}

	log.Println("[INFO] StockWatch is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockWatch stopped")
}
