package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"wolfdice/internal/client"
	"wolfdice/internal/config"
	"wolfdice/internal/model"
	"wolfdice/internal/monitoring"
	"wolfdice/internal/notifier"
	"wolfdice/internal/recorder"
	"wolfdice/internal/render"
	"wolfdice/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] wolfdice starting...")

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

	// Init API client
	cl := client.NewWolfBet(cfg.APIBaseURL, cfg.AccessToken, cfg.Proxy)

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

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, cfg.Retry.MaxAttempts)
	}

	display := render.NewConsole(os.Stdout, cfg.Currency)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	ctrl := session.NewController(cfg, cl, rec, display, tn, nil)

	// Telegram polling for status commands
	if tn != nil {
		go tn.StartPolling(ctx, func(cmd string) string {
			switch cmd {
			case "/status":
				stats, ok := ctrl.Status()
				if !ok {
					return "No rounds resolved yet."
				}
				return notifier.FormatStats(stats, cfg.Currency)
			case "/history":
				return notifier.FormatHistoryReply(ctrl.History())
			default:
				return "Commands:\n• /status\n• /history"
			}
		})
		log.Println("[INFO] Telegram polling started")
	}

	// Metrics endpoint
	if cfg.Metrics.ListenAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", monitoring.Handler())
			log.Printf("[INFO] metrics listening on %s", cfg.Metrics.ListenAddr)
			if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
				log.Printf("[ERROR] metrics server: %v", err)
			}
		}()
	}

	if cfg.Schedule.SessionCron != "" {
		runScheduled(ctx, cfg, ctrl)
	} else {
		runSessions(ctx, cfg, ctrl)
	}

	log.Println("[INFO] wolfdice stopped")
}

// runSessions runs sessions back to back, restarting after the
// configured delay when auto_start is enabled.
func runSessions(ctx context.Context, cfg *config.Config, ctrl *session.Controller) {
	for num := 1; ; num++ {
		sum, err := ctrl.Run(ctx, num)
		if err != nil {
			log.Printf("[ERROR] session %d: %v", num, err)
		}
		if sum.Reason == model.EndInterrupted {
			return
		}
		if !cfg.AutoStart {
			return
		}
		log.Printf("[INFO] auto-restart in %d seconds...", cfg.AutoStartDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(cfg.AutoStartDelay) * time.Second):
		}
	}
}

// runScheduled starts sessions on a cron schedule. An already-running
// session is never overlapped; the tick is skipped instead.
func runScheduled(ctx context.Context, cfg *config.Config, ctrl *session.Controller) {
	var running atomic.Bool
	var num atomic.Int64

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(cfg.Schedule.SessionCron, func() {
		if !running.CompareAndSwap(false, true) {
			log.Println("[WARN] session already running, skipping scheduled start")
			return
		}
		defer running.Store(false)
		if _, err := ctrl.Run(ctx, int(num.Add(1))); err != nil {
			log.Printf("[ERROR] scheduled session: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[FATAL] register session cron: %v", err)
	}
	c.Start()
	defer c.Stop()
	log.Printf("[INFO] session scheduler started: %s", cfg.Schedule.SessionCron)

	<-ctx.Done()
}
