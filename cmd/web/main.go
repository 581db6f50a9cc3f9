package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dokusho-feedback/internal/analytics"
	"dokusho-feedback/internal/config"
	"dokusho-feedback/internal/llm"
	"dokusho-feedback/internal/scheduler"
	"dokusho-feedback/internal/session"
	"dokusho-feedback/internal/storage"
	"dokusho-feedback/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.New()
	if err != nil {
		// GEMINI_API_KEY is required; nothing is served without it
		log.Fatalf("Gemini API キー(GEMINI_API_KEY)などの設定を読み込めませんでした: %v", err)
	}

	recorder, err := storage.NewCSVRecorder(cfg.LogFilePath)
	if err != nil {
		log.Fatalf("failed to init feedback log: %v", err)
	}

	factory := llm.NewFactory(cfg)
	sessions := session.NewManager()
	server := web.NewServer(sessions, recorder, factory, cfg.LLMProvider, cfg.Port)

	if cfg.DailySummary {
		sched := scheduler.New()
		sched.SetSummaryFunction(func(ctx context.Context) error {
			records, err := recorder.Load()
			if err != nil {
				return err
			}
			log.Printf("daily score summary %s", analytics.Summarize(records, time.Now().UTC()).ReportLine())
			return nil
		})
		if err := sched.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		} else {
			defer sched.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("web server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("shutting down")
		if err := server.Stop(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
