package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fprep/internal/auth"
	"fprep/internal/config"
	"fprep/internal/database"
	"fprep/internal/httpapi"
	"fprep/internal/kitchen"
	"fprep/internal/llm"
	"fprep/internal/mealplan"
	"fprep/internal/metrics"
	"fprep/internal/preference"
	"fprep/internal/telegram"
	"fprep/internal/user"
)

const sessionTTL = 30 * 24 * time.Hour

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize the LLM backend
	gen, err := newChatCompleter(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	if c, ok := gen.(llm.Closer); ok {
		defer c.Close()
	}

	// 3. Initialize the SQLite database and repositories
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planRepo := mealplan.NewRepository(db.SQL)
	kitchenRepo := kitchen.NewRepository(db.SQL)
	prefRepo := preference.NewRepository(db.SQL)
	userRepo := user.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// 4. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, gen, mealplan.NewDBStore(planRepo), planRepo, kitchenRepo, prefRepo, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 5. Initialize JSON API
	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	sessions := auth.NewSessionManager(cfg.SessionSecret, sessionTTL)
	api := httpapi.NewHandler(verifier, sessions, userRepo, planRepo)

	// 6. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)
	api.RegisterHandlers(mux)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func newChatCompleter(ctx context.Context, cfg *config.Config) (llm.ChatCompleter, error) {
	if cfg.LLMProvider == config.ProviderGemini {
		c, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return llm.NewOpenAIClient(cfg), nil
}
