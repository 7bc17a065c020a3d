package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the configuration for the application.
type Config struct {
	LLMProvider  string
	OpenAIAPIKey string
	GeminiAPIKey string

	DatabasePath string

	// Google Sign-In / session config
	GoogleClientID string
	SessionSecret  string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = ProviderOpenAI
	}
	if provider != ProviderOpenAI && provider != ProviderGemini {
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, provider)
	}

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if provider == ProviderOpenAI && openAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if provider == ProviderGemini && geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/fprep.db"
	}

	// Telegram config (optional for the CLI, required for the bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")

	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	var adminID int64
	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID %q: %w", raw, err)
		}
		adminID = id
	}

	return &Config{
		LLMProvider:            provider,
		OpenAIAPIKey:           openAIAPIKey,
		GeminiAPIKey:           geminiAPIKey,
		DatabasePath:           databasePath,
		GoogleClientID:         os.Getenv("GOOGLE_CLIENT_ID"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		TelegramBotToken:       telegramBotToken,
		TelegramWebhookURL:     telegramWebhookURL,
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
	}, nil
}
