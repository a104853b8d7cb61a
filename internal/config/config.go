package config

import (
	"os"
	"time"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Config struct {
	Port string

	// Reserved administrator credential. The admin account lives only here,
	// never in the users table.
	AdminEmail    string
	AdminPassword string

	R2     R2Config
	Gemini GeminiConfig

	StripeSecretKey string

	// When true, a failed generation returns the debited credit. The default
	// keeps the credit spent on failed attempts.
	RefundOnFailure bool
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@pixagen.app"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		RefundOnFailure: getEnv("IMAGE_REFUND_ON_FAILURE", "false") == "true",
	}

	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", "gemini-2.5-flash-image")
	cfg.Gemini.Timeout = 5 * time.Minute

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
