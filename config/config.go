package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"overbound"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	Env        string `envconfig:"ENV" default:"dev"`

	// Empty RabbitURL sends confirmation emails directly from the request goroutine.
	RabbitURL string `envconfig:"RABBITMQ_URL"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`

	PublicBaseURL       string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
	CheckoutSuccessPath string `envconfig:"CHECKOUT_SUCCESS_PATH" default:"/checkout/success"`
	CheckoutCancelPath  string `envconfig:"CHECKOUT_CANCEL_PATH" default:"/checkout/cancel"`

	MailerSendAPIKey string   `envconfig:"MAILERSEND_API_KEY"`
	MailFromEmail    string   `envconfig:"MAIL_FROM_EMAIL" default:"no-reply@overbound-race.com"`
	MailFromName     string   `envconfig:"MAIL_FROM_NAME" default:"Overbound"`
	AdminEmails      []string `envconfig:"ADMIN_EMAILS"`

	TelegramBotToken    string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64  `envconfig:"TELEGRAM_ADMIN_CHAT_ID"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Config] no .env file loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) SuccessURL() string {
	return c.PublicBaseURL + c.CheckoutSuccessPath + "?session_id={CHECKOUT_SESSION_ID}"
}

func (c *Config) CancelURL() string {
	return c.PublicBaseURL + c.CheckoutCancelPath
}
