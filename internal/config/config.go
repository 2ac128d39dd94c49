package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PaymentXendit      = "xendit"
	PaymentMercadoPago = "mercadopago"
)

type Config struct {
	ServerPort string

	DBDriver string
	DBUrl    string

	JWTSecret   string
	FrontendURL string
	CORSOrigins []string

	PaymentProvider        string
	XenditSecretKey        string
	XenditBaseURL          string
	MercadoPagoAccessToken string
	PaymentCurrency        string
	PaymentTimeout         time.Duration

	RedisURL string
	CacheTTL time.Duration

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	ImageMaxWidth int

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBUrl:    getEnv("DATABASE_URL", ""),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", ""), "/"),
		CORSOrigins: splitList(getEnv("CORS_ORIGIN", "")),

		PaymentProvider:        strings.ToLower(getEnv("PAYMENT_PROVIDER", PaymentXendit)),
		XenditSecretKey:        getEnv("XENDIT_SECRET_KEY", ""),
		XenditBaseURL:          getEnv("XENDIT_BASE_URL", "https://api.xendit.co"),
		MercadoPagoAccessToken: getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
		PaymentCurrency:        getEnv("PAYMENT_CURRENCY", "IDR"),
		PaymentTimeout:         getDuration("PAYMENT_TIMEOUT", 15*time.Second),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getDuration("CACHE_TTL", time.Minute),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),

		ImageMaxWidth: getInt("IMAGE_MAX_WIDTH", 1200),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate reports every missing setting the API server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.DBUrl == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.FrontendURL == "" {
		errs = append(errs, errors.New("FRONTEND_URL is required"))
	}

	switch c.PaymentProvider {
	case PaymentXendit:
		if c.XenditSecretKey == "" {
			errs = append(errs, errors.New("XENDIT_SECRET_KEY is required"))
		}
	case PaymentMercadoPago:
		if c.MercadoPagoAccessToken == "" {
			errs = append(errs, errors.New("MERCADOPAGO_ACCESS_TOKEN is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.PaymentProvider))
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// AllowedOrigins is the CORS allow-list: CORS_ORIGIN entries, the frontend
// and the local dev server.
func (c *Config) AllowedOrigins() []string {
	out := make([]string, 0, len(c.CORSOrigins)+2)
	out = append(out, c.CORSOrigins...)
	if c.FrontendURL != "" {
		out = append(out, c.FrontendURL)
	}
	return append(out, "http://localhost:5173")
}

func (c *Config) ImagesEnabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
