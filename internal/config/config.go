package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	CookieSecure       bool

	AccountStore string // "dynamo" | "postgres"
	KVStore      string // "redis" | "dynamo"

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SMSOTPCopy bool
	SNSRegion  string

	OTPPersistOnDeliveryFailure bool

	AllowedOrigins []string // CORS allowed origins

	GatewayPort       string
	AuthServiceURL    string
	GatewayRateWindow time.Duration
	GatewayRateAnon   int
	GatewayRateAuthed int
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Buyers   string
	Sellers  string
	Shops    string
	OTPState string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "6001"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTokenTTL:     getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:    getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		CookieSecure:       getEnvBool("COOKIE_SECURE", true),

		AccountStore: getEnv("ACCOUNT_STORE", "dynamo"),
		KVStore:      getEnv("KV_STORE", "redis"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Buyers:   getEnv("DYNAMO_TABLE_BUYERS", "buyers"),
			Sellers:  getEnv("DYNAMO_TABLE_SELLERS", "sellers"),
			Shops:    getEnv("DYNAMO_TABLE_SHOPS", "shops"),
			OTPState: getEnv("DYNAMO_TABLE_OTP_STATE", "otp_state"),
		},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SMSOTPCopy: getEnvBool("SMS_OTP_COPY", false),
		SNSRegion:  getEnv("SNS_REGION", "us-east-1"),

		OTPPersistOnDeliveryFailure: getEnvBool("OTP_PERSIST_ON_DELIVERY_FAILURE", false),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		GatewayPort:       getEnv("GATEWAY_PORT", "8080"),
		AuthServiceURL:    getEnv("AUTH_SERVICE_URL", "http://localhost:6001"),
		GatewayRateWindow: getEnvDuration("GATEWAY_RATE_WINDOW", 15*time.Minute),
		GatewayRateAnon:   getEnvInt("GATEWAY_RATE_ANON", 100),
		GatewayRateAuthed: getEnvInt("GATEWAY_RATE_AUTHED", 1000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
