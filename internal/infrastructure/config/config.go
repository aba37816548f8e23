package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all daemon configuration loaded from environment variables.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	DB        DBConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Rates     RatesConfig
	LogLevel  string
	LogFormat string
}

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxConns      int32
	MinConns      int32
	MigrationsDir string
}

// KafkaConfig holds Kafka broker configuration.
type KafkaConfig struct {
	Brokers []string
}

// AuthConfig holds JWT validation parameters.
type AuthConfig struct {
	JWTSecret     string
	PublicKeyPath string
}

// RatesConfig selects and tunes the exchange-rate provider. With an empty URL
// the daemon falls back to the static development table.
type RatesConfig struct {
	ProviderURL string
	CacheTTL    time.Duration
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.PublicKeyPath == "" {
		panic("JWT_SECRET or JWT_PUBLIC_KEY_PATH environment variable is required")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		DB: DBConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "moneta"),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_NAME", "moneta"),
			SSLMode:       getEnv("DB_SSLMODE", "require"),
			MaxConns:      int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns:      int32(getEnvInt("DB_MIN_CONNS", 5)),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "migrations"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			PublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
		},
		Rates: RatesConfig{
			ProviderURL: getEnv("RATE_PROVIDER_URL", ""),
			CacheTTL:    getEnvDuration("RATE_CACHE_TTL", 5*time.Minute),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
