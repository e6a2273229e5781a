package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	MongoURI               string
	MongoDB                string
	KafkaHost              string
	KafkaOrderChangedTopic string
	JWTSecret              string
	WSAllowedOrigins       string
	ReconcileSchedule      string
	LogLevel               string
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over it.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", ""),
		DBName:                 getEnv("DB_NAME", "warehouse"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		MongoURI:               getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:                getEnv("MONGO_DB", "warehouse"),
		KafkaHost:              getEnv("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		WSAllowedOrigins:       getEnv("WS_ALLOWED_ORIGINS", ""),
		ReconcileSchedule:      getEnv("RECONCILE_SCHEDULE", "0 * * * * *"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

// DSN is the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means Kafka is disabled.
func (c Config) KafkaBrokers() []string {
	return splitList(c.KafkaHost)
}

func (c Config) AllowedOrigins() []string {
	return splitList(c.WSAllowedOrigins)
}

// SlogLevel parses LOG_LEVEL, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// String returns a loggable form of the config with secrets masked.
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{HTTP: %s, DB: %s@%s:%s/%s, Mongo: %s/%s, Kafka: %q topic %s, JWT: *** (masked) ***, Reconcile: %q}",
		c.HTTPPort, c.DBUser, c.DBHost, c.DBPort, c.DBName,
		maskURI(c.MongoURI), c.MongoDB,
		c.KafkaHost, c.KafkaOrderChangedTopic,
		c.ReconcileSchedule,
	)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// maskURI hides the password in user:password@host URIs.
func maskURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return uri
	}
	user, _, _ := strings.Cut(creds, ":")
	return scheme + "://" + user + ":***@" + host
}
