package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr      string
	StatusCacheTTL time.Duration

	KafkaBrokers            []string
	KafkaNotificationsTopic string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	JWTSecret string

	ImageRetentionDays int
	ReminderWindowDays int
	ReminderCronSpec   string
	ImagePurgeCronSpec string
	SchedulerActorID   string
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading path when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	var errs []error
	intVar := func(key string, def int) int {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}

	ttl, err := time.ParseDuration(env("STATUS_CACHE_TTL", "24h"))
	if err != nil {
		errs = append(errs, fmt.Errorf("STATUS_CACHE_TTL: %w", err))
	}
	useSSL, err := strconv.ParseBool(env("MINIO_USE_SSL", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("MINIO_USE_SSL: %w", err))
	}

	cfg := Config{
		HTTPPort:   env("HTTP_PORT", "8080"),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		StatusCacheTTL: ttl,

		KafkaBrokers:            splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaNotificationsTopic: env("KAFKA_NOTIFICATIONS_TOPIC", "order-notifications"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    env("MINIO_BUCKET", "order-photos"),
		MinioUseSSL:    useSSL,

		JWTSecret: os.Getenv("JWT_SECRET"),

		ImageRetentionDays: intVar("IMAGE_RETENTION_DAYS", 180),
		ReminderWindowDays: intVar("REMINDER_WINDOW_DAYS", 3),
		ReminderCronSpec:   env("REMINDER_CRON_SPEC", "0 0 7 * * *"),
		ImagePurgeCronSpec: env("IMAGE_PURGE_CRON_SPEC", "0 30 2 * * *"),
		SchedulerActorID:   env("SCHEDULER_ACTOR_ID", "scheduler"),
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.MinioEndpoint == "" {
		errs = append(errs, errors.New("MINIO_ENDPOINT is required"))
	}
	return cfg, errors.Join(errs...)
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
