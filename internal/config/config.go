package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Session    SessionConfig
	Migrations MigrationConfig
	CORSOrigin string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
	Topics  TopicConfig
}

type TopicConfig struct {
	EventCreated string
	EventUpdated string
	EventDeleted string
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type MigrationConfig struct {
	Dir         string
	AutoMigrate bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			DSN: getEnv("POSTGRES_DSN", ""),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Topics: TopicConfig{
				EventCreated: getEnv("KAFKA_TOPIC_EVENT_CREATED", "club-events.event.created"),
				EventUpdated: getEnv("KAFKA_TOPIC_EVENT_UPDATED", "club-events.event.updated"),
				EventDeleted: getEnv("KAFKA_TOPIC_EVENT_DELETED", "club-events.event.deleted"),
			},
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "vce-session-secret"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "vce_session"),
			TTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 8)) * time.Hour,
			Secure:     getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Migrations: MigrationConfig{
			Dir:         getEnv("MIGRATIONS_DIR", "./migrations"),
			AutoMigrate: getEnvBool("AUTO_MIGRATE", true),
		},
		CORSOrigin: getEnv("CORS_ORIGIN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
