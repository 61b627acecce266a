// Package config collects the non-LLM runtime settings from the environment.
// LLM provider settings live in llm.ConfigFromEnv.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// DBDriver is "sqlite" (default) or "postgres".
	DBDriver string
	// DBDSN is the database path or connection string. Empty means the
	// default SQLite path.
	DBDSN string

	// RedisAddr enables the generated-bank cache when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	// AMQPURL enables quiz event publishing when set.
	AMQPURL      string
	AMQPExchange string

	HTTPAddr    string
	CORSOrigins []string

	// BankPath serves quizzes from a JSON bank instead of the LLM.
	BankPath string
}

func FromEnv() Config {
	return Config{
		DBDriver:      envOr("SIMULADO_DB_DRIVER", "sqlite"),
		DBDSN:         os.Getenv("SIMULADO_DB"),
		RedisAddr:     os.Getenv("SIMULADO_REDIS_ADDR"),
		RedisPassword: os.Getenv("SIMULADO_REDIS_PASSWORD"),
		RedisDB:       envInt("SIMULADO_REDIS_DB", 0),
		RedisTTL:      envDuration("SIMULADO_REDIS_TTL", 24*time.Hour),
		AMQPURL:       os.Getenv("SIMULADO_AMQP_URL"),
		AMQPExchange:  envOr("SIMULADO_AMQP_EXCHANGE", "simulado.events"),
		HTTPAddr:      envOr("SIMULADO_HTTP_ADDR", ":8080"),
		CORSOrigins:   csvOr("SIMULADO_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		BankPath:      os.Getenv("SIMULADO_BANK"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d < 0 {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
