package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ticket number strategies.
const (
	NumberStrategyRandom   = "random"
	NumberStrategySequence = "sequence"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Tickets  TicketConfig
	Jobs     JobsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
	AppName        string
	ConnectTimeout time.Duration
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level   string
	Format  string
	Service string
	Env     string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	BootstrapEmail        string
	BootstrapPassword     string
	BootstrapName         string
}

// TicketConfig selects how ticket numbers are drawn.
type TicketConfig struct {
	NumberStrategy string
	NumberSeed     int64
	SequenceKey    string
}

// JobsConfig schedules background jobs. An empty spec disables the job.
type JobsConfig struct {
	SummarySnapshotCron string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	seed, err := strconv.ParseInt(getEnv("TICKET_NUMBER_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TICKET_NUMBER_SEED: %w", err)
	}

	strategy := strings.ToLower(getEnv("TICKET_NUMBER_STRATEGY", NumberStrategyRandom))
	if strategy != NumberStrategyRandom && strategy != NumberStrategySequence {
		return nil, fmt.Errorf("invalid TICKET_NUMBER_STRATEGY %q", strategy)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpdesk-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
			AppName:        getEnv("APP_NAME", "helpdesk-service"),
			ConnectTimeout: time.Duration(getEnvAsInt("POSTGRES_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  strings.ToLower(getEnv("LOG_FORMAT", "json")),
			Service: getEnv("APP_NAME", "helpdesk-service"),
			Env:     getEnv("APP_ENV", "development"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			BootstrapEmail:        os.Getenv("AUTH_BOOTSTRAP_TECHNICIAN_EMAIL"),
			BootstrapPassword:     os.Getenv("AUTH_BOOTSTRAP_TECHNICIAN_PASSWORD"),
			BootstrapName:         getEnv("AUTH_BOOTSTRAP_TECHNICIAN_NAME", "Helpdesk Technician"),
		},
		Tickets: TicketConfig{
			NumberStrategy: strategy,
			NumberSeed:     seed,
			SequenceKey:    getEnv("TICKET_NUMBER_SEQUENCE_KEY", "helpdesk:ticket-number"),
		},
		Jobs: JobsConfig{
			SummarySnapshotCron: os.Getenv("SUMMARY_SNAPSHOT_CRON"),
		},
	}

	if cfg.Tickets.NumberStrategy == NumberStrategySequence && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("TICKET_NUMBER_STRATEGY=%s requires REDIS_ADDR", NumberStrategySequence)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
