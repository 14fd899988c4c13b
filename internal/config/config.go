package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Scoring  ScoringConfig
	Refresh  RefreshConfig
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
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. Accounts are provisioned
// through the environment as bcrypt hashes; there is no user store.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	AdminUsername         string
	AdminPasswordHash     string
	AnalystUsername       string
	AnalystPasswordHash   string
}

// ScoringConfig carries the default dissatisfaction weights and zone
// thresholds applied when a request does not override them.
type ScoringConfig struct {
	Weights        map[domain.ProblemTag]float64
	ThresholdLower float64
	ThresholdUpper float64
	OverlapTopN    int
	OverlapLower   float64
	OverlapUpper   float64
}

// RefreshConfig controls the periodic snapshot reload.
type RefreshConfig struct {
	IntervalSeconds int
}

// Interval returns the refresh period; zero disables the ticker.
func (r RefreshConfig) Interval() time.Duration {
	if r.IntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(r.IntervalSeconds) * time.Second
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "interaction-analytics"),
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
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			AdminUsername:         getEnv("AUTH_ADMIN_USERNAME", "admin"),
			AdminPasswordHash:     os.Getenv("AUTH_ADMIN_PASSWORD_HASH"),
			AnalystUsername:       getEnv("AUTH_ANALYST_USERNAME", "analyst"),
			AnalystPasswordHash:   os.Getenv("AUTH_ANALYST_PASSWORD_HASH"),
		},
		Scoring: ScoringConfig{
			Weights: map[domain.ProblemTag]float64{
				domain.TagTechIssue:        getEnvAsFloat("SCORING_WEIGHT_TECH_ISSUE", 0.2),
				domain.TagUnresolved:       getEnvAsFloat("SCORING_WEIGHT_UNRESOLVED", 0.3),
				domain.TagNegativeFeedback: getEnvAsFloat("SCORING_WEIGHT_NEGATIVE_FEEDBACK", 0.2),
				domain.TagChurnRisk:        getEnvAsFloat("SCORING_WEIGHT_CHURN_RISK", 0.3),
			},
			ThresholdLower: getEnvAsFloat("SCORING_THRESHOLD_LOWER", 5),
			ThresholdUpper: getEnvAsFloat("SCORING_THRESHOLD_UPPER", 30),
			OverlapTopN:    getEnvAsInt("OVERLAP_TOP_N", 5),
			OverlapLower:   getEnvAsFloat("OVERLAP_THRESHOLD_LOWER", 20),
			OverlapUpper:   getEnvAsFloat("OVERLAP_THRESHOLD_UPPER", 60),
		},
		Refresh: RefreshConfig{
			IntervalSeconds: getEnvAsInt("SNAPSHOT_REFRESH_INTERVAL_SECONDS", 300),
		},
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

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
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
