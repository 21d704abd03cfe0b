package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Draft store backends.
const (
	DraftStoreMemory = "memory"
	DraftStoreRedis  = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	Directory    DirectoryConfig
	Workflow     WorkflowConfig
	Export       ExportConfig
	IDGen        IDGenConfig
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

// PostgresConfig holds DB connection values. An empty DSN keeps all state in memory.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
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

// AuthConfig defines token parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// DirectoryConfig controls how employee addresses are derived.
type DirectoryConfig struct {
	EmailDomain string
}

// WorkflowConfig controls form draft storage.
type WorkflowConfig struct {
	DraftStore          string
	DraftTTLMinutes     int
	DraftCleanupMinutes int
}

// ExportConfig controls PDF rendering.
type ExportConfig struct {
	HeaderTitle string
	FontPath    string
}

// IDGenConfig configures the submission id generator.
type IDGenConfig struct {
	MachineID uint16
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	machineID, err := strconv.ParseUint(getEnv("IDGEN_MACHINE_ID", "1"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid IDGEN_MACHINE_ID: %w", err)
	}

	draftStore := strings.ToLower(getEnv("WORKFLOW_DRAFT_STORE", DraftStoreMemory))
	if draftStore != DraftStoreMemory && draftStore != DraftStoreRedis {
		return nil, fmt.Errorf("invalid WORKFLOW_DRAFT_STORE %q: want %s or %s", draftStore, DraftStoreMemory, DraftStoreRedis)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ack-hub"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
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
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 480),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@domain.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Directory: DirectoryConfig{
			EmailDomain: getEnv("DIRECTORY_EMAIL_DOMAIN", "domain.com"),
		},
		Workflow: WorkflowConfig{
			DraftStore:          draftStore,
			DraftTTLMinutes:     getEnvAsInt("WORKFLOW_DRAFT_TTL_MINUTES", 30),
			DraftCleanupMinutes: getEnvAsInt("WORKFLOW_DRAFT_CLEANUP_MINUTES", 10),
		},
		Export: ExportConfig{
			HeaderTitle: getEnv("EXPORT_HEADER_TITLE", "YSOD Digital Acknowledgment Form Hub"),
			FontPath:    os.Getenv("EXPORT_FONT_PATH"),
		},
		IDGen: IDGenConfig{
			MachineID: uint16(machineID),
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

// Enabled reports whether a database is configured.
func (p PostgresConfig) Enabled() bool {
	return strings.TrimSpace(p.DSN) != ""
}

// DraftTTL returns how long an untouched form draft survives.
func (w WorkflowConfig) DraftTTL() time.Duration {
	if w.DraftTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(w.DraftTTLMinutes) * time.Minute
}

// CleanupInterval returns the local draft cache janitor interval.
func (w WorkflowConfig) CleanupInterval() time.Duration {
	if w.DraftCleanupMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(w.DraftCleanupMinutes) * time.Minute
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
