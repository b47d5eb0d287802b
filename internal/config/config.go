package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores the back-office settings.
type Config struct {
	Port      int
	LogFormat string
	API       API
	Session   Session
	Redis     Redis
	DB        DB
	Kafka     Kafka
	RateLimit RateLimit
	UI        UI
	CORS      []string
	Pprof     Pprof
}

// API configures the Ruru REST client.
type API struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Session configures the admin session cookie and store.
type Session struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Secret     string
	CSRFKey    string
}

// Redis configures the session store. Empty Addr selects the in-memory store.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// DB configures the audit log database.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a postgres connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Kafka configures the audit event stream. No brokers disables it.
type Kafka struct {
	Brokers    []string
	AuditTopic string
	GroupID    string
}

// Enabled reports whether audit events go to Kafka.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && strings.TrimSpace(k.AuditTopic) != ""
}

// RateLimit configures the login token bucket.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// UI configures admin pages and public forms.
type UI struct {
	PageSize     int
	WorkspaceTTL time.Duration
	// PublicLimit is the per-IP number of public form submissions per minute.
	PublicLimit int
}

// Pprof configures the optional profiling listener.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.API.BaseURL, "api-base-url", cfg.API.BaseURL, "Ruru REST API base URL")
	pflag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log output: json or console")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads .env and the environment without touching command-line
// flags. Used by tools that own their flag set.
func FromEnv() (*Config, error) {
	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		LogFormat: "json",
		API:       defaultAPI,
		Session:   defaultSession,
		DB:        defaultDB,
		Kafka:     defaultKafka,
		RateLimit: defaultRateLimit,
		UI:        defaultUI,
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	cfg.LogFormat = envStr("LOG_FORMAT", cfg.LogFormat)

	cfg.API.BaseURL = envStr("RURU_API_BASE_URL", cfg.API.BaseURL)
	if cfg.API.Timeout, err = envDuration("RURU_API_TIMEOUT", cfg.API.Timeout); err != nil {
		return nil, err
	}
	if cfg.API.MaxAttempts, err = envInt("RURU_API_MAX_ATTEMPTS", cfg.API.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.API.BaseDelay, err = envDuration("RURU_API_BASE_DELAY", cfg.API.BaseDelay); err != nil {
		return nil, err
	}
	if cfg.API.MaxDelay, err = envDuration("RURU_API_MAX_DELAY", cfg.API.MaxDelay); err != nil {
		return nil, err
	}

	cfg.Session.CookieName = envStr("SESSION_COOKIE", cfg.Session.CookieName)
	if cfg.Session.TTL, err = envDuration("SESSION_TTL", cfg.Session.TTL); err != nil {
		return nil, err
	}
	if cfg.Session.Secure, err = envBool("SESSION_SECURE", cfg.Session.Secure); err != nil {
		return nil, err
	}
	cfg.Session.Secret = envStr("SESSION_SECRET", "")
	cfg.Session.CSRFKey = envStr("CSRF_KEY", "")

	cfg.Redis.Addr = envStr("REDIS_ADDR", "")
	cfg.Redis.Password = envStr("REDIS_PASSWORD", "")
	if cfg.Redis.DB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	cfg.DB.Host = envStr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr("POSTGRES_PORT", cfg.DB.Port)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}
	cfg.DB.User = envStr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envStr("POSTGRES_DB", cfg.DB.Name)

	cfg.Kafka.Brokers = envList("KAFKA_BROKERS")
	cfg.Kafka.AuditTopic = envStr("KAFKA_AUDIT_TOPIC", cfg.Kafka.AuditTopic)
	cfg.Kafka.GroupID = envStr("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.TTL, err = envDuration("RATE_LIMIT_TTL", cfg.RateLimit.TTL); err != nil {
		return nil, err
	}
	if cfg.RateLimit.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets); err != nil {
		return nil, err
	}

	if cfg.UI.PageSize, err = envInt("PAGE_SIZE", cfg.UI.PageSize); err != nil {
		return nil, err
	}
	if cfg.UI.WorkspaceTTL, err = envDuration("WORKSPACE_TTL", cfg.UI.WorkspaceTTL); err != nil {
		return nil, err
	}
	if cfg.UI.PublicLimit, err = envInt("PUBLIC_RATE_LIMIT", cfg.UI.PublicLimit); err != nil {
		return nil, err
	}

	cfg.CORS = envList("CORS_ORIGINS")
	cfg.Pprof = Pprof{
		Addr: envStr("PPROF_ADDR", ""),
		User: envStr("PPROF_USER", ""),
		Pass: envStr("PPROF_PASS", ""),
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid RURU_API_BASE_URL %q", c.API.BaseURL)
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("invalid RURU_API_MAX_ATTEMPTS: %d", c.API.MaxAttempts)
	}
	if c.UI.PageSize < 1 || c.UI.PageSize > 100 {
		return fmt.Errorf("invalid PAGE_SIZE: %d", c.UI.PageSize)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func envList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
