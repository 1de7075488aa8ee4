package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DefaultJWTSecret is the development signing key. Production refuses to
// start with it.
const DefaultJWTSecret = "change-me-in-production"

// DefaultPincodes are the postal codes served when nothing else is configured.
var DefaultPincodes = []string{"144411", "144401", "144402"}

// Config holds process configuration. It is resolved once at start-up and
// passed by value; nothing mutates it afterwards.
type Config struct {
	Addr   string `yaml:"addr"`
	AppEnv string `yaml:"app_env"`

	StoreDriver string `yaml:"store_driver"`
	MongoURL    string `yaml:"mongo_url"`
	DBName      string `yaml:"db_name"`
	DatabaseURL string `yaml:"database_url"`

	AdminPIN           string        `yaml:"admin_pin"`
	AdminAuthRequired  bool          `yaml:"admin_auth_required"`
	JWTSecret          string        `yaml:"jwt_secret"`
	SessionTTL         time.Duration `yaml:"admin_session_ttl"`
	AdminMaxAttempts   int           `yaml:"admin_max_attempts"`
	AdminAttemptWindow time.Duration `yaml:"admin_attempt_window"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	ServiceablePincodes []string `yaml:"serviceable_pincodes"`
	CORSOrigins         string   `yaml:"cors_origins"`
	OrderLogPath        string   `yaml:"order_log_path"`
	BodyLimitMB         int      `yaml:"body_limit_mb"`
}

func defaults() Config {
	return Config{
		Addr:                ":8001",
		AppEnv:              "local",
		StoreDriver:         DriverMongo,
		MongoURL:            "mongodb://localhost:27017",
		DBName:              "meat_shop",
		AdminPIN:            "4242",
		AdminAuthRequired:   true, // ADMIN_AUTH_REQUIRED=false for clients that never send Authorization
		JWTSecret:           DefaultJWTSecret,
		SessionTTL:          12 * time.Hour,
		AdminMaxAttempts:    5,
		AdminAttemptWindow:  15 * time.Minute,
		ServiceablePincodes: append([]string(nil), DefaultPincodes...),
		CORSOrigins:         "*",
		OrderLogPath:        "logs/orders.txt",
		BodyLimitMB:         50,
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then the process environment. Later sources win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setString(&c.Addr, "ADDR")
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.StoreDriver, "STORE_DRIVER")
	setString(&c.MongoURL, "MONGO_URL")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.AdminPIN, "ADMIN_PIN")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.CORSOrigins, "CORS_ORIGINS")
	setString(&c.OrderLogPath, "ORDER_LOG_PATH")

	if v := os.Getenv("SERVICEABLE_PINCODES"); v != "" {
		c.ServiceablePincodes = splitList(v)
	}

	var errs []error
	if v := os.Getenv("ADMIN_AUTH_REQUIRED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ADMIN_AUTH_REQUIRED: %w", err))
		}
		c.AdminAuthRequired = b
	}
	errs = append(errs,
		setDuration(&c.SessionTTL, "ADMIN_SESSION_TTL"),
		setDuration(&c.AdminAttemptWindow, "ADMIN_ATTEMPT_WINDOW"),
		setInt(&c.AdminMaxAttempts, "ADMIN_MAX_ATTEMPTS"),
		setInt(&c.BodyLimitMB, "BODY_LIMIT_MB"),
	)
	return errors.Join(errs...)
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURL == "" || c.DBName == "" {
			return errors.New("mongo_url and db_name are required for the mongo driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if strings.TrimSpace(c.AdminPIN) == "" {
		return errors.New("admin_pin is required")
	}
	if len(c.ServiceablePincodes) == 0 {
		return errors.New("at least one serviceable pincode is required")
	}
	if c.AdminAuthRequired && c.JWTSecret == "" {
		return errors.New("jwt_secret is required when admin auth is enabled")
	}
	if c.AdminAuthRequired && c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("jwt_secret must be changed from the default in production")
	}
	if c.SessionTTL <= 0 {
		return errors.New("admin_session_ttl must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs with production defaults.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	}
	return false
}

// CORSOriginList returns the configured origins, "*" meaning any.
func (c Config) CORSOriginList() []string {
	return splitList(c.CORSOrigins)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
