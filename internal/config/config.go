package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const placeholderSecret = "replace_with_a_long_random_secret"

// Config maps 1:1 to environment variables; an optional .env file in the
// working directory fills anything the environment leaves unset.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	MySQLHost   string `mapstructure:"MYSQL_HOST"`
	MySQLPort   string `mapstructure:"MYSQL_PORT"`
	MySQLDB     string `mapstructure:"MYSQL_DB"`
	MySQLUser   string `mapstructure:"MYSQL_USER"`
	MySQLPass   string `mapstructure:"MYSQL_PASS"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	IdempTTLSecs int `mapstructure:"IDEMPOTENCY_TTL_SECONDS"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`
	CORSOrigin  string `mapstructure:"CORS_ORIGIN"`

	LockTimeoutSecs     int `mapstructure:"LOCK_TIMEOUT_SECONDS"`
	ReviewRetryAttempts int `mapstructure:"REVIEW_RETRY_ATTEMPTS"`

	DefaultAdminPassword string `mapstructure:"DEFAULT_ADMIN_PASSWORD"`
	DefaultStaffPassword string `mapstructure:"DEFAULT_STAFF_PASSWORD"`
	SeedAdminEmail       string `mapstructure:"SEED_ADMIN_EMAIL"`
	SeedAdminName        string `mapstructure:"SEED_ADMIN_NAME"`
	SeedDepartment       string `mapstructure:"SEED_DEPARTMENT"`
}

var defaults = map[string]any{
	"APP_PORT":                "8080",
	"APP_ENV":                 "development",
	"LOG_LEVEL":               "info",
	"DB_DRIVER":               "mysql",
	"MYSQL_HOST":              "mysql",
	"MYSQL_PORT":              "3306",
	"MYSQL_DB":                "labinventory",
	"MYSQL_USER":              "labinventory",
	"MYSQL_PASS":              "labinventory",
	"REDIS_ADDR":              "redis:6379",
	"REDIS_DB":                0,
	"IDEMPOTENCY_TTL_SECONDS": 300,
	"JWT_TTL_HOURS":           8,
	"CORS_ORIGIN":             "http://127.0.0.1:5500,http://localhost:5500",
	"LOCK_TIMEOUT_SECONDS":    5,
	"REVIEW_RETRY_ATTEMPTS":   3,
	"DEFAULT_ADMIN_PASSWORD":  "adminset@lab01",
	"DEFAULT_STAFF_PASSWORD":  "staffset@lab01",
	"SEED_ADMIN_NAME":         "Lab Administrator",
	"SEED_DEPARTMENT":         "General",
}

// Load reads the environment plus an optional .env in dir.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	// keys without a default must still be bound for AutomaticEnv to reach Unmarshal
	for _, k := range []string{"DATABASE_URL", "REDIS_PASSWORD", "JWT_SECRET", "SEED_ADMIN_EMAIL"} {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.DatabaseURL == "" {
			if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
				return errors.New("missing MySQL config (DATABASE_URL or MYSQL_HOST/PORT/DB/USER)")
			}
			if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
				return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
			}
		}
	case "postgres", "sqlite":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for DB_DRIVER=%s", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" || c.JWTSecret == placeholderSecret {
		return errors.New("JWT_SECRET must be set to a real secret")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.JWTTTLHours <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}
	if c.ReviewRetryAttempts < 1 {
		return errors.New("REVIEW_RETRY_ATTEMPTS must be at least 1")
	}
	if len(c.DefaultAdminPassword) < 8 || len(c.DefaultStaffPassword) < 8 {
		return errors.New("default passwords must be at least 8 characters")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

// DSN returns DATABASE_URL when set, otherwise a MySQL DSN assembled from parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) JWTTTL() time.Duration { return time.Duration(c.JWTTTLHours) * time.Hour }

func (c *Config) LockTimeout() time.Duration { return time.Duration(c.LockTimeoutSecs) * time.Second }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

// AllowedOrigins splits CORS_ORIGIN on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
