package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DB      DBConfig
	Log     LogConfig
	Session SessionConfig
	Input   InputConfig
}

type DBConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	TimeZone string `yaml:"timezone"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type SessionConfig struct {
	// Secret signs session tokens. Empty means a random per-process key.
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"-"`
}

type InputConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// fileConfig mirrors the optional YAML file.
type fileConfig struct {
	Database DBConfig  `yaml:"database"`
	Log      LogConfig `yaml:"log"`
	Session  struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"session"`
	Input InputConfig `yaml:"input"`
}

func defaults() Config {
	return Config{
		DB: DBConfig{
			Driver:   DriverPostgres,
			Host:     "localhost",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			File:       "./logs/pizzastore.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 7,
			MaxAgeDays: 7,
		},
		Session: SessionConfig{TTL: 30 * time.Minute},
		Input:   InputConfig{MaxAttempts: 5},
	}
}

// Load builds the configuration from defaults, the optional YAML file,
// .env and the environment, then the positional arguments.
func Load(dbname, port, user string) (Config, error) {
	cfg := defaults()

	path := getEnv("PIZZASTORE_CONFIG", "config.yaml")
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}

	cfg.DB.Name = dbname
	cfg.DB.Port = port
	cfg.DB.User = user

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.DB.Driver, fc.Database.Driver)
	setString(&c.DB.Host, fc.Database.Host)
	setString(&c.DB.Password, fc.Database.Password)
	setString(&c.DB.SSLMode, fc.Database.SSLMode)
	setString(&c.DB.TimeZone, fc.Database.TimeZone)
	setString(&c.Log.File, fc.Log.File)
	setString(&c.Log.Level, fc.Log.Level)
	setInt(&c.Log.MaxSizeMB, fc.Log.MaxSizeMB)
	setInt(&c.Log.MaxBackups, fc.Log.MaxBackups)
	setInt(&c.Log.MaxAgeDays, fc.Log.MaxAgeDays)
	setString(&c.Session.Secret, fc.Session.Secret)
	if fc.Session.TTLMinutes > 0 {
		c.Session.TTL = time.Duration(fc.Session.TTLMinutes) * time.Minute
	}
	setInt(&c.Input.MaxAttempts, fc.Input.MaxAttempts)
	return nil
}

func (c *Config) mergeEnv() error {
	c.DB.Driver = getEnv("DB_DRIVER", c.DB.Driver)
	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.SSLMode = getEnv("DB_SSLMODE", c.DB.SSLMode)
	c.DB.TimeZone = getEnv("DB_TIMEZONE", c.DB.TimeZone)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Session.Secret = getEnv("SESSION_SECRET", c.Session.Secret)

	ttl, err := getEnvAsInt("SESSION_TTL_MINUTES", int(c.Session.TTL/time.Minute))
	if err != nil {
		return err
	}
	c.Session.TTL = time.Duration(ttl) * time.Minute

	c.Input.MaxAttempts, err = getEnvAsInt("INPUT_MAX_ATTEMPTS", c.Input.MaxAttempts)
	return err
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DB.Driver, DriverPostgres, DriverSQLite)
	}
	if c.DB.Name == "" {
		return errors.New("database name is required")
	}
	if c.DB.Driver == DriverPostgres {
		port, err := strconv.Atoi(c.DB.Port)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("invalid port %q", c.DB.Port)
		}
		if c.DB.User == "" {
			return errors.New("database user is required")
		}
	}
	if c.Session.TTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	if c.Input.MaxAttempts < 1 {
		return errors.New("input max attempts must be at least 1")
	}
	return nil
}

// DSN returns the PostgreSQL data source name. Every value is single-quoted
// so spaces and quotes in it survive parsing.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dsnQuote(d.Host), dsnQuote(d.User), dsnQuote(d.Password), dsnQuote(d.Name),
		dsnQuote(d.Port), dsnQuote(d.SSLMode), dsnQuote(d.TimeZone),
	)
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func dsnQuote(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// Redacted is the connection target safe to print or log.
func (d DBConfig) Redacted() string {
	if d.Driver == DriverSQLite {
		return "sqlite://" + d.Name
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s", d.User, d.Host, d.Port, d.Name)
}

// Dialector picks the gorm driver for the configured database.
func (d DBConfig) Dialector() (gorm.Dialector, error) {
	switch d.Driver {
	case DriverPostgres:
		return postgres.Open(d.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(d.Name), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", d.Driver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
