package config

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Auth           AuthConfig           `mapstructure:"auth"`
	GoogleCalendar GoogleCalendarConfig `mapstructure:"google_calendar"`
	Organization   OrganizationConfig   `mapstructure:"organization"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	BaseURL  string `mapstructure:"base_url"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig describes how bearer tokens from the hosted auth provider are verified.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type GoogleCalendarConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	ServiceAccountEmail string `mapstructure:"service_account_email"`
	PrivateKey          string `mapstructure:"private_key"`
	CalendarID          string `mapstructure:"calendar_id"`
	TimeZone            string `mapstructure:"time_zone"`
	TokenURL            string `mapstructure:"token_url"`
	APIEndpoint         string `mapstructure:"api_endpoint"`
	Scope               string `mapstructure:"scope"`
}

type OrganizationConfig struct {
	Name         string `mapstructure:"name"`
	Domain       string `mapstructure:"domain"`
	TimeZone     string `mapstructure:"time_zone"`
	NoReplyEmail string `mapstructure:"no_reply_email"`
}

var (
	mu       sync.RWMutex
	instance *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.base_url", "http://localhost:7070")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")

	v.SetDefault("google_calendar.enabled", false)
	v.SetDefault("google_calendar.service_account_email", "")
	v.SetDefault("google_calendar.private_key", "")
	v.SetDefault("google_calendar.calendar_id", "")
	v.SetDefault("google_calendar.time_zone", "America/New_York")
	v.SetDefault("google_calendar.token_url", "https://oauth2.googleapis.com/token")
	v.SetDefault("google_calendar.api_endpoint", "https://www.googleapis.com/calendar/v3/")
	v.SetDefault("google_calendar.scope", "https://www.googleapis.com/auth/calendar.events")

	v.SetDefault("organization.name", "Cool Spring VFD")
	v.SetDefault("organization.domain", "coolspringsvfd.org")
	v.SetDefault("organization.time_zone", "America/New_York")
	v.SetDefault("organization.no_reply_email", "no-reply@coolspringsvfd.org")
}

// Load reads .env (if present), an optional config file and the environment.
// Environment keys are the upper-cased config keys with dots replaced by
// underscores, e.g. GOOGLE_CALENDAR_PRIVATE_KEY.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.GoogleCalendar.PrivateKey = NormalizePrivateKey(cfg.GoogleCalendar.PrivateKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

// Get returns the loaded config and panics when Load has not run.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// NormalizePrivateKey turns literal "\n" sequences, as found in single-line
// environment variables, into real newlines.
func NormalizePrivateKey(key string) string {
	return strings.TrimSpace(strings.ReplaceAll(key, `\n`, "\n"))
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive"))
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database host, user and name are required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("auth.jwt_secret is required"))
	}
	if _, err := time.LoadLocation(c.Organization.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("organization.time_zone: %w", err))
	}
	if c.GoogleCalendar.Enabled {
		errs = append(errs, c.GoogleCalendar.validate()...)
	}

	return stderrors.Join(errs...)
}

func (g GoogleCalendarConfig) validate() []error {
	var errs []error
	if g.ServiceAccountEmail == "" {
		errs = append(errs, fmt.Errorf("google_calendar.service_account_email is required"))
	}
	if g.CalendarID == "" {
		errs = append(errs, fmt.Errorf("google_calendar.calendar_id is required"))
	}
	if g.TokenURL == "" || g.APIEndpoint == "" {
		errs = append(errs, fmt.Errorf("google_calendar token_url and api_endpoint are required"))
	}
	if _, err := time.LoadLocation(g.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("google_calendar.time_zone: %w", err))
	}
	if err := checkPrivateKey(g.PrivateKey); err != nil {
		errs = append(errs, fmt.Errorf("google_calendar.private_key: %w", err))
	}
	return errs
}

func checkPrivateKey(key string) error {
	if key == "" {
		return fmt.Errorf("is required")
	}
	_, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key))
	return err
}
