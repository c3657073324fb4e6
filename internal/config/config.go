package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Log    LogConfig
	CORS   CORSConfig
	Report ReportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	URL              string        `mapstructure:"url"`
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	Name             string        `mapstructure:"name"`
	SSLMode          string        `mapstructure:"sslmode"`
	MaxOpen          int           `mapstructure:"max_open"`
	MaxIdle          int           `mapstructure:"max_idle"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
}

// DSN returns the PostgreSQL connection string. An explicit URL wins over the
// individual fields.
func (d *DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds token signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ReportConfig holds reporting settings.
type ReportConfig struct {
	// DefaultTenant is used by the dashboard when a request names no empresa.
	DefaultTenant string `mapstructure:"default_tenant"`
	// Timezone decides which calendar day counts as "today".
	Timezone string `mapstructure:"timezone"`
}

// Location resolves Timezone, falling back to UTC when it is empty or unknown.
func (r *ReportConfig) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables with the ENTREGAS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENTREGAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "entregas")
	v.SetDefault("db.password", "entregas_secret")
	v.SetDefault("db.name", "entregas_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.statement_timeout", "10s")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "12h")
	v.SetDefault("jwt.issuer", "entregas")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Report defaults
	v.SetDefault("report.default_tenant", "MatheusGas")
	v.SetDefault("report.timezone", "America/Sao_Paulo")

	envBindings := map[string]string{
		"server.port":           "ENTREGAS_SERVER_PORT",
		"server.read_timeout":   "ENTREGAS_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "ENTREGAS_SERVER_WRITE_TIMEOUT",
		"server.environment":    "ENTREGAS_SERVER_ENVIRONMENT",
		"db.host":               "ENTREGAS_DB_HOST",
		"db.port":               "ENTREGAS_DB_PORT",
		"db.user":               "ENTREGAS_DB_USER",
		"db.password":           "ENTREGAS_DB_PASSWORD",
		"db.name":               "ENTREGAS_DB_NAME",
		"db.sslmode":            "ENTREGAS_DB_SSLMODE",
		"db.max_open":           "ENTREGAS_DB_MAX_OPEN",
		"db.max_idle":           "ENTREGAS_DB_MAX_IDLE",
		"db.statement_timeout":  "ENTREGAS_DB_STATEMENT_TIMEOUT",
		"jwt.secret":            "ENTREGAS_JWT_SECRET",
		"jwt.access_expiry":     "ENTREGAS_JWT_ACCESS_EXPIRY",
		"jwt.issuer":            "ENTREGAS_JWT_ISSUER",
		"log.level":             "ENTREGAS_LOG_LEVEL",
		"log.format":            "ENTREGAS_LOG_FORMAT",
		"cors.allowed_origins":  "ENTREGAS_CORS_ALLOWED_ORIGINS",
		"report.default_tenant": "ENTREGAS_REPORT_DEFAULT_TENANT",
		"report.timezone":       "ENTREGAS_REPORT_TIMEZONE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	// Hosting platforms hand out the connection string as DATABASE_URL.
	_ = v.BindEnv("db.url", "ENTREGAS_DB_URL", "DATABASE_URL")

	cfg := &Config{}

	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ENTREGAS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		URL:              v.GetString("db.url"),
		Host:             v.GetString("db.host"),
		Port:             v.GetInt("db.port"),
		User:             v.GetString("db.user"),
		Password:         v.GetString("db.password"),
		Name:             v.GetString("db.name"),
		SSLMode:          v.GetString("db.sslmode"),
		MaxOpen:          v.GetInt("db.max_open"),
		MaxIdle:          v.GetInt("db.max_idle"),
		StatementTimeout: v.GetDuration("db.statement_timeout"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Report = ReportConfig{
		DefaultTenant: v.GetString("report.default_tenant"),
		Timezone:      v.GetString("report.timezone"),
	}
	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", cfg.Report.Timezone, err)
	}

	return cfg, nil
}
