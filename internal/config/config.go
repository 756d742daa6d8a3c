// Package config handles configuration for the dashboard server,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import "time"

// DatabaseConfig holds connection parameters for the relational backends.
// URL wins over the host/port component form when both are set. SQLitePath
// is where the embedded fallback engine keeps its file.
type DatabaseConfig struct {
	URL            string
	Host           string
	Port           int
	Name           string
	User           string
	Password       string
	ConnectTimeout time.Duration
	SQLitePath     string
}

// FeatureFlags toggles optional dashboard areas.
type FeatureFlags struct {
	CostManagement     bool
	PerformanceMonitor bool
	Automation         bool
}

// Config holds runtime settings for the dashboard server.
//
// Fields:
//   - Addr: bind address for the HTTP API.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the default in production.
//   - SessionTTL: absolute lifetime of issued session tokens.
//   - BootstrapDemo: create the demo admin account on startup. The demo
//     credentials are published, so leave this off anywhere that matters.
//   - Database: backend connection parameters.
type Config struct {
	Addr          string
	SecretKey     string
	SessionTTL    time.Duration
	BootstrapDemo bool
	Debug         bool
	Database      DatabaseConfig
	Features      FeatureFlags
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.SecretKey = "dev-secret-key"
	c.SessionTTL = 12 * time.Hour
	c.BootstrapDemo = true
	c.Debug = false
	c.Database = DatabaseConfig{
		Host:           "localhost",
		Port:           5432,
		Name:           "azure_support",
		User:           "postgres",
		Password:       "",
		ConnectTimeout: 5 * time.Second,
		SQLitePath:     "data/azure_support.db",
	}
	c.Features = FeatureFlags{
		CostManagement:     true,
		PerformanceMonitor: true,
		Automation:         true,
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
