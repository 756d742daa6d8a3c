package config

import (
	"os"
	"strconv"
)

// parseEnv overlays Config with values from environment variables. The
// database keys follow the standard libpq names (PGHOST, PGPORT, ...) plus
// DATABASE_URL for the single connection-string form.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.Database.URL = v
	}
	if v, ok := os.LookupEnv("PGHOST"); ok {
		config.Database.Host = v
	}
	if v, ok := os.LookupEnv("PGPORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			config.Database.Port = port
		}
	}
	if v, ok := os.LookupEnv("PGDATABASE"); ok {
		config.Database.Name = v
	}
	if v, ok := os.LookupEnv("PGUSER"); ok {
		config.Database.User = v
	}
	if v, ok := os.LookupEnv("PGPASSWORD"); ok {
		config.Database.Password = v
	}
	if v, ok := os.LookupEnv("SQLITE_PATH"); ok {
		config.Database.SQLitePath = v
	}

	if v, ok := os.LookupEnv("PORT"); ok {
		config.Addr = ":" + v
	}
	if v, ok := os.LookupEnv("SESSION_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("DEBUG"); ok {
		config.Debug = parseBool(v, config.Debug)
	}
	if v, ok := os.LookupEnv("BOOTSTRAP_DEMO"); ok {
		config.BootstrapDemo = parseBool(v, config.BootstrapDemo)
	}

	if v, ok := os.LookupEnv("ENABLE_COST_MANAGEMENT"); ok {
		config.Features.CostManagement = parseBool(v, config.Features.CostManagement)
	}
	if v, ok := os.LookupEnv("ENABLE_PERFORMANCE_MONITOR"); ok {
		config.Features.PerformanceMonitor = parseBool(v, config.Features.PerformanceMonitor)
	}
	if v, ok := os.LookupEnv("ENABLE_AUTOMATION"); ok {
		config.Features.Automation = parseBool(v, config.Features.Automation)
	}
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
