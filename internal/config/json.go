package config

import (
	"encoding/json"
	"os"

	"github.com/webdevreplits/azure-01/internal/flagx"
	"github.com/webdevreplits/azure-01/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its fields are copied into the
// runtime Config.
type JsonConfig struct {
	Addr          string `json:"addr"`
	SecretKey     string `json:"secret_key"`
	SessionTTL    *timex.Duration `json:"session_ttl"`
	BootstrapDemo *bool           `json:"bootstrap_demo"`
	Debug         *bool           `json:"debug"`

	Database struct {
		URL            string          `json:"url"`
		Host           string          `json:"host"`
		Port           int             `json:"port"`
		Name           string          `json:"database"`
		User           string          `json:"username"`
		Password       string          `json:"password"`
		ConnectTimeout *timex.Duration `json:"connect_timeout"`
		SQLitePath     string          `json:"sqlite_path"`
	} `json:"database"`

	Features struct {
		CostManagement     *bool `json:"enable_cost_management"`
		PerformanceMonitor *bool `json:"enable_performance_monitor"`
		Automation         *bool `json:"enable_automation"`
	} `json:"features"`
}

// parseJson loads configuration values from an optional JSON file into the
// provided Config. The file path comes from the -c or -config flags; when
// neither is set, nothing is loaded. Unset fields keep their current values.
// An unreadable or invalid file panics: a config file that was explicitly
// pointed at must be usable.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.BootstrapDemo != nil {
		config.BootstrapDemo = *c.BootstrapDemo
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}

	if c.Database.URL != "" {
		config.Database.URL = c.Database.URL
	}
	if c.Database.Host != "" {
		config.Database.Host = c.Database.Host
	}
	if c.Database.Port != 0 {
		config.Database.Port = c.Database.Port
	}
	if c.Database.Name != "" {
		config.Database.Name = c.Database.Name
	}
	if c.Database.User != "" {
		config.Database.User = c.Database.User
	}
	if c.Database.Password != "" {
		config.Database.Password = c.Database.Password
	}
	if c.Database.ConnectTimeout != nil {
		config.Database.ConnectTimeout = c.Database.ConnectTimeout.Duration
	}
	if c.Database.SQLitePath != "" {
		config.Database.SQLitePath = c.Database.SQLitePath
	}

	if c.Features.CostManagement != nil {
		config.Features.CostManagement = *c.Features.CostManagement
	}
	if c.Features.PerformanceMonitor != nil {
		config.Features.PerformanceMonitor = *c.Features.PerformanceMonitor
	}
	if c.Features.Automation != nil {
		config.Features.Automation = *c.Features.Automation
	}
}
