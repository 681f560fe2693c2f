package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Sheet struct {
		SpreadsheetID   string `yaml:"spreadsheet_id" json:"spreadsheet_id"`
		Worksheet       string `yaml:"worksheet" json:"worksheet"`
		CredentialsFile string `yaml:"credentials_file" json:"credentials_file"`
		HeaderRows      int    `yaml:"header_rows" json:"header_rows"`
	} `yaml:"sheet" json:"sheet"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds"`
	} `yaml:"cache" json:"cache"`

	Polling struct {
		RefreshSeconds int `yaml:"refresh_seconds" json:"refresh_seconds"`
	} `yaml:"polling" json:"polling"`

	Policy struct {
		StaleDays          int      `yaml:"stale_days" json:"stale_days"`
		FollowUpOffsetDays int      `yaml:"followup_offset_days" json:"followup_offset_days"`
		HotLeadsLimit      int      `yaml:"hot_leads_limit" json:"hot_leads_limit"`
		Industries         []string `yaml:"industries" json:"industries"`
		NewStatuses        []string `yaml:"new_statuses" json:"new_statuses"`
	} `yaml:"policy" json:"policy"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Polling.RefreshSeconds) * time.Second
}

// Default is the built-in configuration used when no config file exists
// yet. Spreadsheet ID and credentials stay empty on purpose; the user
// supplies those out-of-band.
func Default() Config {
	var cfg Config
	cfg.App.Port = 39117
	cfg.Sheet.Worksheet = "Opportunities"
	cfg.Sheet.CredentialsFile = "service_account.json"
	cfg.Sheet.HeaderRows = 1
	cfg.Cache.TTLSeconds = 60
	cfg.Polling.RefreshSeconds = 300
	cfg.Policy.StaleDays = 5
	cfg.Policy.FollowUpOffsetDays = 7
	cfg.Policy.HotLeadsLimit = 3
	cfg.Policy.Industries = []string{"HealthTech", "MedTech", "FinTech", "SaaS", "Other"}
	cfg.Policy.NewStatuses = []string{"To Research", "Researching", "Applied"}
	return cfg
}
