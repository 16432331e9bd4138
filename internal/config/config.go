package config

// Config holds runtime settings for the userkeeper CLI.
type Config struct {
	ServiceName        string   `env:"USERKEEPER_SERVICE_NAME"`
	DatabasePath       string   `env:"USERKEEPER_DATABASE_PATH"`
	KeyringBackends    []string `env:"USERKEEPER_KEYRING_BACKENDS"`
	KeyringFileDir     string   `env:"USERKEEPER_KEYRING_FILE_DIR"`
	ProjectIdentifier  string   `env:"USERKEEPER_PROJECT_IDENTIFIER"`
	ShareAcrossDevices bool     `env:"USERKEEPER_SHARE_ACROSS_DEVICES"`
	LogLevel           string   `env:"USERKEEPER_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServiceName = "userkeeper"
	c.DatabasePath = "preferences.db"
	c.KeyringBackends = nil
	c.KeyringFileDir = "~/.userkeeper/keyring"
	c.ProjectIdentifier = "default"
	c.ShareAcrossDevices = false
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from defaults, the JSON file, the
// environment and flags, in that order. It panics on malformed input.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
