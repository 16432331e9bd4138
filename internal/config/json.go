package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userkeeper/internal/flagx"
)

// JsonConfig is the DTO for the JSON file. Pointer fields tell "absent"
// apart from zero values, so only keys present in the file override.
type JsonConfig struct {
	ServiceName        *string  `json:"service_name"`
	DatabasePath       *string  `json:"database_path"`
	KeyringBackends    []string `json:"keyring_backends"`
	KeyringFileDir     *string  `json:"keyring_file_dir"`
	ProjectIdentifier  *string  `json:"project_identifier"`
	ShareAcrossDevices *bool    `json:"share_across_devices"`
	LogLevel           *string  `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config, if any.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServiceName, jc.ServiceName)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.KeyringFileDir, jc.KeyringFileDir)
	setString(&cfg.ProjectIdentifier, jc.ProjectIdentifier)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.KeyringBackends != nil {
		cfg.KeyringBackends = jc.KeyringBackends
	}
	if jc.ShareAcrossDevices != nil {
		cfg.ShareAcrossDevices = *jc.ShareAcrossDevices
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
