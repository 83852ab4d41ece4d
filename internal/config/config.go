// Package config loads the service's runtime configuration, following the
// teacher's config.yaml + environment-variable-override pattern.
package config

import (
	"os"
	"strconv"

	"github.com/tuumbleweed/xerr"
	"gopkg.in/yaml.v3"
)

// Config is the service's runtime configuration.
type Config struct {
	Port          int  `yaml:"port"`
	Host          string `yaml:"host"`
	RepairOCRText bool `yaml:"repair_ocr_text"`
}

// Load reads path as YAML and applies PORT/HOST/REPAIR_OCR_TEXT
// environment variable overrides, the teacher's cmd/server/main.go
// loadConfig pattern.
func Load(path string) (*Config, *xerr.Error) {
	cfg := Config{Port: 8080, Host: "0.0.0.0"}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, xerr.NewError(err, "read config file", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, xerr.NewError(err, "parse config yaml", path)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}
	if repair := os.Getenv("REPAIR_OCR_TEXT"); repair != "" {
		if b, err := strconv.ParseBool(repair); err == nil {
			cfg.RepairOCRText = b
		}
	}
}
