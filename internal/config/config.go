package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"clickdeck/pkg/config"
)

type ClickUpConfig struct {
	BaseURL       string `yaml:"base_url"`
	Token         string `yaml:"token"`
	DefaultTeamID string `yaml:"default_team_id"`
}

type Config struct {
	DB      config.DBConfig     `yaml:"db"`
	JWT     config.JWTConfig    `yaml:"jwt"`
	Server  config.ServerConfig `yaml:"server"`
	ClickUp ClickUpConfig       `yaml:"clickup"`
}

// Load reads config.yaml and applies environment overrides. The result
// is never mutated after startup; required-setting checks belong to the
// entrypoints, since the seeder needs no ClickUp credential.
func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideServerFromEnv(&cfg.Server)
	if url := os.Getenv("CLICKUP_BASE_URL"); url != "" {
		cfg.ClickUp.BaseURL = url
	}
	if token := os.Getenv("CLICKUP_AUTH_TOKEN"); token != "" {
		cfg.ClickUp.Token = token
	}
	if teamID := os.Getenv("CLICKUP_DEFAULT_TEAM_ID"); teamID != "" {
		cfg.ClickUp.DefaultTeamID = teamID
	}

	if cfg.ClickUp.BaseURL == "" {
		cfg.ClickUp.BaseURL = "https://api.clickup.com/api/v2"
	}

	return &cfg
}
