// Load envs from .env
// Load YAML config
// Provide default values

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Output paths
	OutputFile   string `yaml:"output_file"`
	ProfilesPath string `yaml:"profiles_path"`
	LogFile      string `yaml:"log_file"`

	//Browser
	Headless bool `yaml:"headless"`

	//Optional collaborators
	SupabaseDBURL  string `yaml:"supabase_db_url"`
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	//LinkedIn session bootstrap
	LinkedInUser      string `yaml:"-"`
	LinkedInPass      string `yaml:"-"`
	LinkedInStatePath string `yaml:"linkedin_state_path"`
}

// Load reads configs/config.yaml if present and overlays env vars.
// A missing config file is fine; everything has a default.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{Headless: true}

	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		//malformed yaml falls through to defaults rather than aborting
		_ = yaml.Unmarshal(data, cfg)
	}

	//Override with env vars
	if v := os.Getenv("SUPABASE_DB_URL"); v != "" {
		cfg.SupabaseDBURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = id
		}
	}
	cfg.LinkedInUser = os.Getenv("LINKEDIN_USER")
	cfg.LinkedInPass = os.Getenv("LINKEDIN_PASS")

	//Set default values if not set
	if cfg.OutputFile == "" {
		cfg.OutputFile = "multi_site_jobs.xlsx"
	}
	if cfg.ProfilesPath == "" {
		cfg.ProfilesPath = "site_profiles.json"
	}
	if cfg.LinkedInStatePath == "" {
		cfg.LinkedInStatePath = "linkedin_state.json"
	}

	return cfg
}
