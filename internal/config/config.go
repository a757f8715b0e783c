package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	envOnce    sync.Once
	configOnce sync.Once

	globalConfig *Config
)

// LoadEnv loads environment variables from a .env file if one exists, in the
// working directory or one level up.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			parent := filepath.Join("..", ".env")
			if _, err := os.Stat(parent); err == nil {
				envFile = parent
			} else {
				return
			}
		}
		// Missing or malformed .env is not fatal; the environment still wins.
		_ = godotenv.Load(envFile)
	})
}

// Get returns the process-wide configuration, initializing it on first use.
// Initialization errors fall back to defaults so the CLI can still run.
func Get() *Config {
	configOnce.Do(func() {
		LoadEnv()
		cfg, err := InitializeConfig()
		if err != nil {
			cfg = defaultConfig()
		}
		globalConfig = cfg
	})
	return globalConfig
}

// defaultConfig builds a Config from defaults only, bypassing files and
// environment.
func defaultConfig() *Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.AI.Model = "gemini-1.5-flash"
	cfg.AI.TimeoutSeconds = 30
	cfg.Data.Directory = "data"
	cfg.Categorization.DefaultCurrency = "ILS"
	cfg.Categorization.UserID = "default"
	return &cfg
}
