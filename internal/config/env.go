package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override, e.g. SMARTPICK_OUTPUT_DIR
// or SMARTPICK_MASTER_SPREADSHEET_ID.
const EnvPrefix = "SMARTPICK_"

// DefaultEnvFiles are loaded by LoadEnv when present. Variables already set
// in the process environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnv loads the env files that exist and returns how many were loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// applyEnv overlays SMARTPICK_* variables onto cfg. Unset variables leave
// the loaded values untouched.
func applyEnv(cfg *MainConfig) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}
