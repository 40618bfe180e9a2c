package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are tried in order. godotenv never overrides variables that are
// already set, so the process environment wins over .env, and .env wins
// over .env.local.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() {
	for _, p := range envFiles {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load environment file", "file", p, "error", err)
			continue
		}
		slog.Debug("Loaded environment file", "file", p)
	}
}
