package session

import (
	"os"
	"path/filepath"
)

const (
	StoreCookie = "cookie"
	StoreRedis  = "redis"
)

type Config struct {
	// Store selects the gateway backend: "cookie" or "redis".
	Store string `env:"SESSION_STORE" envDefault:"cookie"`
	// File is where the command line client keeps its session. Empty means
	// DefaultFilePath.
	File string `env:"SESSION_FILE"`
}

// FilePath returns File or DefaultFilePath.
func (c Config) FilePath() string {
	if c.File != "" {
		return c.File
	}
	return DefaultFilePath()
}

// DefaultFilePath is inkhive/session.json under the user config directory,
// or under the working directory when that is unknown.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "inkhive", "session.json")
}
