package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads ".env" from the current directory.
// A missing file is not an error. Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadConfig loads an optional .env file and then the environment.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, err
	}
	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return envCfg.ToAppConfig()
}
