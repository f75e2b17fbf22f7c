package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// loadDotEnv exports the variables of path into the process environment.
// A missing file is not an error. Variables already present in the
// environment keep their values.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}
