// Package config loads application configuration from environment variables.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the airnet CLI. Values are
// populated by Load from environment variables, which command-line flags
// may override.
type Config struct {
	// DatasetPath is the path to the network dataset file. Set via
	// AIRNET_DATASET_PATH. Commands that need a dataset require it.
	DatasetPath string

	// OutputPath is the directory exports are written under. Set via
	// AIRNET_OUTPUT_PATH. Defaults to "./output".
	OutputPath string

	// InputPath is the GPX file imports are read from. Set via
	// AIRNET_INPUT_PATH.
	InputPath string

	// LogLevel controls the minimum log level. Set via LOG_LEVEL.
	// Defaults to "info". Valid values: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Whether a value is required
// depends on the command being run, so Load itself never fails on an unset
// variable.
func Load() Config {
	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	return Config{
		DatasetPath: os.Getenv("AIRNET_DATASET_PATH"),
		OutputPath:  getEnv("AIRNET_OUTPUT_PATH", "./output"),
		InputPath:   os.Getenv("AIRNET_INPUT_PATH"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
