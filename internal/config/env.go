package config

import (
	"os"
	"strings"
)

// Files tried by LoadEnv, nearest first.
var envPaths = []string{".env", "../.env", "../../.env"}

// LoadEnv loads KEY=VALUE pairs from the first .env file found in the current
// or a parent directory. Variables already set in the environment win.
func LoadEnv() error {
	for _, envPath := range envPaths {
		data, err := os.ReadFile(envPath)
		if err != nil {
			continue
		}
		return applyEnv(string(data))
	}
	return nil
}

func applyEnv(data string) error {
	for _, line := range strings.Split(data, "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		// Only set if not already set
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// parseEnvLine accepts "KEY=VALUE", "export KEY=VALUE" and quoted values.
// Blank lines and # comments are skipped.
func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}
