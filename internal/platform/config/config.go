// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultPort is used when PORT is unset or not a valid TCP port.
const DefaultPort = 8000

// Config holds the service settings.
type Config struct {
	Port int
}

// Load reads an optional .env file and then the process environment. Variables
// already present in the environment take precedence over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return Config{Port: ParsePort(os.Getenv("PORT"))}, nil
}

// ParsePort converts raw into a TCP port, falling back to DefaultPort when raw
// is empty, not an integer, or outside 1-65535.
func ParsePort(raw string) int {
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return DefaultPort
	}
	return port
}

// Addr is the listen address on all interfaces.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
