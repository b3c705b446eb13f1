package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the SGME
// service.
type Config struct {
	HTTPPort         int
	SQLiteDSN        string
	DefaultCommunity string
	ParishHeader     string
}

// Load parses configuration values from the current process environment. A
// .env file in the working directory is merged in first when present;
// variables already set in the environment win.
//
// The loader applies defaults for every field and reports invalid values in
// one pass rather than failing on the first.
func Load() (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "file:sgme.db?_pragma=foreign_keys(1)",
		DefaultCommunity: "Matriz",
		ParishHeader:     "X-Parish-ID",
	}

	invalid := make([]string, 0, 1)

	if portValue := strings.TrimSpace(os.Getenv("SGME_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SGME_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SGME_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if community := strings.TrimSpace(os.Getenv("SGME_DEFAULT_COMMUNITY")); community != "" {
		cfg.DefaultCommunity = community
	}

	if header := strings.TrimSpace(os.Getenv("SGME_PARISH_HEADER")); header != "" {
		cfg.ParishHeader = header
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("variáveis de ambiente com valores inválidos: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
