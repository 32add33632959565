package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSessions        = 1000
	DefaultSessionIdleTimeout = time.Hour
	DefaultSnapshotTTL        = 24 * time.Hour
)

// ServerConfig holds all configuration values of the server.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string // empty disables the result archive
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string

	MaxSessions        int
	SessionIdleTimeout time.Duration
	SnapshotTTL        time.Duration
}

// ClientConfig holds the settings of a client talking to the server.
type ClientConfig struct {
	ServerURL string
	Token     string
}

// LoadClientConfig loads the client configuration from environment variables.
func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: strings.TrimSuffix(getEnvMust("DRAUGHTS_SERVER_URL"), "/"),
		Token:     getEnvMust("DRAUGHTS_TOKEN"),
	}
}

// getEnvMust either returns the environment variable or logs an error and exits if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

// fileConfig is the layout of the optional YAML config file.
type fileConfig struct {
	ServerHost         string `yaml:"server_host"`
	ServerPort         string `yaml:"server_port"`
	RedisURL           string `yaml:"redis_url"`
	PostgresURL        string `yaml:"postgres_url"`
	BasicAuthUsername  string `yaml:"basic_auth_user"`
	BasicAuthPassword  string `yaml:"basic_auth_pass"`
	Token              string `yaml:"token"`
	MaxSessions        string `yaml:"max_sessions"`
	SessionIdleTimeout string `yaml:"session_idle_timeout"`
	SnapshotTTL        string `yaml:"snapshot_ttl"`
}

// LoadServerConfig loads configuration from environment variables, on top of the
// YAML file named by DRAUGHTS_CONFIG_FILE if that is set. It exits on invalid configuration.
func LoadServerConfig() *ServerConfig {
	var file []byte

	if path := os.Getenv("DRAUGHTS_CONFIG_FILE"); path != "" {
		var err error
		file, err = os.ReadFile(path)
		if err != nil {
			slog.Error("Cannot read config file", "path", path, "error", err)
			os.Exit(1)
		}
	}

	cfg, err := ParseServerConfig(file, os.Getenv)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// ParseServerConfig builds a ServerConfig from YAML file contents and an environment lookup.
// Environment variables take precedence over the file.
func ParseServerConfig(file []byte, getenv func(string) string) (*ServerConfig, error) {
	var fc fileConfig
	if len(file) > 0 {
		if err := yaml.Unmarshal(file, &fc); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	var missing []string
	get := func(key, fileValue string, required bool) string {
		value := strings.TrimSpace(getenv(key))
		if value == "" {
			value = strings.TrimSpace(fileValue)
		}
		if value == "" && required {
			missing = append(missing, key)
		}
		return value
	}

	cfg := &ServerConfig{
		ServerHost:        get("DRAUGHTS_SERVER_HOST", fc.ServerHost, true),
		ServerPort:        get("DRAUGHTS_SERVER_PORT", fc.ServerPort, true),
		RedisURL:          get("DRAUGHTS_REDIS_URL", fc.RedisURL, true),
		PostgresURL:       get("DRAUGHTS_POSTGRES_URL", fc.PostgresURL, false),
		BasicAuthUsername: get("DRAUGHTS_BASIC_AUTH_USER", fc.BasicAuthUsername, true),
		BasicAuthPassword: get("DRAUGHTS_BASIC_AUTH_PASS", fc.BasicAuthPassword, true),
		Token:             get("DRAUGHTS_TOKEN", fc.Token, true),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	var err error

	maxSessions := get("DRAUGHTS_MAX_SESSIONS", fc.MaxSessions, false)
	if cfg.MaxSessions, err = parsePositiveInt(maxSessions, DefaultMaxSessions); err != nil {
		return nil, fmt.Errorf("DRAUGHTS_MAX_SESSIONS: %w", err)
	}

	idleTimeout := get("DRAUGHTS_SESSION_IDLE_TIMEOUT", fc.SessionIdleTimeout, false)
	if cfg.SessionIdleTimeout, err = parseDuration(idleTimeout, DefaultSessionIdleTimeout); err != nil {
		return nil, fmt.Errorf("DRAUGHTS_SESSION_IDLE_TIMEOUT: %w", err)
	}

	snapshotTTL := get("DRAUGHTS_SNAPSHOT_TTL", fc.SnapshotTTL, false)
	if cfg.SnapshotTTL, err = parseDuration(snapshotTTL, DefaultSnapshotTTL); err != nil {
		return nil, fmt.Errorf("DRAUGHTS_SNAPSHOT_TTL: %w", err)
	}

	return cfg, nil
}

func parsePositiveInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as integer: %w", value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as duration: %w", value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
