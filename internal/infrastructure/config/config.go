package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakensoul/sensorcore/internal/infrastructure/mqtt"
)

// Source types for the telemetry byte stream.
const (
	SourceTypeFile  = "file"
	SourceTypeStdin = "stdin"
	SourceTypeMQTT  = "mqtt"
)

// Config is the root configuration structure for sensorcore.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	MQTT     mqtt.Config    `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SourceConfig describes where the telemetry byte stream comes from
// and how the line reader treats it.
type SourceConfig struct {
	// Type selects the byte source: file, stdin or mqtt.
	Type string `yaml:"type"`

	// Path is the device or file path for the file source
	// (e.g. /dev/ttyACM0).
	Path string `yaml:"path"`

	// PollIntervalMs is the backoff between reads while the source
	// has no bytes ready, in milliseconds.
	PollIntervalMs int `yaml:"poll_interval_ms"`

	// BannerMarkers are substrings identifying device banner lines to
	// discard before decoding. Defaults cover the known startup
	// diagnostics; override per device firmware.
	BannerMarkers []string `yaml:"banner_markers"`
}

// InfluxDBConfig contains InfluxDB connection settings for the
// telemetry sample sink.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// DatabaseConfig contains SQLite settings for the sample archive.
type DatabaseConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SENSORCORE_SECTION_KEY
// For example: SENSORCORE_SOURCE_PATH, SENSORCORE_INFLUXDB_TOKEN
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:           SourceTypeStdin,
			PollIntervalMs: 10,
		},
		MQTT: mqtt.DefaultConfig(),
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Org:           "sensorcore",
			Bucket:        "telemetry",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Database: DatabaseConfig{
			Path:        "./data/sensorcore.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables follow the pattern: SENSORCORE_SECTION_KEY.
func applyEnvOverrides(cfg *Config) {
	// Source
	if v := os.Getenv("SENSORCORE_SOURCE_TYPE"); v != "" {
		cfg.Source.Type = v
	}
	if v := os.Getenv("SENSORCORE_SOURCE_PATH"); v != "" {
		cfg.Source.Path = v
	}

	// MQTT
	if v := os.Getenv("SENSORCORE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("SENSORCORE_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("SENSORCORE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("SENSORCORE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("SENSORCORE_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("SENSORCORE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Database
	if v := os.Getenv("SENSORCORE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Logging
	if v := os.Getenv("SENSORCORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	switch c.Source.Type {
	case SourceTypeFile:
		if c.Source.Path == "" {
			errs = append(errs, "source.path is required for the file source")
		}
	case SourceTypeStdin, SourceTypeMQTT:
		// No extra requirements.
	default:
		errs = append(errs, fmt.Sprintf("source.type must be %s, %s or %s",
			SourceTypeFile, SourceTypeStdin, SourceTypeMQTT))
	}

	if c.Source.PollIntervalMs < 0 {
		errs = append(errs, "source.poll_interval_ms must not be negative")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.Source.Type == SourceTypeMQTT && c.MQTT.LineTopic == "" {
		errs = append(errs, "mqtt.line_topic is required for the mqtt source")
	}

	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if c.Database.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required when the archive is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// PollInterval returns the source poll backoff as a Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Source.PollIntervalMs) * time.Millisecond
}
