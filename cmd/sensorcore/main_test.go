package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oakensoul/sensorcore/internal/infrastructure/logging"
	"github.com/oakensoul/sensorcore/internal/infrastructure/mqtt"
	"github.com/oakensoul/sensorcore/internal/sensor"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("SENSORCORE_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_UnknownSourceType verifies run rejects a config with a bad
// source type before touching any infrastructure.
func TestRun_UnknownSourceType(t *testing.T) {
	configPath := writeTestConfig(t, `
source:
  type: carrier-pigeon

database:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: json
  output: stdout
`)
	t.Setenv("SENSORCORE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with unknown source type")
	}
}

// TestRun_FileSource verifies a complete ingestion pass over a file:
// banner filtering, decoding, registration and the SQLite archive.
func TestRun_FileSource(t *testing.T) {
	tmpDir := t.TempDir()

	sourcePath := filepath.Join(tmpDir, "telemetry.txt")
	telemetry := "=== boot ===\n" +
		"T TEMP-001 25.5\n" +
		"T TEMP-001 20.0\n" +
		"P PRES-001 101\n" +
		"garbage line\n" +
		"T TEMP-001 30.0\n"
	if err := os.WriteFile(sourcePath, []byte(telemetry), 0600); err != nil {
		t.Fatalf("writing telemetry file: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "samples.db")
	configPath := writeTestConfig(t, `
source:
  type: file
  path: `+sourcePath+`
  poll_interval_ms: 1

database:
  enabled: true
  path: `+dbPath+`
  wal_mode: true
  busy_timeout: 5

influxdb:
  enabled: false

logging:
  level: error
  format: json
  output: stdout
`)
	t.Setenv("SENSORCORE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	// Samples were archived alongside the in-memory registry.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected archive database to be created")
	}
}

// TestRun_MissingSourceFile verifies run fails when the file source
// does not exist.
func TestRun_MissingSourceFile(t *testing.T) {
	configPath := writeTestConfig(t, `
source:
  type: file
  path: /nonexistent/telemetry.txt

database:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: json
  output: stdout
`)
	t.Setenv("SENSORCORE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail when the source file is missing")
	}
}

// TestGetConfigPath verifies config path resolution.
func TestGetConfigPath(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		t.Setenv("SENSORCORE_CONFIG", "")
		if got := getConfigPath(); got != defaultConfigPath {
			t.Errorf("getConfigPath() = %v, want %v", got, defaultConfigPath)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("SENSORCORE_CONFIG", "/custom/config.yaml")
		if got := getConfigPath(); got != "/custom/config.yaml" {
			t.Errorf("getConfigPath() = %v, want /custom/config.yaml", got)
		}
	})
}

// writeTestConfig writes a config file into a temp dir and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// TestPublishSummaries_DisconnectedBroker verifies the summary
// broadcast degrades to warnings when the broker session is gone,
// rather than failing the shutdown path.
func TestPublishSummaries_DisconnectedBroker(t *testing.T) {
	registry := sensor.NewRegistry()
	if _, err := registry.Record("TEMP-001", sensor.Thermal(21.5)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := registry.Register("PRES-001", sensor.KindBarometric); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Must not panic and must walk every device, empty histories
	// included.
	publishSummaries(&mqtt.Client{}, registry, logging.Default())
}

// TestDeviceSummaryPayload verifies the summary topic payload shape.
func TestDeviceSummaryPayload(t *testing.T) {
	payload, err := json.Marshal(deviceSummary{
		DeviceID: "TEMP-001",
		Kind:     "thermal",
		Samples:  3,
		Summary:  20.0,
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["device_id"] != "TEMP-001" {
		t.Errorf("device_id = %v, want TEMP-001", decoded["device_id"])
	}
	if decoded["summary"] != 20.0 {
		t.Errorf("summary = %v, want 20", decoded["summary"])
	}
}
