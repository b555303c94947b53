// sensorcore - Telemetry Ingestion Core
//
// This is the main entry point for the sensorcore collector. It reads
// newline-framed telemetry records from a byte source (serial-style
// file, stdin or an MQTT line topic), decodes them into typed samples,
// maintains an in-memory device registry, and optionally forwards
// accepted samples to a SQLite archive and InfluxDB.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oakensoul/sensorcore/internal/infrastructure/config"
	"github.com/oakensoul/sensorcore/internal/infrastructure/database"
	"github.com/oakensoul/sensorcore/internal/infrastructure/influxdb"
	"github.com/oakensoul/sensorcore/internal/infrastructure/logging"
	"github.com/oakensoul/sensorcore/internal/infrastructure/mqtt"
	"github.com/oakensoul/sensorcore/internal/ingest"
	"github.com/oakensoul/sensorcore/internal/sensor"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	// This is the Go pattern for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run the application
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting sensorcore",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Build the registry and pipeline
	registry := sensor.NewRegistry()
	registry.SetLogger(log.With("component", "registry"))

	// Open the sample archive (optional)
	var archive *sensor.SQLiteSampleArchive
	if cfg.Database.Enabled {
		db, dbErr := database.Open(database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if dbErr != nil {
			return fmt.Errorf("opening database: %w", dbErr)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()

		archive = sensor.NewSQLiteSampleArchive(db.DB)
		if initErr := archive.Init(ctx); initErr != nil {
			return fmt.Errorf("initialising sample archive: %w", initErr)
		}
		log.Info("sample archive ready", "path", cfg.Database.Path)
	} else {
		log.Info("sample archive disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		// Set up InfluxDB error callback
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Open the byte source
	source, mqttClient, cleanup, err := openSource(cfg, log)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}
	log.Info("source ready", "type", cfg.Source.Type)

	reader := ingest.NewLineReader(source, ingest.ReaderConfig{
		PollInterval:  cfg.PollInterval(),
		BannerMarkers: cfg.Source.BannerMarkers,
	})

	ingestor := ingest.NewIngestor(reader, registry)
	ingestor.SetLogger(log.With("component", "ingest"))
	if archive != nil {
		ingestor.AddSink(archive)
	}
	if influxClient != nil {
		ingestor.AddSink(influxdb.NewSampleSink(influxClient))
	}

	// Run until the stream closes, the context is cancelled or the
	// source fails.
	if err := ingestor.Run(ctx); err != nil {
		logSummary(registry, log)
		return fmt.Errorf("ingestion failed: %w", err)
	}

	logSummary(registry, log)

	// Broadcast the final aggregates when the broker is around, and
	// record the run's totals in the time-series store.
	if mqttClient != nil {
		publishSummaries(mqttClient, registry, log)
	}
	if influxClient != nil {
		influxClient.WritePoint("ingest_stats",
			map[string]string{"source": cfg.Source.Type},
			map[string]interface{}{
				"accepted": ingestor.Accepted(),
				"devices":  registry.Len(),
			},
		)
		influxClient.Flush()
	}

	registry.Clear()

	log.Info("sensorcore stopped", "accepted", ingestor.Accepted())
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SENSORCORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SENSORCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// openSource opens the configured byte source.
//
// Returns the source, the MQTT client when that source type is
// selected (nil otherwise, but also used for summary publishing), an
// optional cleanup function and an error if the source cannot be
// opened.
func openSource(cfg *config.Config, log *logging.Logger) (ingest.ByteSource, *mqtt.Client, func(), error) {
	switch cfg.Source.Type {
	case config.SourceTypeStdin:
		return os.Stdin, nil, nil, nil

	case config.SourceTypeFile:
		f, err := os.Open(cfg.Source.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening %s: %w", cfg.Source.Path, err)
		}
		cleanup := func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Error("error closing source file", "error", closeErr)
			}
		}
		return f, nil, cleanup, nil

	case config.SourceTypeMQTT:
		client, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to MQTT: %w", err)
		}
		client.SetLogger(log.With("component", "mqtt"))
		client.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		client.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		lineSource, err := mqtt.SubscribeLines(client, cfg.MQTT.LineTopic, byte(cfg.MQTT.QoS))
		if err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("subscribing to %s: %w", cfg.MQTT.LineTopic, err)
		}
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"topic", cfg.MQTT.LineTopic,
		)

		cleanup := func() {
			if unsubErr := client.Unsubscribe(cfg.MQTT.LineTopic); unsubErr != nil {
				log.Warn("unsubscribing line topic", "error", unsubErr)
			}
			lineSource.Close()
			log.Info("disconnecting from MQTT")
			if closeErr := client.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}
		return lineSource, client, cleanup, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}
}

// deviceSummary is the retained per-device aggregate payload
// broadcast on the summary topics at the end of a run.
type deviceSummary struct {
	DeviceID string  `json:"device_id"`
	Kind     string  `json:"kind"`
	Samples  int     `json:"samples"`
	Summary  float64 `json:"summary"`
}

// publishSummaries broadcasts each device's aggregate to its retained
// summary topic. Devices with an empty history are skipped; a failed
// publish is logged and does not stop the remaining devices.
func publishSummaries(client *mqtt.Client, registry *sensor.Registry, log *logging.Logger) {
	for dev := range registry.All() {
		value, err := dev.Summarize()
		if err != nil {
			continue
		}

		payload, err := json.Marshal(deviceSummary{
			DeviceID: dev.ID(),
			Kind:     dev.Kind().String(),
			Samples:  dev.Len(),
			Summary:  value,
		})
		if err != nil {
			log.Error("encoding device summary", "id", dev.ID(), "error", err)
			continue
		}

		topic := mqtt.Topics{}.DeviceSummary(dev.ID())
		if err := client.PublishRetained(topic, payload); err != nil {
			log.Warn("publishing device summary", "topic", topic, "error", err)
		}
	}
}

// logSummary walks the registry in insertion order and logs the
// per-device aggregate for each record.
func logSummary(registry *sensor.Registry, log *logging.Logger) {
	log.Info("device summary", "devices", registry.Len())

	for dev := range registry.All() {
		summary, err := dev.Summarize()
		if err != nil {
			if errors.Is(err, sensor.ErrEmptyHistory) {
				log.Info("device", "id", dev.ID(), "kind", dev.Kind(), "samples", 0)
				continue
			}
			log.Error("summarising device", "id", dev.ID(), "error", err)
			continue
		}
		log.Info("device",
			"id", dev.ID(),
			"kind", dev.Kind(),
			"samples", dev.Len(),
			"summary", summary,
		)
	}
}
