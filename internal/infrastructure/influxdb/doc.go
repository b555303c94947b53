// Package influxdb provides InfluxDB connectivity for sensorcore.
//
// It wraps the official influxdb-client-go v2 library with sensorcore-specific
// patterns for connection management, sample writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series storage for decoded telemetry
// samples. Every sample accepted by the ingest pipeline can be
// forwarded here through SampleSink, tagged by device and kind.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    Enabled: true,
//	    URL:     "http://localhost:8086",
//	    Token:   "your-token",
//	    Org:     "sensorcore",
//	    Bucket:  "telemetry",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Write telemetry samples
//	client.WriteTelemetry("TEMP-001", "thermal", 21.5)
//
//	// Or attach to the ingest pipeline
//	ingestor.AddSink(influxdb.NewSampleSink(client))
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This reduces network overhead for high-frequency telemetry data.
package influxdb
