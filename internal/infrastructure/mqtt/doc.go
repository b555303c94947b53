// Package mqtt provides MQTT client connectivity for sensorcore.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Retained status and per-device summary publishing
//   - Topic subscriptions replayed after a reconnect
//   - Last Will and Testament (LWT) for offline detection
//   - Adapting a line topic into a byte source for ingestion
//
// Configuration for the broker lives here too; the application config
// embeds Config under its mqtt key and defaults come from
// DefaultConfig, keeping the default line topic derived from the
// topic builders.
//
// # Architecture
//
// sensorcore can ingest telemetry over MQTT instead of a local serial
// port or file. Field gateways forward raw device lines to a topic;
// LineSource buffers the payloads and exposes them through the
// standard Read contract so the ingest pipeline consumes MQTT traffic
// exactly as it consumes any other source.
//
//	Field Gateway → MQTT Broker → sensorcore (LineSource → ingest)
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Feed telemetry lines into the ingest pipeline
//	source, err := mqtt.SubscribeLines(client, mqtt.Topics{}.TelemetryLines(), 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reader := ingest.NewLineReader(source, ingest.ReaderConfig{})
package mqtt
