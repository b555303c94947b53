package influxdb

import (
	"context"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/oakensoul/sensorcore/internal/sensor"
)

// WriteTelemetry queues one decoded sample under the telemetry
// measurement, tagged by device and kind. Dropped silently on a
// closed client; the SampleSink wrapper reports that case instead.
func (c *Client) WriteTelemetry(deviceID string, kind string, value float64) {
	c.WritePoint("telemetry",
		map[string]string{
			"device_id": deviceID,
			"kind":      kind,
		},
		map[string]interface{}{
			"value": value,
		},
	)
}

// WritePoint queues a point under an arbitrary measurement, stamped
// now. The shutdown path uses it for the ingest_stats measurement.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.WritePointWithTime(measurement, tags, fields, time.Now())
}

// WritePointWithTime queues a point with an explicit timestamp, for
// data that did not arrive in real time.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, timestamp))
}

// SampleSink adapts the client to the ingest pipeline's sink contract.
//
// Writes are buffered by the non-blocking write API, so the sink never
// slows ingestion down; async failures surface through SetOnError.
type SampleSink struct {
	client *Client
}

// NewSampleSink creates a sink backed by the given client.
func NewSampleSink(client *Client) *SampleSink {
	return &SampleSink{client: client}
}

// WriteSample forwards one accepted sample to InfluxDB.
//
// Returns ErrNotConnected when the client has been closed; the point is
// otherwise queued for batched delivery and the error is always nil.
func (s *SampleSink) WriteSample(_ context.Context, deviceID string, kind sensor.Kind, value float64) error {
	if !s.client.IsConnected() {
		return ErrNotConnected
	}

	s.client.WriteTelemetry(deviceID, string(kind), value)
	return nil
}
