package ingest

import (
	"context"
	"errors"

	"github.com/oakensoul/sensorcore/internal/sensor"
)

// Logger defines the logging interface used by the Ingestor.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Sink receives every sample the registry accepted. Sink failures are
// logged and never interrupt ingestion.
type Sink interface {
	WriteSample(ctx context.Context, deviceID string, kind sensor.Kind, value float64) error
}

// Ingestor drives the synchronous read → decode → register loop.
//
// All work happens on the calling goroutine; the registry sees no
// parallel access from the pipeline.
type Ingestor struct {
	reader   *LineReader
	registry *sensor.Registry
	sinks    []Sink
	logger   Logger

	accepted int64
}

// NewIngestor creates an ingestor feeding the given registry from the
// reader.
func NewIngestor(reader *LineReader, registry *sensor.Registry) *Ingestor {
	return &Ingestor{
		reader:   reader,
		registry: registry,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the ingestor.
func (in *Ingestor) SetLogger(logger Logger) {
	in.logger = logger
}

// AddSink registers a sink for accepted samples.
func (in *Ingestor) AddSink(sink Sink) {
	in.sinks = append(in.sinks, sink)
}

// Accepted returns the number of samples stored in the registry so
// far during this run.
func (in *Ingestor) Accepted() int64 {
	return in.accepted
}

// Run processes the stream until it closes, the context is cancelled
// or the source fails.
//
// Malformed lines and kind conflicts are logged and skipped. A clean
// end (stream closed, context cancelled) returns nil; a source
// failure returns the ErrStreamRead-wrapped error.
func (in *Ingestor) Run(ctx context.Context) error {
	in.logger.Info("ingestion started")

	for {
		line, err := in.reader.ReadLine(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrStreamClosed):
				in.logger.Info("stream closed", "accepted", in.accepted)
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				in.logger.Info("ingestion stopped", "accepted", in.accepted)
				return nil
			default:
				in.logger.Error("stream read failed", "error", err)
				return err
			}
		}

		rec, err := Decode(line)
		if err != nil {
			in.logger.Warn("discarding malformed line", "line", line, "error", err)
			continue
		}

		dev, err := in.registry.Record(rec.DeviceID, rec.Value)
		if err != nil {
			in.logger.Warn("sample rejected", "id", rec.DeviceID, "error", err)
			continue
		}
		in.accepted++

		for _, sink := range in.sinks {
			if err := sink.WriteSample(ctx, rec.DeviceID, rec.Kind(), rec.Value.Scalar()); err != nil {
				in.logger.Warn("sink write failed", "id", rec.DeviceID, "error", err)
			}
		}

		in.logger.Debug("sample accepted",
			"id", dev.ID(),
			"kind", dev.Kind(),
			"value", rec.Value.String(),
			"samples", dev.Len(),
		)
	}
}
