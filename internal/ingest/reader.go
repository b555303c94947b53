package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// State is the LineReader's position in its framing state machine.
type State int

// LineReader states.
const (
	// StateIdle means no partial line is buffered.
	StateIdle State = iota

	// StateAccumulating means bytes of an unterminated line are
	// buffered.
	StateAccumulating

	// StateLineReady means a complete line has just been emitted.
	StateLineReady

	// StateStreamClosed means the source reported end of stream.
	StateStreamClosed

	// StateReadError means the source failed; the reader is unusable.
	StateReadError
)

const (
	// defaultPollInterval is the backoff between reads when the
	// source has nothing ready. Matches the device's expected
	// transmission cadence; prevents a hot spin without adding
	// noticeable latency.
	defaultPollInterval = 10 * time.Millisecond

	// readChunkSize is the per-read buffer size. Telemetry lines are
	// short; a small chunk keeps latency low on slow sources.
	readChunkSize = 256
)

// DefaultBannerMarkers are the substrings of known device-generated
// banner lines (startup diagnostics, format hints). Lines containing
// any marker are dropped before decoding. The exact membership is a
// deployment detail; override it via config.
var DefaultBannerMarkers = []string{"===", "Arduino", "Formato"}

// ReaderConfig configures a LineReader.
type ReaderConfig struct {
	// PollInterval is the delay between reads while the source has no
	// bytes ready. Zero selects the default.
	PollInterval time.Duration

	// BannerMarkers are substrings identifying non-data banner lines
	// to discard. Nil selects DefaultBannerMarkers; an explicit empty
	// slice disables filtering.
	BannerMarkers []string
}

// LineReader frames a byte stream into terminator-stripped lines.
//
// Bytes accumulate until a line terminator (\n or \r). A terminator
// ending a non-empty buffer emits the buffer as a line; a terminator
// with an empty buffer (terminator runs, \r\n pairs) is collapsed so
// no empty lines are ever emitted. Banner lines are filtered here,
// before the decoder ever sees them.
//
// LineReader is not safe for concurrent use.
type LineReader struct {
	src          ByteSource
	pollInterval time.Duration
	banners      []string

	buf     bytes.Buffer // in-progress line
	pending []string     // complete lines not yet returned
	chunk   []byte
	state   State
	closed  bool // source reported EOF; pending may still hold lines
}

// NewLineReader creates a LineReader over the borrowed source.
func NewLineReader(src ByteSource, cfg ReaderConfig) *LineReader {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	banners := cfg.BannerMarkers
	if banners == nil {
		banners = DefaultBannerMarkers
	}
	return &LineReader{
		src:          src,
		pollInterval: interval,
		banners:      banners,
		chunk:        make([]byte, readChunkSize),
		state:        StateIdle,
	}
}

// State returns the reader's current framing state.
func (r *LineReader) State() State {
	return r.state
}

// ReadLine returns the next decoded data line with its terminator
// stripped and banner lines already discarded.
//
// It blocks until a line is available, backing off pollInterval
// between reads while the source has nothing ready. The backoff is
// interruptible: ctx cancellation returns ctx.Err() between
// iterations. End of stream returns ErrStreamClosed once buffered
// lines are drained; a source failure returns ErrStreamRead.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	for {
		// Drain already-framed lines before touching the source.
		for len(r.pending) > 0 {
			line := r.pending[0]
			r.pending = r.pending[1:]
			if r.isBanner(line) {
				continue
			}
			r.state = StateLineReady
			return line, nil
		}

		if r.state == StateReadError {
			return "", ErrStreamRead
		}
		if r.closed {
			r.state = StateStreamClosed
			return "", ErrStreamClosed
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.consume(r.chunk[:n])
		}

		switch {
		case err == io.EOF:
			// Drain any framed lines first; ErrStreamClosed comes
			// once pending is empty. A partial line without its
			// terminator is discarded with the stream.
			r.closed = true
		case err != nil:
			r.state = StateReadError
			return "", fmt.Errorf("%w: %w", ErrStreamRead, err)
		case n == 0:
			// Nothing ready, not closed. Bounded backoff, never a
			// busy spin.
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.pollInterval):
			}
		}
	}
}

// consume runs the framing state machine over a chunk of bytes.
func (r *LineReader) consume(p []byte) {
	for _, b := range p {
		if b == '\n' || b == '\r' {
			if r.buf.Len() > 0 {
				r.pending = append(r.pending, r.buf.String())
				r.buf.Reset()
			}
			// Empty buffer on a terminator: collapse it silently.
			r.state = StateIdle
			continue
		}
		r.buf.WriteByte(b)
		r.state = StateAccumulating
	}
}

// isBanner reports whether the line matches any configured banner
// marker.
func (r *LineReader) isBanner(line string) bool {
	for _, marker := range r.banners {
		if marker != "" && strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
