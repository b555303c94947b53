package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oakensoul/sensorcore/internal/sensor"
)

// Record is one decoded telemetry record: the device it belongs to
// and its typed sample value.
type Record struct {
	DeviceID string
	Value    sensor.Value
}

// Kind returns the record's device kind.
func (r Record) Kind() sensor.Kind {
	return r.Value.Kind()
}

// Decode parses a terminator-stripped, banner-filtered line into a
// Record.
//
// The line carries three whitespace-separated tokens: a
// single-character kind tag (T/t thermal, P/p barometric), an opaque
// identifier and a value. Thermal values are decimal fractions,
// barometric values are integers. Any missing token, unrecognised
// tag or representation mismatch yields an ErrDecode-wrapped
// failure; tokens past the third are ignored.
func Decode(line string) (Record, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return Record{}, fmt.Errorf("%w: empty line", ErrDecode)
	case 1:
		return Record{}, fmt.Errorf("%w: missing identifier token", ErrDecode)
	case 2:
		return Record{}, fmt.Errorf("%w: missing value token", ErrDecode)
	}

	tag, id, raw := fields[0], fields[1], fields[2]
	if len(tag) != 1 {
		return Record{}, fmt.Errorf("%w: unrecognised kind tag %q", ErrDecode, tag)
	}

	switch tag[0] {
	case 'T', 't':
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: thermal value %q is not a decimal fraction", ErrDecode, raw)
		}
		return Record{DeviceID: id, Value: sensor.Thermal(v)}, nil
	case 'P', 'p':
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: barometric value %q is not an integer", ErrDecode, raw)
		}
		return Record{DeviceID: id, Value: sensor.Barometric(v)}, nil
	default:
		return Record{}, fmt.Errorf("%w: unrecognised kind tag %q", ErrDecode, tag)
	}
}
