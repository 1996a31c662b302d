// Package export writes decoded samples and events as JSON lines or as
// length-prefixed msgpack frames.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/samcharles93/stdhep/pkg/stdhep"
)

// Output formats.
const (
	FormatJSONL   = "jsonl"
	FormatMsgpack = "msgpack"
)

// Record types. Every record carries exactly one payload matching its type.
const (
	TypeSample = "sample"
	TypeEvent  = "event"
	TypeStats  = "stats"
)

// Record is one unit of output.
type Record struct {
	Type   string         `json:"type" msgpack:"type"`
	Sample *stdhep.Sample `json:"sample,omitempty" msgpack:"sample,omitempty"`
	Event  *stdhep.Event  `json:"event,omitempty" msgpack:"event,omitempty"`
	Stats  *stdhep.Stats  `json:"stats,omitempty" msgpack:"stats,omitempty"`
}

func SampleRecord(s stdhep.Sample) Record { return Record{Type: TypeSample, Sample: &s} }
func EventRecord(e *stdhep.Event) Record  { return Record{Type: TypeEvent, Event: e} }
func StatsRecord(s stdhep.Stats) Record   { return Record{Type: TypeStats, Stats: &s} }

// Encoder writes records to an underlying stream.
type Encoder interface {
	Encode(rec Record) error
}

// NewEncoder returns an encoder for the named format.
func NewEncoder(w io.Writer, format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case FormatJSONL, "json", "":
		return NewJSONLEncoder(w), nil
	case FormatMsgpack:
		return NewFrameEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Copy writes the sample, every kept event and the final tallies of r to enc.
// Skipped events are counted but not written. It returns the terminal reader
// error unless the stream ended cleanly.
func Copy(enc Encoder, r *stdhep.Reader) error {
	if err := enc.Encode(SampleRecord(r.Sample())); err != nil {
		return err
	}
	for {
		ev, st, err := r.ReadEvent()
		if st == stdhep.StatusFailure {
			if !stdhep.IsEndOfStream(err) {
				return err
			}
			break
		}
		if st == stdhep.StatusSkip {
			continue
		}
		if err := enc.Encode(EventRecord(ev)); err != nil {
			return err
		}
	}
	return enc.Encode(StatsRecord(r.Stats()))
}
