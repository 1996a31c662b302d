package export

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/samcharles93/stdhep/pkg/stdhep"
	"github.com/samcharles93/stdhep/pkg/stdhep/stdheptest"
)

func sampleStream() []byte {
	s := &stdheptest.Stream{}
	s.FileHeader(stdheptest.FileHeader{Version: "2.00", Title: "HERWIG 6.5 Z->ee"})
	s.RunSummary(stdheptest.BlockRunBegin, "5.02", 1.5)
	for i, n := range []int32{1, 2, 2, 3} {
		ev := stdheptest.Event{Number: n}
		ev.Particles = []stdheptest.Particle{
			{PDGID: 23, Status: 2, P: [5]float64{0, 0, 10, 92, 91.2}},
			{PDGID: 11, Status: 1, Mothers: [2]int32{1, 0}, P: [5]float64{3, 4, 5, 46, 0}},
		}
		if i == 0 {
			ev.Particles[1].Mothers = [2]int32{9, 0}
		}
		s.STDHEP(ev)
	}
	return s.Bytes()
}

func openSample(t *testing.T) *stdhep.Reader {
	t.Helper()
	b := sampleStream()
	r, err := stdhep.NewReader(bytes.NewReader(b), int64(len(b)), stdhep.Options{})
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	return r
}

func TestCopyJSONL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, FormatJSONL)
	if err != nil {
		t.Fatalf("new encoder: %v", err)
	}
	if err := Copy(enc, openSample(t)); err != nil {
		t.Fatalf("copy: %v", err)
	}

	var recs []Record
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("unmarshal %q: %v", sc.Text(), err)
		}
		recs = append(recs, rec)
	}
	if len(recs) != 5 {
		t.Fatalf("records: got %d want 5 (sample, 3 events, stats)", len(recs))
	}
	if recs[0].Type != TypeSample || recs[0].Sample.Generator != stdhep.GeneratorHerwig6 {
		t.Fatalf("sample record: %+v", recs[0])
	}
	if recs[1].Event.Number != 1 || len(recs[1].Event.BrokenLinks) != 2 {
		t.Fatalf("first event: %+v", recs[1].Event)
	}
	if recs[3].Event.Number != 3 {
		t.Fatalf("last event: got %d", recs[3].Event.Number)
	}
	st := recs[4].Stats
	if recs[4].Type != TypeStats || st.Keep != 3 || st.Skip != 1 || st.Reasons["duplicate_event"] != 1 {
		t.Fatalf("stats record: %+v", recs[4])
	}
}

func TestJSONLFieldNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ev := &stdhep.Event{Number: 4, Weight: 1, Particles: []stdhep.Particle{{PDGID: 22, Status: 1, Mother1: -1, Mother2: -1}}}
	if err := NewJSONLEncoder(&buf).Encode(EventRecord(ev)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	line := buf.String()
	for _, want := range []string{`"type":"event"`, `"number":4`, `"pdg_id":22`, `"mother1":-1`, `"links":["none","none"]`} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %s in %s", want, line)
		}
	}
	if strings.Contains(line, `"sample"`) || !strings.HasSuffix(line, "\n") {
		t.Fatalf("unexpected line shape: %q", line)
	}
}

func TestCopyMsgpackFrames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, FormatMsgpack)
	if err != nil {
		t.Fatalf("new encoder: %v", err)
	}
	if err := Copy(enc, openSample(t)); err != nil {
		t.Fatalf("copy: %v", err)
	}

	dec := NewFrameDecoder(&buf)
	var types []string
	var events []*stdhep.Event
	for {
		rec, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		types = append(types, rec.Type)
		if rec.Event != nil {
			events = append(events, rec.Event)
		}
	}
	want := []string{TypeSample, TypeEvent, TypeEvent, TypeEvent, TypeStats}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Fatalf("types: got %v want %v", types, want)
	}
	e := events[1]
	if e.Number != 2 || e.Particles[1].Mother1 != 0 || e.MET.Pt() != 5 {
		t.Fatalf("decoded event: %+v", e)
	}
	if len(e.Particles[0].Daughters) != 2 {
		t.Fatalf("daughters: %v", e.Particles[0].Daughters)
	}
}

func TestFrameDecoderErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewFrameEncoder(&buf).Encode(StatsRecord(stdhep.Stats{Keep: 1})); err != nil {
		t.Fatalf("encode: %v", err)
	}
	full := buf.Bytes()

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, io.EOF},
		{"partial prefix", full[:2], io.ErrUnexpectedEOF},
		{"partial payload", full[:len(full)-1], io.ErrUnexpectedEOF},
		{"oversized", []byte{0xFF, 0xFF, 0xFF, 0xFF}, ErrFrameTooLarge},
	}
	for _, tc := range cases {
		_, err := NewFrameDecoder(bytes.NewReader(tc.data)).Decode()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
	}
}

func TestNewEncoderUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := NewEncoder(io.Discard, "csv"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCopyReturnsFatalError(t *testing.T) {
	t.Parallel()

	s := &stdheptest.Stream{}
	s.FileHeader(stdheptest.FileHeader{Version: "1.00"})
	s.Prologue(77, "1.00")
	b := s.Bytes()
	r, err := stdhep.NewReader(bytes.NewReader(b), int64(len(b)), stdhep.Options{})
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if err := Copy(NewJSONLEncoder(io.Discard), r); !errors.Is(err, stdhep.ErrUnknownBlock) {
		t.Fatalf("got %v want ErrUnknownBlock", err)
	}
}
