package stdhep

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"golang.org/x/sys/unix"

	"github.com/samcharles93/stdhep/internal/logger"
	"github.com/samcharles93/stdhep/internal/xdr"
)

// Options configures a Reader. The zero value is usable.
type Options struct {
	// Logger receives warnings about skipped events and broken mother links.
	// Nil discards them.
	Logger logger.Logger
	// Classifier selects invisible and hadronic particles for the missing
	// energy sums. Nil uses DefaultClassifier.
	Classifier Classifier
	// MaxEvents stops the reader after this many kept events. Zero means no
	// limit.
	MaxEvents int
}

type state int

const (
	stateAwaitingBlock state = iota
	stateEventAccumulating
	stateDone
	stateFailed
)

// Stats tallies ReadEvent outcomes.
type Stats struct {
	Keep    int            `json:"keep" msgpack:"keep"`
	Skip    int            `json:"skip" msgpack:"skip"`
	Reasons map[string]int `json:"skip_reasons,omitempty" msgpack:"skip_reasons,omitempty"`
}

// Reader decodes events from one STDHEP stream. It is not safe for concurrent
// use.
type Reader struct {
	x      *xdr.Reader
	log    logger.Logger
	closer func() error
	max    int

	state  state
	err    error
	sample Sample
	stats  Stats
	raw    rawEvent
	fin    finalizer
}

// Open maps the file at path read-only and decodes its file header. When
// mmap is unavailable the file is streamed instead. The Reader must be closed.
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	size := st.Size()

	var (
		src    io.Reader = f
		closer           = f.Close
	)
	if size > 0 && size <= int64(int(^uint(0)>>1)) {
		data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			// The mapping outlives the descriptor.
			_ = f.Close()
			src = bytes.NewReader(data)
			closer = func() error { return unix.Munmap(data) }
		}
	}

	r, err := NewReader(src, size, opts)
	if err != nil {
		_ = closer()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r.closer = closer
	return r, nil
}

// NewReader decodes the file header from rd. size is the total stream length
// if known, or -1.
func NewReader(rd io.Reader, size int64, opts Options) (*Reader, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	cls := opts.Classifier
	if cls == nil {
		cls = DefaultClassifier()
	}
	r := &Reader{
		x:   xdr.NewReader(rd, size),
		log: log,
		max: opts.MaxEvents,
		fin: finalizer{classifier: cls, log: log},
	}
	if err := r.readFileHeader(); err != nil {
		return nil, err
	}
	r.log.Debug("file header decoded",
		"version", r.sample.Version,
		"schema", r.sample.Schema,
		"generator", r.sample.Generator,
		"title", r.sample.Title,
	)
	return r, nil
}

func (r *Reader) readFileHeader() error {
	p, err := readPrologue(r.x)
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("read file header: empty stream: %w", ErrHeaderNotFound)
	}
	if err != nil {
		return fmt.Errorf("read file header: %w", inBlock(err))
	}
	if p.id != BlockFileHeader {
		return &BlockError{ID: p.id, Offset: p.offset, Err: ErrHeaderNotFound}
	}
	v := ParseSchemaVersion(p.version)
	if v == VersionUnknown {
		return &VersionError{Block: BlockFileHeader, Version: p.version, Err: ErrUnknownVersion}
	}
	r.sample.Version = p.version
	r.sample.Schema = v
	return decodeFileHeader(r.x, v, &r.sample)
}

// Close releases the underlying file or mapping. It is a no-op for readers
// built with NewReader.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer()
	r.closer = nil
	return err
}

// Sample returns the header fields and the latest run summary.
func (r *Reader) Sample() Sample { return r.sample }

// Stats returns a snapshot of the KEEP/SKIP tallies.
func (r *Reader) Stats() Stats {
	s := r.stats
	s.Reasons = maps.Clone(r.stats.Reasons)
	return s
}

// Err returns the error that stopped the reader, or nil after a clean end.
func (r *Reader) Err() error { return r.err }

// ReadEvent decodes blocks until one particle block has been read.
//
// StatusKeep comes with a finalised event. StatusSkip means the current event
// was rejected and the next call continues with the following block; the
// error says why. StatusFailure is terminal: the error is io.EOF after a
// clean end of stream, or the fatal decode error.
func (r *Reader) ReadEvent() (*Event, Status, error) {
	switch r.state {
	case stateDone:
		return nil, StatusFailure, io.EOF
	case stateFailed:
		return nil, StatusFailure, r.err
	}
	if r.max > 0 && r.stats.Keep >= r.max {
		r.state = stateDone
		return nil, StatusFailure, io.EOF
	}

	for {
		p, err := readPrologue(r.x)
		if err == io.EOF {
			r.state = stateDone
			r.log.Debug("end of stream", "offset", r.x.Offset(), "keep", r.stats.Keep, "skip", r.stats.Skip)
			return nil, StatusFailure, io.EOF
		}
		if err != nil {
			return r.fail(fmt.Errorf("read block prologue at offset %d: %w", p.offset, err))
		}

		switch p.id {
		case BlockEventTable:
			w, err := eventTableLayout(p.version)
			if err != nil {
				return r.skip(err)
			}
			if err := decodeEventTable(r.x, w); err != nil {
				return r.fail(err)
			}

		case BlockEventHeader:
			if err := decodeEventHeader(r.x, eventHeaderLayoutFor(p.version)); err != nil {
				return r.fail(err)
			}

		case BlockRunBegin, BlockRunEnd:
			run, err := decodeRunSummary(r.x, p.id, runSummaryLayoutFor(p.version))
			if err != nil {
				return r.fail(err)
			}
			r.sample.Run = &run
			r.sample.Xsection = &Xsection{Mean: float64(run.Xsection)}
			r.log.Debug("run summary", "block", p.id, "xsection", run.Xsection, "ecm", run.CMEnergy)

		case BlockSTDHEP, BlockSTDHEP4:
			r.state = stateEventAccumulating
			if err := decodeParticles(r.x, p.id, &r.raw); err != nil {
				return r.fail(err)
			}
			if err := r.raw.validate(); err != nil {
				return r.skip(err)
			}
			ev, err := r.fin.finalize(&r.raw)
			if err != nil {
				return r.skip(err)
			}
			r.state = stateAwaitingBlock
			r.stats.Keep++
			return ev, StatusKeep, nil

		default:
			return r.fail(&BlockError{ID: p.id, Offset: p.offset, Err: ErrUnknownBlock})
		}
	}
}

func (r *Reader) skip(err error) (*Event, Status, error) {
	r.raw.reset(0)
	r.state = stateAwaitingBlock
	reason := skipReason(err)
	r.stats.Skip++
	if r.stats.Reasons == nil {
		r.stats.Reasons = make(map[string]int)
	}
	r.stats.Reasons[reason]++
	r.log.Warn("event skipped", "reason", reason, "error", err)
	return nil, StatusSkip, err
}

func (r *Reader) fail(err error) (*Event, Status, error) {
	midEvent := r.state == stateEventAccumulating
	r.state = stateFailed
	r.err = err
	r.log.Error("stream abandoned", "offset", r.x.Offset(), "mid_event", midEvent, "error", err)
	return nil, StatusFailure, err
}
