package stdhep

import (
	"errors"
	"fmt"
	"io"

	"github.com/samcharles93/stdhep/internal/xdr"
)

var (
	ErrHeaderNotFound     = errors.New("stdhep: file header block not found")
	ErrUnknownVersion     = errors.New("stdhep: unknown version")
	ErrUnknownBlock       = errors.New("stdhep: unrecognised block")
	ErrUnsupportedVersion = errors.New("stdhep: unsupported block version")
	ErrCorruptBlock       = errors.New("stdhep: corrupted block")
	ErrDuplicateEvent     = errors.New("stdhep: duplicate event number")
	ErrMotherOutOfRange   = errors.New("stdhep: mother index out of range")
)

// VersionError names the version string that could not be handled.
type VersionError struct {
	Block   BlockID
	Version string
	Err     error
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%v: %s version %q", e.Err, e.Block, e.Version)
}

func (e *VersionError) Unwrap() error { return e.Err }

// BlockError reports a block that cannot be processed at the given offset.
type BlockError struct {
	ID     BlockID
	Offset int64
	Err    error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%v: id=%d at offset %d", e.Err, int32(e.ID), e.Offset)
}

func (e *BlockError) Unwrap() error { return e.Err }

// CorruptBlockError reports which parallel array of a particle block failed
// the length checks.
type CorruptBlockError struct {
	Block  BlockID
	Field  string
	Event  int32
	Reason string
}

func (e *CorruptBlockError) Error() string {
	return fmt.Sprintf("corrupted %s block (event %d): %s: %s", e.Block, e.Event, e.Field, e.Reason)
}

func (e *CorruptBlockError) Unwrap() error { return ErrCorruptBlock }

// Severity classifies an error by how far its effect reaches.
type Severity int

const (
	SeverityNone Severity = iota
	// SeverityParticle affects one mother/daughter link; the event is kept.
	SeverityParticle
	// SeverityEvent rejects the current event; reading continues.
	SeverityEvent
	// SeverityFatal abandons the file.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityParticle:
		return "particle"
	case SeverityEvent:
		return "event"
	default:
		return "fatal"
	}
}

// Classify returns the severity of err.
func Classify(err error) Severity {
	switch {
	case err == nil:
		return SeverityNone
	case errors.Is(err, ErrMotherOutOfRange):
		return SeverityParticle
	case errors.Is(err, ErrCorruptBlock),
		errors.Is(err, ErrDuplicateEvent),
		errors.Is(err, ErrUnsupportedVersion):
		return SeverityEvent
	default:
		return SeverityFatal
	}
}

// IsEndOfStream reports a clean end of file at a block boundary.
func IsEndOfStream(err error) bool {
	return errors.Is(err, io.EOF)
}

// skipReason is the tally key recorded for a skipped event.
func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrCorruptBlock):
		return "corrupt_block"
	case errors.Is(err, ErrDuplicateEvent):
		return "duplicate_event"
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported_version"
	default:
		return "other"
	}
}

// inBlock turns a clean EOF inside a block into a truncation error.
func inBlock(err error) error {
	if err == io.EOF {
		return xdr.ErrTruncated
	}
	return err
}
