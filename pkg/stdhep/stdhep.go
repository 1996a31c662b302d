// Package stdhep reads mcfio/STDHEP event files written by Monte-Carlo
// generators and turns them into particle-level events.
//
// A file is a sequence of XDR blocks, each introduced by a prologue of block
// id, element count and version string. The file header is decoded once by
// Open/NewReader; ReadEvent then pulls blocks until one particle block has
// been decoded, validated and linked into a mother/daughter graph.
package stdhep

import "fmt"

// BlockID identifies a block in the mcfio stream.
type BlockID int32

const (
	BlockFileHeader       BlockID = 1
	BlockEventTable       BlockID = 2
	BlockSequentialHeader BlockID = 3
	BlockEventHeader      BlockID = 4
	BlockNothing          BlockID = 5
	BlockSTDHEP           BlockID = 101
	BlockRunBegin         BlockID = 106
	BlockRunEnd           BlockID = 107
	BlockSTDHEP4          BlockID = 201
)

func (b BlockID) String() string {
	switch b {
	case BlockFileHeader:
		return "FILEHEADER"
	case BlockEventTable:
		return "EVENTTABLE"
	case BlockSequentialHeader:
		return "SEQUENTIALHEADER"
	case BlockEventHeader:
		return "EVENTHEADER"
	case BlockNothing:
		return "NOTHING"
	case BlockSTDHEP:
		return "STDHEP"
	case BlockRunBegin:
		return "STDHEPBEG"
	case BlockRunEnd:
		return "STDHEPEND"
	case BlockSTDHEP4:
		return "STDHEP4"
	default:
		return fmt.Sprintf("block(%d)", int32(b))
	}
}

// Status is the outcome of one ReadEvent call.
type Status int

const (
	// StatusKeep means the event was decoded, validated and finalised.
	StatusKeep Status = iota
	// StatusSkip means the event must be ignored; reading may continue.
	StatusSkip
	// StatusFailure means the stream is exhausted or unreadable.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusKeep:
		return "KEEP"
	case StatusSkip:
		return "SKIP"
	case StatusFailure:
		return "FAILURE"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Generator is the event generator guessed from the file title.
type Generator int

const (
	GeneratorUnknown Generator = iota
	GeneratorPythia6
	GeneratorHerwig6
)

func (g Generator) String() string {
	switch g {
	case GeneratorPythia6:
		return "PYTHIA6"
	case GeneratorHerwig6:
		return "HERWIG6"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets encoders emit the generator by name.
func (g Generator) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Generator) UnmarshalText(b []byte) error {
	switch string(b) {
	case "PYTHIA6":
		*g = GeneratorPythia6
	case "HERWIG6":
		*g = GeneratorHerwig6
	case "UNKNOWN":
		*g = GeneratorUnknown
	default:
		return fmt.Errorf("stdhep: unknown generator %q", b)
	}
	return nil
}
