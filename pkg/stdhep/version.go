package stdhep

import (
	"fmt"
	"strings"
)

// SchemaVersion is the file-level layout generation, fixed by the file header.
type SchemaVersion int

const (
	VersionUnknown SchemaVersion = iota
	V1
	V2
	V21
	V3
)

func (v SchemaVersion) String() string {
	switch v {
	case V1:
		return "V1"
	case V2:
		return "V2"
	case V21:
		return "V21"
	case V3:
		return "V3"
	default:
		return "UNKNOWN"
	}
}

func (v SchemaVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *SchemaVersion) UnmarshalText(b []byte) error {
	for _, c := range []SchemaVersion{VersionUnknown, V1, V2, V21, V3} {
		if c.String() == string(b) {
			*v = c
			return nil
		}
	}
	return fmt.Errorf("stdhep: unknown schema %q", b)
}

// ParseSchemaVersion resolves a file-header version string. "2.01" is the only
// exact match; other strings are classified by their leading digit.
func ParseSchemaVersion(s string) SchemaVersion {
	switch {
	case len(s) < 2:
		return VersionUnknown
	case s[0] == '1':
		return V1
	case s == "2.01":
		return V21
	case s[0] == '2':
		return V2
	case s[0] == '3':
		return V3
	default:
		return VersionUnknown
	}
}

// closingDate reports whether the header carries a closing date and a 64-bit
// first-table pointer.
func (v SchemaVersion) closingDate() bool { return v == V21 }

// ntuples reports whether the header carries an n-tuple count.
func (v SchemaVersion) ntuples() bool { return v != V1 }

// pointerWidth selects 32- or 64-bit file offsets in index arrays.
type pointerWidth int

const (
	pointer32 pointerWidth = 32
	pointer64 pointerWidth = 64
)

// eventTableLayout resolves an event-table version. Only the two documented
// strings are accepted.
func eventTableLayout(version string) (pointerWidth, error) {
	switch version {
	case "1.00":
		return pointer32, nil
	case "2.00":
		return pointer64, nil
	default:
		return 0, &VersionError{Block: BlockEventTable, Version: version, Err: ErrUnsupportedVersion}
	}
}

type eventHeaderLayout struct {
	ntuples bool
	width   pointerWidth
}

// eventHeaderLayoutFor never fails: unknown strings read the base layout.
func eventHeaderLayoutFor(version string) eventHeaderLayout {
	l := eventHeaderLayout{width: pointer32}
	switch version {
	case "2.00":
		l.ntuples = true
	case "3.00":
		l.ntuples = true
		l.width = pointer64
	}
	return l
}

type runSummaryLayout struct {
	names      bool
	lastEvents bool
}

// runSummaryLayoutFor gates the generator/PDF names (from 5.01) and the
// nevtlh counter (after 5.01).
func runSummaryLayoutFor(version string) runSummaryLayout {
	for _, p := range []string{"1.", "2.", "3.", "4.", "5.00"} {
		if strings.HasPrefix(version, p) {
			return runSummaryLayout{}
		}
	}
	if strings.HasPrefix(version, "5.01") {
		return runSummaryLayout{names: true}
	}
	return runSummaryLayout{names: true, lastEvents: true}
}

// generatorFromTitle applies the title heuristic used by STDHEP writers.
func generatorFromTitle(title string) Generator {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "pythia"):
		return GeneratorPythia6
	case strings.Contains(t, "herwig"):
		return GeneratorHerwig6
	default:
		return GeneratorUnknown
	}
}
