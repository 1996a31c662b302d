package stdhep

import (
	"fmt"
	"math"
)

// NoParticle marks an empty mother reference.
const NoParticle = -1

// Vec4 is a four-momentum (px, py, pz, E).
type Vec4 struct {
	Px float64 `json:"px" msgpack:"px"`
	Py float64 `json:"py" msgpack:"py"`
	Pz float64 `json:"pz" msgpack:"pz"`
	E  float64 `json:"e" msgpack:"e"`
}

func (v Vec4) Pt() float64 { return math.Hypot(v.Px, v.Py) }

func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{Px: v.Px - o.Px, Py: v.Py - o.Py, Pz: v.Pz - o.Pz, E: v.E - o.E}
}

// Transverse projects v onto the transverse plane: Pz is zeroed and E is set
// to the transverse magnitude.
func (v Vec4) Transverse() Vec4 {
	return Vec4{Px: v.Px, Py: v.Py, Pz: 0, E: v.Pt()}
}

// Particle is one entry of an event's particle arena. Mother1, Mother2 and
// Daughters are indices into Event.Particles.
type Particle struct {
	PDGID    int32      `json:"pdg_id" msgpack:"pdg_id"`
	Status   int32      `json:"status" msgpack:"status"`
	Momentum Vec4       `json:"momentum" msgpack:"momentum"`
	Mass     float64    `json:"mass" msgpack:"mass"`
	Vertex   [4]float64 `json:"vertex" msgpack:"vertex"`

	// Raw 1-based indices as stored in the file; 0 means none.
	Mothup1   int32 `json:"mothup1" msgpack:"mothup1"`
	Mothup2   int32 `json:"mothup2" msgpack:"mothup2"`
	Daughter1 int32 `json:"daughter1" msgpack:"daughter1"`
	Daughter2 int32 `json:"daughter2" msgpack:"daughter2"`

	Mother1   int   `json:"mother1" msgpack:"mother1"`
	Mother2   int   `json:"mother2" msgpack:"mother2"`
	Daughters []int `json:"daughters,omitempty" msgpack:"daughters,omitempty"`

	// Links holds how each of Mothup1 and Mothup2 resolved.
	Links [2]LinkResult `json:"links" msgpack:"links"`
}

// Final reports a final-state particle (status code 1).
func (p *Particle) Final() bool { return p.Status == 1 }

// BrokenLink records a mother index that could not be resolved.
type BrokenLink struct {
	Particle int   `json:"particle" msgpack:"particle"`
	Slot     int   `json:"slot" msgpack:"slot"`
	Index    int32 `json:"index" msgpack:"index"`
}

func (b BrokenLink) Error() string {
	return fmt.Sprintf("particle %d mother%d=%d: %v", b.Particle, b.Slot, b.Index, ErrMotherOutOfRange)
}

func (b BrokenLink) Unwrap() error { return ErrMotherOutOfRange }

// Event is one committed event. It owns its particles.
type Event struct {
	Number    int32      `json:"number" msgpack:"number"`
	Block     BlockID    `json:"block" msgpack:"block"`
	Particles []Particle `json:"particles" msgpack:"particles"`

	MET Vec4    `json:"met" msgpack:"met"`
	MHT Vec4    `json:"mht" msgpack:"mht"`
	TET float64 `json:"tet" msgpack:"tet"`
	THT float64 `json:"tht" msgpack:"tht"`

	Weight    float64 `json:"weight" msgpack:"weight"`
	AlphaQED  float64 `json:"alpha_qed" msgpack:"alpha_qed"`
	AlphaQCD  float64 `json:"alpha_qcd" msgpack:"alpha_qcd"`
	ProcessID int32   `json:"process_id" msgpack:"process_id"`

	BrokenLinks []BrokenLink `json:"broken_links,omitempty" msgpack:"broken_links,omitempty"`
}

// Particle returns the particle at idx, or nil when idx is not in the arena.
func (e *Event) Particle(idx int) *Particle {
	if idx < 0 || idx >= len(e.Particles) {
		return nil
	}
	return &e.Particles[idx]
}

// Mothers returns the resolved mothers of particle idx. A single-parent
// particle yields the same mother twice.
func (e *Event) Mothers(idx int) (*Particle, *Particle) {
	p := e.Particle(idx)
	if p == nil {
		return nil, nil
	}
	return e.Particle(p.Mother1), e.Particle(p.Mother2)
}

// FinalState returns the indices of all status-1 particles.
func (e *Event) FinalState() []int {
	var out []int
	for i := range e.Particles {
		if e.Particles[i].Final() {
			out = append(out, i)
		}
	}
	return out
}

// Xsection is a cross-section estimate in pb.
type Xsection struct {
	Mean  float64 `json:"mean" msgpack:"mean"`
	Error float64 `json:"error" msgpack:"error"`
}

// RunInfo is the content of the last STDCM1 run-summary block.
type RunInfo struct {
	Requested    int32   `json:"requested" msgpack:"requested"`
	Generated    int32   `json:"generated" msgpack:"generated"`
	Written      int32   `json:"written" msgpack:"written"`
	CMEnergy     float32 `json:"cm_energy" msgpack:"cm_energy"`
	Xsection     float32 `json:"xsection" msgpack:"xsection"`
	Seed1        float64 `json:"seed1" msgpack:"seed1"`
	Seed2        float64 `json:"seed2" msgpack:"seed2"`
	GeneratorTag string  `json:"generator_tag,omitempty" msgpack:"generator_tag,omitempty"`
	PDFTag       string  `json:"pdf_tag,omitempty" msgpack:"pdf_tag,omitempty"`
	LastEvents   int32   `json:"last_events,omitempty" msgpack:"last_events,omitempty"`
}

// Sample describes the file: header fields, generator and run summary.
type Sample struct {
	Version        string        `json:"version" msgpack:"version"`
	Schema         SchemaVersion `json:"schema" msgpack:"schema"`
	Generator      Generator     `json:"generator" msgpack:"generator"`
	Title          string        `json:"title" msgpack:"title"`
	Comment        string        `json:"comment" msgpack:"comment"`
	CreationDate   string        `json:"creation_date" msgpack:"creation_date"`
	ClosingDate    string        `json:"closing_date,omitempty" msgpack:"closing_date,omitempty"`
	ExpectedEvents uint32        `json:"expected_events" msgpack:"expected_events"`
	WrittenEvents  uint32        `json:"written_events" msgpack:"written_events"`
	FirstTable     uint64        `json:"first_table" msgpack:"first_table"`
	TableDim       uint32        `json:"table_dim" msgpack:"table_dim"`
	NTuples        uint32        `json:"ntuples" msgpack:"ntuples"`
	BlockIDs       []int32       `json:"block_ids,omitempty" msgpack:"block_ids,omitempty"`
	BlockNames     []string      `json:"block_names,omitempty" msgpack:"block_names,omitempty"`

	Xsection *Xsection `json:"xsection,omitempty" msgpack:"xsection,omitempty"`
	Run      *RunInfo  `json:"run,omitempty" msgpack:"run,omitempty"`
}
