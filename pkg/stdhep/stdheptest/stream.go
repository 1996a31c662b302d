// Package stdheptest writes mcfio/STDHEP block streams for tests.
package stdheptest

import (
	"strings"

	"github.com/samcharles93/stdhep/internal/xdr/xdrtest"
)

// mcfio block identifiers.
const (
	BlockFileHeader  int32 = 1
	BlockEventTable  int32 = 2
	BlockEventHeader int32 = 4
	BlockSTDHEP      int32 = 101
	BlockRunBegin    int32 = 106
	BlockRunEnd      int32 = 107
	BlockSTDHEP4     int32 = 201
)

type FileHeader struct {
	Version      string
	Title        string
	Comment      string
	CreationDate string
	ClosingDate  string
	Expected     uint32
	Written      uint32
	FirstTable   uint64
	TableDim     uint32
	BlockIDs     []int32
	BlockNames   []string
	NTuples      uint32
}

type Particle struct {
	PDGID     int32
	Status    int32
	Mothers   [2]int32
	Daughters [2]int32
	P         [5]float64
	V         [4]float64
}

// Drop removes trailing elements from the named arrays of an event block.
type Drop struct {
	Status    int
	PDG       int
	Mothers   int
	Daughters int
	Momenta   int
	Vertices  int
}

type Event struct {
	Number    int32
	Particles []Particle
	// Count overrides the declared particle count when non-nil.
	Count *int32
	Drop  Drop

	// STDHEP4 trailer.
	Weight   float64
	AlphaQED float64
	AlphaQCD float64
	Dat      []float64
	Spint    []float64
	Idat     []int32
	Idrupt   int32
}

type Stream struct {
	w xdrtest.Writer
}

func (s *Stream) Bytes() []byte            { return s.w.Bytes() }
func (s *Stream) Writer() *xdrtest.Writer { return &s.w }

// Prologue writes a block id, element count and version string.
func (s *Stream) Prologue(id int32, version string) *Stream {
	s.w.Int32(id).Int32(1).String(version)
	return s
}

// FileHeader writes a header block laid out for h.Version.
func (s *Stream) FileHeader(h FileHeader) *Stream {
	s.Prologue(BlockFileHeader, h.Version)
	wide := h.Version == "2.01"
	s.w.String(h.Title).String(h.Comment).String(h.CreationDate)
	if wide {
		s.w.String(h.ClosingDate)
	}
	s.w.Uint32(h.Expected).Uint32(h.Written)
	if wide {
		s.w.Uint64(h.FirstTable)
	} else {
		s.w.Uint32(uint32(h.FirstTable))
	}
	s.w.Uint32(h.TableDim).Uint32(uint32(len(h.BlockIDs)))
	if !strings.HasPrefix(h.Version, "1") {
		s.w.Uint32(h.NTuples)
	}
	if len(h.BlockIDs) > 0 {
		s.w.Int32s(h.BlockIDs...)
		for i := range h.BlockIDs {
			name := ""
			if i < len(h.BlockNames) {
				name = h.BlockNames[i]
			}
			s.w.String(name)
		}
	}
	return s
}

// EventTable writes an event table with n entries.
func (s *Stream) EventTable(version string, n int) *Stream {
	s.Prologue(BlockEventTable, version)
	ints := make([]int32, n)
	masks := make([]uint32, n)
	s.w.Int32(-1)
	if version == "2.00" {
		s.w.Uint64(0)
	} else {
		s.w.Uint32(0)
	}
	s.w.Int32s(ints...).Int32s(ints...).Int32s(ints...).Uint32s(masks...)
	if version == "2.00" {
		s.w.Uint64s(make([]uint64, n)...)
	} else {
		s.w.Uint32s(masks...)
	}
	return s
}

// EventHeader writes an event header listing one block and, for versions
// carrying n-tuples, one n-tuple.
func (s *Stream) EventHeader(version string, evtnum int32) *Stream {
	s.Prologue(BlockEventHeader, version)
	ntuples := version == "2.00" || version == "3.00"
	wide := version == "3.00"
	s.w.Int32(evtnum).Int32(0).Int32(1).Int32(0)
	s.w.Uint32(1).Uint32(1)
	if ntuples {
		s.w.Uint32(1).Uint32(1)
	}
	s.w.Int32s(BlockSTDHEP)
	if wide {
		s.w.Uint64s(1 << 33)
	} else {
		s.w.Uint32s(64)
	}
	if ntuples {
		s.w.Int32s(7)
		if wide {
			s.w.Uint64s(1 << 34)
		} else {
			s.w.Uint32s(128)
		}
	}
	return s
}

// RunSummary writes an STDCM1 block with the trailing fields implied by version.
func (s *Stream) RunSummary(id int32, version string, xsec float32) *Stream {
	s.Prologue(id, version)
	s.w.Int32(1000).Int32(1000).Int32(1000)
	s.w.Float32(13000).Float32(xsec)
	s.w.Float64(12345).Float64(67890)
	for _, p := range []string{"1.", "2.", "3.", "4.", "5.00"} {
		if strings.HasPrefix(version, p) {
			return s
		}
	}
	s.w.String("PYTHIA").String("CTEQ6L1")
	if strings.HasPrefix(version, "5.01") {
		return s
	}
	s.w.Int32(3)
	return s
}

func (s *Stream) writeCore(ev Event) {
	n := int32(len(ev.Particles))
	if ev.Count != nil {
		n = *ev.Count
	}
	var (
		status, pdg, mothers, daughters []int32
		momenta, vertices                []float64
	)
	for _, p := range ev.Particles {
		status = append(status, p.Status)
		pdg = append(pdg, p.PDGID)
		mothers = append(mothers, p.Mothers[:]...)
		daughters = append(daughters, p.Daughters[:]...)
		momenta = append(momenta, p.P[:]...)
		vertices = append(vertices, p.V[:]...)
	}
	s.w.Int32(ev.Number).Int32(n)
	s.w.Int32s(trim(status, ev.Drop.Status)...)
	s.w.Int32s(trim(pdg, ev.Drop.PDG)...)
	s.w.Int32s(trim(mothers, ev.Drop.Mothers)...)
	s.w.Int32s(trim(daughters, ev.Drop.Daughters)...)
	s.w.Float64s(trim(momenta, ev.Drop.Momenta)...)
	s.w.Float64s(trim(vertices, ev.Drop.Vertices)...)
}

// STDHEP writes a classic particle block.
func (s *Stream) STDHEP(ev Event) *Stream {
	s.Prologue(BlockSTDHEP, "1.05")
	s.writeCore(ev)
	return s
}

// STDHEP4 writes an extended particle block with its weight trailer.
func (s *Stream) STDHEP4(ev Event) *Stream {
	s.Prologue(BlockSTDHEP4, "1.00")
	s.writeCore(ev)
	s.w.Float64(ev.Weight).Float64(ev.AlphaQED).Float64(ev.AlphaQCD)
	s.w.Float64s(ev.Dat...).Float64s(ev.Spint...).Int32s(ev.Idat...)
	s.w.Int32(ev.Idrupt)
	return s
}

func trim[T any](s []T, n int) []T {
	if n <= 0 {
		return s
	}
	if n > len(s) {
		return s[:0]
	}
	return s[:len(s)-n]
}
