// Package pdg classifies particles by their PDG Monte-Carlo numbering code.
package pdg

// Standard PDG codes referenced by the default tables.
const (
	Down        int32 = 1
	Up          int32 = 2
	Strange     int32 = 3
	Charm       int32 = 4
	Bottom      int32 = 5
	Top         int32 = 6
	NuE         int32 = 12
	NuMu        int32 = 14
	NuTau       int32 = 16
	Gluon       int32 = 21
	Neutralino1 int32 = 1000022
	Gravitino   int32 = 1000039

	kaonLong  int32 = 130
	kaonShort int32 = 310
)

// Table holds the invisible and hadronic code sets. Codes are compared by
// absolute value so antiparticles share their particle's classification.
type Table struct {
	invisible map[int32]struct{}
	hadronic  map[int32]struct{}
}

// NewTable builds a table from explicit code lists.
func NewTable(invisible, hadronic []int32) *Table {
	t := &Table{
		invisible: make(map[int32]struct{}, len(invisible)),
		hadronic:  make(map[int32]struct{}, len(hadronic)),
	}
	for _, id := range invisible {
		t.invisible[abs(id)] = struct{}{}
	}
	for _, id := range hadronic {
		t.hadronic[abs(id)] = struct{}{}
	}
	return t
}

// Standard returns the default table: neutrinos, the lightest neutralino and
// the gravitino are invisible; light quarks and the gluon are hadronic in
// addition to every code that the numbering scheme marks as a hadron.
func Standard() *Table {
	return NewTable(
		[]int32{NuE, NuMu, NuTau, Neutralino1, Gravitino},
		[]int32{Down, Up, Strange, Charm, Bottom, Gluon},
	)
}

// With returns a copy of t extended with extra codes.
func (t *Table) With(invisible, hadronic []int32) *Table {
	out := NewTable(nil, nil)
	for id := range t.invisible {
		out.invisible[id] = struct{}{}
	}
	for id := range t.hadronic {
		out.hadronic[id] = struct{}{}
	}
	for _, id := range invisible {
		out.invisible[abs(id)] = struct{}{}
	}
	for _, id := range hadronic {
		out.hadronic[abs(id)] = struct{}{}
	}
	return out
}

func (t *Table) Invisible(id int32) bool {
	_, ok := t.invisible[abs(id)]
	return ok
}

func (t *Table) Hadronic(id int32) bool {
	if _, ok := t.hadronic[abs(id)]; ok {
		return true
	}
	return IsHadron(id)
}

// IsHadron reports whether id follows the meson or baryon numbering scheme
// (nL nq1 nq2 nq3 nJ). Codes of seven digits or more (SUSY, excited states,
// nuclei) are excluded. K0L and K0S keep their historical codes 130 and 310.
func IsHadron(id int32) bool {
	a := abs(id)
	if a == kaonLong || a == kaonShort {
		return true
	}
	if a < 100 || a >= 1000000 {
		return false
	}
	nj := a % 10
	nq3 := (a / 10) % 10
	nq2 := (a / 100) % 10
	return nj != 0 && nq3 != 0 && nq2 != 0
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
