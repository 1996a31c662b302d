package stdhep

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/samcharles93/stdhep/internal/logger"
	"github.com/samcharles93/stdhep/internal/pdg"
	"github.com/samcharles93/stdhep/pkg/stdhep/stdheptest"
)

func readSingle(t *testing.T, ev stdheptest.Event, opts Options) *Event {
	t.Helper()
	s := newStream()
	s.STDHEP(ev)
	return mustKeep(t, openStream(t, s, opts))
}

func TestSingleParentShorthand(t *testing.T) {
	t.Parallel()

	ev := chain(1, 4)
	ev.Particles[0].Mothers = [2]int32{0, 0}
	ev.Particles[3].Mothers = [2]int32{3, 0}
	got := readSingle(t, ev, Options{})

	root := got.Particles[0]
	if root.Mother1 != NoParticle || root.Mother2 != NoParticle {
		t.Fatalf("0/0 mothers: got %d %d", root.Mother1, root.Mother2)
	}
	leaf := got.Particles[3]
	if leaf.Mother1 != 2 || leaf.Mother2 != 2 {
		t.Fatalf("3/0 mothers: got %d %d want 2 2", leaf.Mother1, leaf.Mother2)
	}
	if leaf.Mothup1 != 3 || leaf.Mothup2 != 0 {
		t.Fatalf("raw indices changed: %d %d", leaf.Mothup1, leaf.Mothup2)
	}
	if want := []int{3, 3}; !reflect.DeepEqual(got.Particles[2].Daughters, want) {
		t.Fatalf("daughters of 2: got %v want %v", got.Particles[2].Daughters, want)
	}
	m1, m2 := got.Mothers(3)
	if m1 != &got.Particles[2] || m2 != &got.Particles[2] {
		t.Fatalf("Mothers(3) did not resolve to particle 2")
	}
	if m1, m2 := got.Mothers(0); m1 != nil || m2 != nil {
		t.Fatalf("Mothers(0): got %v %v", m1, m2)
	}
	if len(got.BrokenLinks) != 0 {
		t.Fatalf("broken links: %v", got.BrokenLinks)
	}
	if want := [2]LinkResult{LinkNone, LinkNone}; root.Links != want {
		t.Fatalf("root links: got %v want %v", root.Links, want)
	}
	if want := [2]LinkResult{LinkResolved, LinkResolved}; leaf.Links != want {
		t.Fatalf("leaf links: got %v want %v", leaf.Links, want)
	}
}

func TestTwoMothers(t *testing.T) {
	t.Parallel()

	ev := chain(1, 3)
	ev.Particles[1].Mothers = [2]int32{0, 0}
	ev.Particles[2].Mothers = [2]int32{1, 2}
	got := readSingle(t, ev, Options{})

	if p := got.Particles[2]; p.Mother1 != 0 || p.Mother2 != 1 {
		t.Fatalf("mothers: got %d %d", p.Mother1, p.Mother2)
	}
	if !reflect.DeepEqual(got.Particles[0].Daughters, []int{2}) || !reflect.DeepEqual(got.Particles[1].Daughters, []int{2}) {
		t.Fatalf("daughters: %v %v", got.Particles[0].Daughters, got.Particles[1].Daughters)
	}
}

func TestMotherOutOfRange(t *testing.T) {
	t.Parallel()

	const n = 4
	ev := chain(3, n)
	ev.Particles[1].Mothers = [2]int32{n + 5, 0}
	ev.Particles[2].Mothers = [2]int32{2, -1}

	var buf bytes.Buffer
	log := logger.New(&buf, logger.FormatJSON, slog.LevelDebug)
	got := readSingle(t, ev, Options{Logger: log})

	if p := got.Particles[1]; p.Mother1 != NoParticle || p.Mother2 != NoParticle {
		t.Fatalf("out of range mothers: got %d %d", p.Mother1, p.Mother2)
	}
	if p := got.Particles[2]; p.Mother1 != 1 || p.Mother2 != NoParticle {
		t.Fatalf("partially valid mothers: got %d %d", p.Mother1, p.Mother2)
	}
	if p := got.Particles[3]; p.Mother1 != 2 || p.Mother2 != 2 {
		t.Fatalf("unaffected link: got %d %d", p.Mother1, p.Mother2)
	}
	if len(got.Particles[0].Daughters) != 0 {
		t.Fatalf("particle 0 gained daughters: %v", got.Particles[0].Daughters)
	}
	if !reflect.DeepEqual(got.Particles[1].Daughters, []int{2}) {
		t.Fatalf("particle 1 daughters: %v", got.Particles[1].Daughters)
	}

	want := []BrokenLink{
		{Particle: 1, Slot: 1, Index: n + 5},
		{Particle: 1, Slot: 2, Index: n + 5},
		{Particle: 2, Slot: 2, Index: -1},
	}
	if !reflect.DeepEqual(got.BrokenLinks, want) {
		t.Fatalf("broken links: got %+v want %+v", got.BrokenLinks, want)
	}
	for _, bl := range got.BrokenLinks {
		if !errors.Is(bl, ErrMotherOutOfRange) || Classify(bl) != SeverityParticle {
			t.Fatalf("broken link %v does not classify as particle-level", bl)
		}
	}
	links := []struct {
		particle int
		want     [2]LinkResult
	}{
		{1, [2]LinkResult{LinkOutOfRange, LinkOutOfRange}},
		{2, [2]LinkResult{LinkResolved, LinkOutOfRange}},
		{3, [2]LinkResult{LinkResolved, LinkResolved}},
	}
	for _, tc := range links {
		if got := got.Particles[tc.particle].Links; got != tc.want {
			t.Fatalf("particle %d links: got %v want %v", tc.particle, got, tc.want)
		}
	}
	if c := strings.Count(buf.String(), "mother index out of range"); c != 3 {
		t.Fatalf("warnings logged: got %d want 3\n%s", c, buf.String())
	}
}

func TestMissingTransverseEnergy(t *testing.T) {
	t.Parallel()

	ev := stdheptest.Event{Number: 1, Particles: []stdheptest.Particle{electron(3, 4, 0, 5)}}
	got := readSingle(t, ev, Options{})

	if want := (Vec4{Px: -3, Py: -4, Pz: 0, E: 5}); got.MET != want {
		t.Fatalf("MET: got %+v want %+v", got.MET, want)
	}
	if got.MET.Pt() != 5 || got.TET != 5 {
		t.Fatalf("MET pt=%v TET=%v, want 5 5", got.MET.Pt(), got.TET)
	}
	if got.MHT != (Vec4{}) || got.THT != 0 {
		t.Fatalf("hadronic sums for an electron: MHT=%+v THT=%v", got.MHT, got.THT)
	}
}

func TestHadronicAndInvisibleSums(t *testing.T) {
	t.Parallel()

	pion := stdheptest.Particle{PDGID: 211, Status: 1, P: [5]float64{0, 6, 10, 12, 0.139}}
	nu := stdheptest.Particle{PDGID: -12, Status: 1, P: [5]float64{100, 0, 0, 100, 0}}
	decayed := stdheptest.Particle{PDGID: 23, Status: 2, P: [5]float64{50, 50, 50, 100, 91}}
	lepton := electron(3, 4, 20, 25)

	ev := stdheptest.Event{Number: 1, Particles: []stdheptest.Particle{decayed, lepton, pion, nu}}
	got := readSingle(t, ev, Options{})

	if want := (Vec4{Px: -3, Py: -10, Pz: 0, E: got.MET.Pt()}); got.MET != want {
		t.Fatalf("MET: got %+v want %+v", got.MET, want)
	}
	if got.TET != 11 {
		t.Fatalf("TET: got %v want 11", got.TET)
	}
	if want := (Vec4{Px: 0, Py: -6, Pz: 0, E: 6}); got.MHT != want {
		t.Fatalf("MHT: got %+v want %+v", got.MHT, want)
	}
	if got.THT != 6 {
		t.Fatalf("THT: got %v want 6", got.THT)
	}
}

type stubClassifier struct{}

func (stubClassifier) IsInvisible(p *Particle) bool { return p.PDGID == 11 }
func (stubClassifier) IsHadronic(p *Particle) bool  { return true }

func TestCustomClassifier(t *testing.T) {
	t.Parallel()

	ev := stdheptest.Event{Number: 1, Particles: []stdheptest.Particle{
		electron(3, 4, 0, 5),
		{PDGID: 13, Status: 1, P: [5]float64{0, 2, 0, 2, 0.105}},
	}}
	got := readSingle(t, ev, Options{Classifier: stubClassifier{}})
	if got.TET != 2 || got.THT != 2 {
		t.Fatalf("sums: TET=%v THT=%v want 2 2", got.TET, got.THT)
	}

	table := TableClassifier{Table: pdg.Standard().With([]int32{13}, nil)}
	got = readSingle(t, ev, Options{Classifier: table})
	if got.TET != 5 {
		t.Fatalf("TET with muon invisible: got %v want 5", got.TET)
	}
}

func TestParticleFields(t *testing.T) {
	t.Parallel()

	p := stdheptest.Particle{
		PDGID:     -5,
		Status:    2,
		Daughters: [2]int32{4, 7},
		P:         [5]float64{1, 2, 3, 40, 4.8},
		V:         [4]float64{0.1, 0.2, 0.3, 0.4},
	}
	got := readSingle(t, stdheptest.Event{Number: 9, Particles: []stdheptest.Particle{p}}, Options{})

	q := got.Particle(0)
	if q == nil || got.Particle(1) != nil || got.Particle(-1) != nil {
		t.Fatalf("Particle bounds")
	}
	if q.PDGID != -5 || q.Status != 2 || q.Mass != 4.8 {
		t.Fatalf("fields: %+v", q)
	}
	if q.Momentum != (Vec4{Px: 1, Py: 2, Pz: 3, E: 40}) || q.Vertex != p.V {
		t.Fatalf("kinematics: %+v %v", q.Momentum, q.Vertex)
	}
	if q.Daughter1 != 4 || q.Daughter2 != 7 {
		t.Fatalf("raw daughters: %d %d", q.Daughter1, q.Daughter2)
	}
	if len(got.FinalState()) != 0 {
		t.Fatalf("final state: %v", got.FinalState())
	}
}

func TestEmptyEvent(t *testing.T) {
	t.Parallel()

	got := readSingle(t, stdheptest.Event{Number: 4}, Options{})
	if len(got.Particles) != 0 || got.MET != (Vec4{}) || got.TET != 0 {
		t.Fatalf("empty event: %+v", got)
	}
}

func TestLinkResultText(t *testing.T) {
	t.Parallel()

	for _, r := range []LinkResult{LinkNone, LinkResolved, LinkOutOfRange} {
		b, err := r.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", r, err)
		}
		var back LinkResult
		if err := back.UnmarshalText(b); err != nil || back != r {
			t.Fatalf("unmarshal %q: got %v err=%v", b, back, err)
		}
	}
	var r LinkResult
	if err := r.UnmarshalText([]byte("dangling")); err == nil {
		t.Fatalf("expected error for unknown link result")
	}
}
