package stdhep

import (
	"fmt"

	"github.com/samcharles93/stdhep/internal/logger"
)

// LinkResult is the outcome of resolving one mother reference.
type LinkResult int

const (
	LinkNone LinkResult = iota
	LinkResolved
	LinkOutOfRange
)

func (r LinkResult) String() string {
	switch r {
	case LinkNone:
		return "none"
	case LinkResolved:
		return "resolved"
	case LinkOutOfRange:
		return "out_of_range"
	default:
		return fmt.Sprintf("link(%d)", int(r))
	}
}

func (r LinkResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *LinkResult) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none":
		*r = LinkNone
	case "resolved":
		*r = LinkResolved
	case "out_of_range":
		*r = LinkOutOfRange
	default:
		return fmt.Errorf("unknown link result %q", b)
	}
	return nil
}

// finalizer turns validated raw buffers into an Event. It remembers the last
// accepted event number across calls.
type finalizer struct {
	classifier Classifier
	log        logger.Logger

	last     int32
	accepted bool
}

// finalize builds the particle graph and kinematic sums for b. A repeat of
// the previously accepted event number is rejected with ErrDuplicateEvent and
// leaves the remembered number untouched.
func (f *finalizer) finalize(b *rawEvent) (*Event, error) {
	if f.accepted && b.number == f.last {
		return nil, fmt.Errorf("finalize event %d: %w", b.number, ErrDuplicateEvent)
	}

	n := int(b.count)
	ev := &Event{
		Number:    b.number,
		Block:     b.block,
		Particles: make([]Particle, n),
		Weight:    b.weight,
		AlphaQED:  b.alphaQED,
		AlphaQCD:  b.alphaQCD,
		ProcessID: b.idrupt,
	}
	for i := range ev.Particles {
		p := &ev.Particles[i]
		m := b.momenta[5*i : 5*i+5]
		p.PDGID = b.pdg[i]
		p.Status = b.status[i]
		p.Momentum = Vec4{Px: m[0], Py: m[1], Pz: m[2], E: m[3]}
		p.Mass = m[4]
		copy(p.Vertex[:], b.vertices[4*i:4*i+4])
		p.Mothup1 = b.mothers[2*i]
		p.Mothup2 = b.mothers[2*i+1]
		p.Daughter1 = b.daughters[2*i]
		p.Daughter2 = b.daughters[2*i+1]
		p.Mother1 = NoParticle
		p.Mother2 = NoParticle
	}

	for i := range ev.Particles {
		p := &ev.Particles[i]
		m1, m2 := p.Mothup1, p.Mothup2
		if m1 != 0 && m2 == 0 {
			m2 = m1
		}
		p.Links = [2]LinkResult{f.link(ev, i, 1, m1), f.link(ev, i, 2, m2)}

		if !p.Final() || f.classifier.IsInvisible(p) {
			continue
		}
		pt := p.Momentum.Pt()
		ev.MET = ev.MET.Sub(p.Momentum)
		ev.TET += pt
		if f.classifier.IsHadronic(p) {
			ev.MHT = ev.MHT.Sub(p.Momentum)
			ev.THT += pt
		}
	}
	ev.MET = ev.MET.Transverse()
	ev.MHT = ev.MHT.Transverse()

	f.last = b.number
	f.accepted = true
	return ev, nil
}

// link resolves the 1-based mother index k into slot 1 or 2 of particle
// child. Unresolvable indices are recorded on the event and logged.
func (f *finalizer) link(ev *Event, child, slot int, k int32) LinkResult {
	if k == 0 {
		return LinkNone
	}
	if k < 1 || int(k) > len(ev.Particles) {
		bl := BrokenLink{Particle: child, Slot: slot, Index: k}
		ev.BrokenLinks = append(ev.BrokenLinks, bl)
		f.log.Warn("mother index out of range",
			"event", ev.Number,
			"particle", child,
			"slot", slot,
			"index", k,
			"particles", len(ev.Particles),
		)
		return LinkOutOfRange
	}
	mother := int(k) - 1
	if slot == 1 {
		ev.Particles[child].Mother1 = mother
	} else {
		ev.Particles[child].Mother2 = mother
	}
	ev.Particles[mother].Daughters = append(ev.Particles[mother].Daughters, child)
	return LinkResolved
}
