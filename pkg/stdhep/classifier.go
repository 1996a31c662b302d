package stdhep

import "github.com/samcharles93/stdhep/internal/pdg"

// Classifier decides which final-state particles enter the missing-energy
// and hadronic sums.
type Classifier interface {
	IsInvisible(p *Particle) bool
	IsHadronic(p *Particle) bool
}

// TableClassifier classifies particles by PDG code using a pdg.Table.
type TableClassifier struct {
	Table *pdg.Table
}

// DefaultClassifier uses the standard neutrino/LSP and parton tables.
func DefaultClassifier() TableClassifier {
	return TableClassifier{Table: pdg.Standard()}
}

func (c TableClassifier) IsInvisible(p *Particle) bool { return c.Table.Invisible(p.PDGID) }
func (c TableClassifier) IsHadronic(p *Particle) bool  { return c.Table.Hadronic(p.PDGID) }
