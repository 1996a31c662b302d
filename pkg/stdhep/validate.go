package stdhep

import "fmt"

// validate checks the parallel arrays against the declared particle count.
func (b *rawEvent) validate() error {
	n := int(b.count)
	if n < 0 {
		return b.corrupt("nhep", fmt.Sprintf("negative particle count %d", n))
	}
	checks := []struct {
		field string
		got   int
		want  int
	}{
		{"isthep", len(b.status), n},
		{"idhep", len(b.pdg), n},
		{"jmohep", len(b.mothers), 2 * n},
		{"jdahep", len(b.daughters), 2 * n},
		{"phep", len(b.momenta), 5 * n},
		{"vhep", len(b.vertices), 4 * n},
	}
	for _, c := range checks {
		if c.got != c.want {
			return b.corrupt(c.field, fmt.Sprintf("got %d elements, want %d", c.got, c.want))
		}
	}
	return nil
}

func (b *rawEvent) corrupt(field, reason string) error {
	return &CorruptBlockError{Block: b.block, Field: field, Event: b.number, Reason: reason}
}
