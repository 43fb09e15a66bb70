package cycle

// Pillar is a stem and branch pair.
type Pillar struct {
	Stem   Stem   `json:"stem" yaml:"stem"`
	Branch Branch `json:"branch" yaml:"branch"`
}

// NewPillar builds a pillar from raw cycle positions, normalizing them with floor modulo.
func NewPillar(stemIndex, branchIndex int) Pillar {
	return Pillar{Stem: StemAt(stemIndex), Branch: BranchAt(branchIndex)}
}

// String renders the two Korean symbols, e.g. "갑자".
func (p Pillar) String() string {
	return p.Stem.String() + p.Branch.String()
}

// Hanja renders the two Chinese characters, e.g. "甲子".
func (p Pillar) Hanja() string {
	return p.Stem.Hanja() + p.Branch.Hanja()
}

// Step moves both halves n positions along their cycles; n may be negative.
func (p Pillar) Step(n int) Pillar {
	return NewPillar(p.Stem.Index()+n, p.Branch.Index()+n)
}
