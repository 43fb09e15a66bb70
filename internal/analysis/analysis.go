// Package analysis aggregates the four pillars into element and yin-yang counts.
package analysis

import (
	"github.com/tartampluch/go-saju/internal/cycle"
	"github.com/tartampluch/go-saju/internal/pillar"
)

// ElementCounts holds one counter per element.
// Invariant: Total() == 2 x number of present pillars.
type ElementCounts struct {
	Wood  int `json:"wood" yaml:"wood"`
	Fire  int `json:"fire" yaml:"fire"`
	Earth int `json:"earth" yaml:"earth"`
	Metal int `json:"metal" yaml:"metal"`
	Water int `json:"water" yaml:"water"`
}

// Of returns the count for an element.
func (c ElementCounts) Of(e cycle.Element) int {
	switch e {
	case cycle.Wood:
		return c.Wood
	case cycle.Fire:
		return c.Fire
	case cycle.Earth:
		return c.Earth
	case cycle.Metal:
		return c.Metal
	case cycle.Water:
		return c.Water
	}
	return 0
}

func (c *ElementCounts) add(e cycle.Element) {
	switch e {
	case cycle.Wood:
		c.Wood++
	case cycle.Fire:
		c.Fire++
	case cycle.Earth:
		c.Earth++
	case cycle.Metal:
		c.Metal++
	case cycle.Water:
		c.Water++
	}
}

// Total sums all counters.
func (c ElementCounts) Total() int {
	return c.Wood + c.Fire + c.Earth + c.Metal + c.Water
}

// Weakest returns the element with the lowest count; ties go to the first element in
// wood, fire, earth, metal, water order.
func (c ElementCounts) Weakest() cycle.Element {
	best := cycle.Wood
	for _, e := range cycle.Elements[1:] {
		if c.Of(e) < c.Of(best) {
			best = e
		}
	}
	return best
}

// Strongest returns the element with the highest count, same tie-break as Weakest.
func (c ElementCounts) Strongest() cycle.Element {
	best := cycle.Wood
	for _, e := range cycle.Elements[1:] {
		if c.Of(e) > c.Of(best) {
			best = e
		}
	}
	return best
}

// Missing lists the elements with a zero count, in element order.
func (c ElementCounts) Missing() []cycle.Element {
	var out []cycle.Element
	for _, e := range cycle.Elements {
		if c.Of(e) == 0 {
			out = append(out, e)
		}
	}
	return out
}

// YinYangCounts tallies polarities.
// Invariant: Yin + Yang == 2 x number of present pillars.
type YinYangCounts struct {
	Yin  int `json:"yin" yaml:"yin"`
	Yang int `json:"yang" yaml:"yang"`
}

// Total sums both sides.
func (c YinYangCounts) Total() int { return c.Yin + c.Yang }

func (c *YinYangCounts) add(p cycle.Polarity) {
	if p == cycle.Yang {
		c.Yang++
		return
	}
	c.Yin++
}

// CountElements adds one for the stem element and one for the branch element of every
// present pillar.
func CountElements(fp pillar.FourPillars) ElementCounts {
	var c ElementCounts
	for _, p := range fp.All() {
		c.add(p.Stem.Element())
		c.add(p.Branch.Element())
	}
	return c
}

// CountYinYang classifies every stem and branch of the present pillars.
func CountYinYang(fp pillar.FourPillars) YinYangCounts {
	var c YinYangCounts
	for _, p := range fp.All() {
		c.add(p.Stem.Polarity())
		c.add(p.Branch.Polarity())
	}
	return c
}
