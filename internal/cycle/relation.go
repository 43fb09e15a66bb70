package cycle

// TenGod is the five-way grouping of the ten gods (sipseong), seen from the day element.
type TenGod int

const (
	Peer       TenGod = iota // 비겁: same element
	Expression               // 식상: the day element produces it
	Wealth                   // 재성: the day element overcomes it
	Authority                // 관성: it overcomes the day element
	Resource                 // 인성: it produces the day element
)

var tenGodNames = [...]string{"비겁", "식상", "재성", "관성", "인성"}
var tenGodKeys = [...]string{"peer", "expression", "wealth", "authority", "resource"}

func (g TenGod) String() string {
	if g < 0 || int(g) >= len(tenGodNames) {
		return ""
	}
	return tenGodNames[g]
}

// Key returns the identifier used in message catalogs.
func (g TenGod) Key() string {
	if g < 0 || int(g) >= len(tenGodKeys) {
		return ""
	}
	return tenGodKeys[g]
}

// TenGodOf classifies other relative to day. Total over all 25 pairs; the diagonal is Peer.
func TenGodOf(day, other Element) TenGod {
	switch {
	case other == day:
		return Peer
	case day.Produces() == other:
		return Expression
	case other.Produces() == day:
		return Resource
	case day.Overcomes() == other:
		return Wealth
	case other.Overcomes() == day:
		return Authority
	}
	// Unreachable for valid elements: any two distinct elements are one or two steps apart.
	return Peer
}

// TenGodOfStems applies TenGodOf to the elements of two stems.
func TenGodOfStems(day, other Stem) TenGod {
	return TenGodOf(day.Element(), other.Element())
}

// Relation is the direct production/destruction link between two elements, direction ignored.
type Relation int

const (
	Neutral Relation = iota
	Supportive
	Conflicting
)

func (r Relation) String() string {
	switch r {
	case Supportive:
		return "상생"
	case Conflicting:
		return "상극"
	default:
		return "중립"
	}
}

// RelationOf checks production first, then destruction, in either direction.
// Equal elements are neutral.
func RelationOf(a, b Element) Relation {
	if a.Produces() == b || b.Produces() == a {
		return Supportive
	}
	if a.Overcomes() == b || b.Overcomes() == a {
		return Conflicting
	}
	return Neutral
}

// RelationOfStems applies RelationOf to the elements of two stems.
func RelationOfStems(a, b Stem) Relation {
	return RelationOf(a.Element(), b.Element())
}
