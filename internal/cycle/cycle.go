// Package cycle holds the fixed sexagenary tables: the ten heavenly stems, the twelve
// earthly branches, the five elements and the relations between them.
// Everything here is read-only data plus total lookup functions.
package cycle

import "fmt"

// -----------------------------------------------------------------------------
// Elements
// -----------------------------------------------------------------------------

// Element is one of the five phases.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// ElementCount is the number of elements.
const ElementCount = 5

// Elements lists the elements in production-cycle order.
// This is also the tie-break order used wherever "first element" matters.
var Elements = [ElementCount]Element{Wood, Fire, Earth, Metal, Water}

var elementNames = [ElementCount]string{"목", "화", "토", "금", "수"}
var elementKeys = [ElementCount]string{"wood", "fire", "earth", "metal", "water"}

// String returns the Korean name of the element.
func (e Element) String() string {
	if e < 0 || int(e) >= ElementCount {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Key returns the lowercase English identifier (used for message IDs and JSON keys).
func (e Element) Key() string {
	if e < 0 || int(e) >= ElementCount {
		return ""
	}
	return elementKeys[e]
}

// Produces returns the element this one generates.
// wood -> fire -> earth -> metal -> water -> wood
func (e Element) Produces() Element {
	return Element((int(e) + 1) % ElementCount)
}

// Overcomes returns the element this one destroys: two steps ahead in the production cycle.
// wood -> earth -> water -> fire -> metal -> wood
func (e Element) Overcomes() Element {
	return Element((int(e) + 2) % ElementCount)
}

// -----------------------------------------------------------------------------
// Polarity
// -----------------------------------------------------------------------------

// Polarity is yin or yang.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yang {
		return "양"
	}
	return "음"
}

// -----------------------------------------------------------------------------
// Stems
// -----------------------------------------------------------------------------

// Stem is a heavenly stem, index 0-9.
type Stem int

// StemCount is the length of the stem cycle.
const StemCount = 10

const (
	Gap Stem = iota
	Eul
	Byeong
	Jeong
	Mu
	Gi
	Gyeong
	Sin
	Im
	Gye
)

// Stems is the canonical stem order.
var Stems = [StemCount]Stem{Gap, Eul, Byeong, Jeong, Mu, Gi, Gyeong, Sin, Im, Gye}

var stemSymbols = [StemCount]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}
var stemHanja = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
var stemKeys = [StemCount]string{"gap", "eul", "byeong", "jeong", "mu", "gi", "gyeong", "sin", "im", "gye"}

// stemElements assigns two consecutive stems to each element.
var stemElements = [StemCount]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

// StemAt returns the stem at the given cycle position; any integer is accepted.
func StemAt(i int) Stem {
	return Stem(Mod(i, StemCount))
}

// Index returns the position of the stem in the cycle.
func (s Stem) Index() int { return int(s) }

// String returns the Korean symbol.
func (s Stem) String() string {
	if s < 0 || int(s) >= StemCount {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemSymbols[s]
}

// Key returns the romanized identifier used in message catalogs.
func (s Stem) Key() string {
	if s < 0 || int(s) >= StemCount {
		return ""
	}
	return stemKeys[s]
}

// Hanja returns the Chinese character for the stem.
func (s Stem) Hanja() string {
	if s < 0 || int(s) >= StemCount {
		return ""
	}
	return stemHanja[s]
}

// Element returns the element of the stem.
func (s Stem) Element() Element { return stemElements[s] }

// Polarity alternates by index parity: even stems are yang.
func (s Stem) Polarity() Polarity {
	if s%2 == 0 {
		return Yang
	}
	return Yin
}

// MarshalText renders the stem as its symbol.
func (s Stem) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= StemCount {
		return nil, fmt.Errorf("%s: %d", ErrUnknownStem, int(s))
	}
	return []byte(stemSymbols[s]), nil
}

// UnmarshalText parses a stem symbol.
func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStem accepts the Korean symbol or the Hanja of a stem.
func ParseStem(sym string) (Stem, error) {
	for i := range stemSymbols {
		if stemSymbols[i] == sym || stemHanja[i] == sym {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("%s: %q", ErrUnknownStem, sym)
}

// -----------------------------------------------------------------------------
// Branches
// -----------------------------------------------------------------------------

// Branch is an earthly branch, index 0-11.
type Branch int

// BranchCount is the length of the branch cycle.
const BranchCount = 12

const (
	Ja Branch = iota
	Chuk
	In
	Myo
	Jin
	Sa
	O
	Mi
	Sin2
	Yu
	Sul
	Hae
)

// Branches is the canonical branch order.
var Branches = [BranchCount]Branch{Ja, Chuk, In, Myo, Jin, Sa, O, Mi, Sin2, Yu, Sul, Hae}

// MonthBranchOrder starts at 인, the branch of the first solar month (spring begins).
var MonthBranchOrder = [BranchCount]Branch{In, Myo, Jin, Sa, O, Mi, Sin2, Yu, Sul, Hae, Ja, Chuk}

// TimeBranchOrder maps the twelve two-hour slots, slot 0 being 23:00-00:59.
// Same content as Branches; kept separate so the two uses can diverge.
var TimeBranchOrder = [BranchCount]Branch{Ja, Chuk, In, Myo, Jin, Sa, O, Mi, Sin2, Yu, Sul, Hae}

var branchSymbols = [BranchCount]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
var branchHanja = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// branchElements is irregular: the four earth branches sit between seasons.
var branchElements = [BranchCount]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}

// BranchAt returns the branch at the given cycle position; any integer is accepted.
func BranchAt(i int) Branch {
	return Branch(Mod(i, BranchCount))
}

// Index returns the position of the branch in the cycle.
func (b Branch) Index() int { return int(b) }

// String returns the Korean symbol.
func (b Branch) String() string {
	if b < 0 || int(b) >= BranchCount {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchSymbols[b]
}

// Hanja returns the Chinese character for the branch.
func (b Branch) Hanja() string {
	if b < 0 || int(b) >= BranchCount {
		return ""
	}
	return branchHanja[b]
}

// Element returns the element of the branch.
func (b Branch) Element() Element { return branchElements[b] }

// Polarity follows the yang set {자, 인, 진, 오, 신, 술}.
func (b Branch) Polarity() Polarity {
	switch b {
	case Ja, In, Jin, O, Sin2, Sul:
		return Yang
	default:
		return Yin
	}
}

// MarshalText renders the branch as its symbol.
func (b Branch) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= BranchCount {
		return nil, fmt.Errorf("%s: %d", ErrUnknownBranch, int(b))
	}
	return []byte(branchSymbols[b]), nil
}

// UnmarshalText parses a branch symbol.
func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBranch accepts the Korean symbol or the Hanja of a branch.
func ParseBranch(sym string) (Branch, error) {
	for i := range branchSymbols {
		if branchSymbols[i] == sym || branchHanja[i] == sym {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("%s: %q", ErrUnknownBranch, sym)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// Mod is floor modulo: the result is always in [0, n).
func Mod(a, n int) int {
	return ((a % n) + n) % n
}

const (
	ErrUnknownStem   = "unknown heavenly stem"
	ErrUnknownBranch = "unknown earthly branch"
)
