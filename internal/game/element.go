package game

// Element is one of the five Ngũ Hành elements.
type Element string

const (
	ElementKim  Element = "KIM"  // Metal
	ElementMoc  Element = "MOC"  // Wood
	ElementThuy Element = "THUY" // Water
	ElementHoa  Element = "HOA"  // Fire
	ElementTho  Element = "THO"  // Earth
)

// Tương Khắc: Kim khắc Mộc, Mộc khắc Thổ, Thổ khắc Thủy, Thủy khắc Hỏa, Hỏa khắc Kim.
var conquers = map[Element]Element{
	ElementKim:  ElementMoc,
	ElementMoc:  ElementTho,
	ElementTho:  ElementThuy,
	ElementThuy: ElementHoa,
	ElementHoa:  ElementKim,
}

// Elements lists all five elements in cycle order.
func Elements() []Element {
	return []Element{ElementKim, ElementMoc, ElementThuy, ElementHoa, ElementTho}
}

// IsValid reports whether e is one of the five elements.
func (e Element) IsValid() bool {
	_, ok := conquers[e]
	return ok
}

// StrongAgainst returns the element e conquers.
func (e Element) StrongAgainst() Element {
	return conquers[e]
}

// WeakAgainst returns the element that conquers e.
func (e Element) WeakAgainst() Element {
	for attacker, victim := range conquers {
		if victim == e {
			return attacker
		}
	}
	return ""
}

// Multiplier returns the damage multiplier when e attacks defender:
// 1.5 on advantage, 0.7 on disadvantage, 1.0 otherwise.
func (e Element) Multiplier(defender Element) float64 {
	switch {
	case conquers[e] == defender:
		return 1.5
	case conquers[defender] == e:
		return 0.7
	default:
		return 1.0
	}
}
