package game

import "errors"

// Team composition limits.
const (
	MaxTeamMembers   = 5
	MaxTeamsPerPlayer = 10
	adjacencyBonus   = 50 // power per same-element adjacent pair
)

// Team composition errors returned by mutation methods.
var (
	ErrTeamFull         = errors.New("team is full")
	ErrHeroAlreadyInTeam = errors.New("hero is already in team")
	ErrPositionOccupied = errors.New("position is already occupied")
	ErrHeroNotInTeam    = errors.New("hero is not in team")
)

// TeamSlot pairs a hero with its grid position.
type TeamSlot struct {
	Hero     *Hero        `json:"hero"`
	Position GridPosition `json:"position"`
}

// FormationBonus is one stat bonus a formation grants.
type FormationBonus struct {
	Stat  string    `json:"stat"`
	Value float64   `json:"value"`
	Kind  BonusKind `json:"kind"`
}

// Formation is an optional team-wide bonus gated on composition.
type Formation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	RequiredElements int      `json:"required_elements,omitempty"` // distinct element count
	RequiredHeroes   []string `json:"required_heroes,omitempty"`   // template ids
	MinMembers       int      `json:"min_members,omitempty"`

	Bonuses []FormationBonus `json:"bonuses"`
}

// CheckRequirements reports whether a team satisfies the formation.
func (f *Formation) CheckRequirements(team *Team) bool {
	if len(team.Members) < f.MinMembers {
		return false
	}
	if f.RequiredElements > 0 {
		seen := map[Element]bool{}
		for _, slot := range team.Members {
			seen[slot.Hero.Element] = true
		}
		if len(seen) < f.RequiredElements {
			return false
		}
	}
	if len(f.RequiredHeroes) > 0 {
		templates := map[string]bool{}
		for _, slot := range team.Members {
			templates[slot.Hero.TemplateID] = true
		}
		for _, required := range f.RequiredHeroes {
			if !templates[required] {
				return false
			}
		}
	}
	return true
}

// BonusValue sums the bonuses applying to a stat ("all" matches any).
func (f *Formation) BonusValue(stat string) float64 {
	total := 0.0
	for _, b := range f.Bonuses {
		if b.Stat == stat || b.Stat == "all" {
			total += b.Value
		}
	}
	return total
}

// Team is an owned hero composition of up to five slots with distinct
// heroes and distinct positions.
type Team struct {
	ID         string `json:"id"`
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	SlotNumber int    `json:"slot_number"`

	Members   []TeamSlot `json:"members"`
	Formation *Formation `json:"formation,omitempty"`
	IsDefault bool       `json:"is_default"`
}

// AddMember places a hero at a position, enforcing the size, unique
// hero, and unique position invariants.
func (t *Team) AddMember(hero *Hero, pos GridPosition) error {
	if len(t.Members) >= MaxTeamMembers {
		return ErrTeamFull
	}
	for _, slot := range t.Members {
		if slot.Hero.ID == hero.ID {
			return ErrHeroAlreadyInTeam
		}
		if slot.Position == pos {
			return ErrPositionOccupied
		}
	}
	t.Members = append(t.Members, TeamSlot{Hero: hero, Position: pos})
	return nil
}

// RemoveMember drops a hero from the team.
func (t *Team) RemoveMember(heroID string) error {
	for i, slot := range t.Members {
		if slot.Hero.ID == heroID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return nil
		}
	}
	return ErrHeroNotInTeam
}

// MoveMember relocates a hero to a free position.
func (t *Team) MoveMember(heroID string, pos GridPosition) error {
	for _, slot := range t.Members {
		if slot.Position == pos && slot.Hero.ID != heroID {
			return ErrPositionOccupied
		}
	}
	for i, slot := range t.Members {
		if slot.Hero.ID == heroID {
			t.Members[i].Position = pos
			return nil
		}
	}
	return ErrHeroNotInTeam
}

// MemberAt returns the hero occupying a position, if any.
func (t *Team) MemberAt(pos GridPosition) *Hero {
	for _, slot := range t.Members {
		if slot.Position == pos {
			return slot.Hero
		}
	}
	return nil
}

// Heroes lists the team's heroes in slot order.
func (t *Team) Heroes() []*Hero {
	out := make([]*Hero, len(t.Members))
	for i, slot := range t.Members {
		out[i] = slot.Hero
	}
	return out
}

// IsFormationActive reports whether the set formation's requirements hold.
func (t *Team) IsFormationActive() bool {
	return t.Formation != nil && t.Formation.CheckRequirements(t)
}

// ElementSynergy is the +50 power bonus per unordered same-element
// adjacent pair.
func (t *Team) ElementSynergy() int {
	bonus := 0
	for i, a := range t.Members {
		for _, b := range t.Members[i+1:] {
			if a.Hero.Element == b.Hero.Element && a.Position.IsAdjacent(b.Position) {
				bonus += adjacencyBonus
			}
		}
	}
	return bonus
}

// TotalPower sums member power, applies the active formation's "all"
// percent bonus, and adds element synergy.
func (t *Team) TotalPower() int {
	base := 0
	for _, slot := range t.Members {
		base += slot.Hero.TotalPower()
	}
	if t.IsFormationActive() {
		base = int(float64(base) * (1 + t.Formation.BonusValue("all")/100))
	}
	return base + t.ElementSynergy()
}

// ElementDistribution counts members per element.
func (t *Team) ElementDistribution() map[Element]int {
	dist := map[Element]int{}
	for _, slot := range t.Members {
		dist[slot.Hero.Element]++
	}
	return dist
}
