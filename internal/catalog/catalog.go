// Package catalog holds the immutable content tables: hero, skill,
// equipment and enemy templates, chapters and stages, gacha banners and
// formations. The catalog is built once at process start, validated,
// and never mutated afterwards.
package catalog

import (
	"fmt"
	"sort"

	"github.com/ngoa-long/tamquoc/backend/internal/game"
)

// HeroTemplate defines a pullable or grantable hero.
type HeroTemplate struct {
	ID          string
	Name        string
	Title       string
	Element     game.Element
	Rarity      int
	BaseStats   game.HexagonStats
	GrowthRates map[string]float64
	SkillIDs    []string
	Lore        string
}

// SkillTemplate defines a skill; battle instances are stamped from it.
type SkillTemplate struct {
	ID          string
	Name        string
	Description string

	Type       game.SkillType
	TargetType game.TargetType
	Element    game.Element

	ManaCost int
	Cooldown int
	MaxLevel int

	DamageMultiplier float64
	HealMultiplier   float64
	BuffStats        map[string]float64
	DebuffEffects    map[string]float64
	AOERange         int
	Duration         int

	IsPassive  bool
	IsUltimate bool
}

// Instantiate stamps a live battle skill at the given level.
func (t *SkillTemplate) Instantiate(level int) *game.Skill {
	if level < 1 {
		level = 1
	}
	return &game.Skill{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		ManaCost:         t.ManaCost,
		Cooldown:         t.Cooldown,
		Level:            level,
		MaxLevel:         t.MaxLevel,
		Type:             t.Type,
		TargetType:       t.TargetType,
		Element:          t.Element,
		DamageMultiplier: t.DamageMultiplier,
		HealMultiplier:   t.HealMultiplier,
		BuffStats:        t.BuffStats,
		DebuffEffects:    t.DebuffEffects,
		AOERange:         t.AOERange,
		Duration:         t.Duration,
		IsPassive:        t.IsPassive,
		IsUltimate:       t.IsUltimate,
	}
}

// EquipmentTemplate defines a gear piece.
type EquipmentTemplate struct {
	ID        string
	Name      string
	Type      game.EquipmentType
	Rarity    game.Rarity
	BaseStats game.HexagonStats

	SetID        string
	UniqueEffect string

	RequiredLevel   int
	RequiredElement game.Element
}

// EquipmentSet grants bonuses at piece-count thresholds.
type EquipmentSet struct {
	ID      string
	Name    string
	Bonuses map[int]game.HexagonStats // pieces worn -> bonus
}

// EnemyTemplate defines a stage enemy or boss.
type EnemyTemplate struct {
	ID      string
	Name    string
	Title   string
	Element game.Element

	Behavior   game.EnemyBehavior
	Difficulty int
	IsBoss     bool

	BaseStats game.HexagonStats
	SkillIDs  []string
	Phases    []game.BossPhase

	ExpReward  int
	GoldReward int
	DropTable  []game.DropEntry
}

// Spawn builds a battle enemy at the given position.
func (t *EnemyTemplate) Spawn(id string, pos game.GridPosition) game.EnemyUnit {
	if t.IsBoss {
		b := game.NewBoss(id, t.ID, t.Name, t.Element, pos, t.BaseStats)
		b.Title = t.Title
		b.Phases = t.Phases
		if t.Behavior != "" {
			b.Behavior = t.Behavior
		}
		b.ExpReward = t.ExpReward
		b.GoldReward = t.GoldReward
		b.DropTable = t.DropTable
		b.Skills = append([]string(nil), t.SkillIDs...)
		return b
	}
	e := game.NewEnemy(id, t.ID, t.Name, t.Element, pos, t.BaseStats)
	if t.Behavior != "" {
		e.Behavior = t.Behavior
	}
	if t.Difficulty > 0 {
		e.Difficulty = t.Difficulty
	}
	e.ExpReward = t.ExpReward
	e.GoldReward = t.GoldReward
	e.DropTable = t.DropTable
	e.Skills = append([]string(nil), t.SkillIDs...)
	return e
}

// Stage is one battle node of a chapter.
type Stage struct {
	ID        string
	ChapterID string
	Number    int
	Name      string

	StaminaCost      int
	RecommendedPower int
	EnemyIDs         []string
	IsBossStage      bool

	FirstClearRewards map[string]int
	RepeatRewards     map[string]int
}

// Chapter is an ordered group of stages.
type Chapter struct {
	ID          string
	Number      int
	Name        string
	Description string
	Stages      []Stage
}

// Banner defines a gacha banner: rarity rate table, costs, pity and an
// optional featured rate-up.
type Banner struct {
	ID   string
	Name string

	// Rates maps rarity to percent; values sum to 100.
	Rates map[int]int

	CostSingle int
	CostMulti  int

	PityThreshold  int
	FeaturedHeroID string
	FeaturedRateUp int // percent of 5-star pulls going to the featured hero

	// Pools maps rarity to the hero template ids pullable at it.
	Pools map[int][]string
}

// Catalog is the full content registry.
type Catalog struct {
	heroes     map[string]*HeroTemplate
	skills     map[string]*SkillTemplate
	equipment  map[string]*EquipmentTemplate
	sets       map[string]*EquipmentSet
	enemies    map[string]*EnemyTemplate
	chapters   []Chapter
	stages     map[string]*Stage
	banners    map[string]*Banner
	formations map[string]*game.Formation
	mounts     map[string]*MountTemplate
}

// Default builds and validates the built-in content tables.
func Default() (*Catalog, error) {
	c := &Catalog{
		heroes:     make(map[string]*HeroTemplate),
		skills:     make(map[string]*SkillTemplate),
		equipment:  make(map[string]*EquipmentTemplate),
		sets:       make(map[string]*EquipmentSet),
		enemies:    make(map[string]*EnemyTemplate),
		stages:     make(map[string]*Stage),
		banners:    make(map[string]*Banner),
		formations: make(map[string]*game.Formation),
		mounts:     make(map[string]*MountTemplate),
	}
	for _, h := range heroTemplates() {
		c.heroes[h.ID] = h
	}
	for _, s := range skillTemplates() {
		c.skills[s.ID] = s
	}
	for _, set := range equipmentSets() {
		c.sets[set.ID] = set
	}
	for _, e := range equipmentTemplates() {
		c.equipment[e.ID] = e
	}
	for _, e := range enemyTemplates() {
		c.enemies[e.ID] = e
	}
	c.chapters = chapters()
	for i := range c.chapters {
		for j := range c.chapters[i].Stages {
			stage := &c.chapters[i].Stages[j]
			c.stages[stage.ID] = stage
		}
	}
	for _, b := range banners() {
		c.banners[b.ID] = b
	}
	for _, f := range formations() {
		c.formations[f.ID] = f
	}
	for _, m := range mountTemplates() {
		c.mounts[m.ID] = m
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDefault panics on an invalid built-in catalog; only for main and
// tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// validate cross-checks references so bad content fails at boot, not
// in a request.
func (c *Catalog) validate() error {
	for id, h := range c.heroes {
		if !h.Element.IsValid() {
			return fmt.Errorf("hero template %s: invalid element %q", id, h.Element)
		}
		for _, skillID := range h.SkillIDs {
			if _, ok := c.skills[skillID]; !ok {
				return fmt.Errorf("hero template %s: unknown skill %q", id, skillID)
			}
		}
	}
	for id, e := range c.enemies {
		for _, skillID := range e.SkillIDs {
			if _, ok := c.skills[skillID]; !ok {
				return fmt.Errorf("enemy template %s: unknown skill %q", id, skillID)
			}
		}
	}
	for id, stage := range c.stages {
		for _, enemyID := range stage.EnemyIDs {
			if _, ok := c.enemies[enemyID]; !ok {
				return fmt.Errorf("stage %s: unknown enemy %q", id, enemyID)
			}
		}
	}
	for id, eq := range c.equipment {
		if eq.SetID != "" {
			if _, ok := c.sets[eq.SetID]; !ok {
				return fmt.Errorf("equipment template %s: unknown set %q", id, eq.SetID)
			}
		}
	}
	for id, b := range c.banners {
		total := 0
		for _, pct := range b.Rates {
			total += pct
		}
		if total != 100 {
			return fmt.Errorf("banner %s: rates sum to %d, want 100", id, total)
		}
		if b.PityThreshold <= 0 {
			return fmt.Errorf("banner %s: pity threshold must be positive", id)
		}
		for rarity, pool := range b.Pools {
			if len(pool) == 0 {
				return fmt.Errorf("banner %s: empty pool for rarity %d", id, rarity)
			}
			for _, heroID := range pool {
				if _, ok := c.heroes[heroID]; !ok {
					return fmt.Errorf("banner %s: unknown hero %q in rarity %d pool", id, heroID, rarity)
				}
			}
		}
		if b.FeaturedHeroID != "" {
			if _, ok := c.heroes[b.FeaturedHeroID]; !ok {
				return fmt.Errorf("banner %s: unknown featured hero %q", id, b.FeaturedHeroID)
			}
		}
	}
	for id, m := range c.mounts {
		if m.Type == game.MountDragon && !m.Element.IsValid() {
			return fmt.Errorf("mount template %s: dragon needs a valid element, got %q", id, m.Element)
		}
	}
	return nil
}

// Hero looks up a hero template.
func (c *Catalog) Hero(id string) (*HeroTemplate, bool) {
	h, ok := c.heroes[id]
	return h, ok
}

// Heroes lists all hero templates sorted by id.
func (c *Catalog) Heroes() []*HeroTemplate {
	out := make([]*HeroTemplate, 0, len(c.heroes))
	for _, h := range c.heroes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Skill looks up a skill template.
func (c *Catalog) Skill(id string) (*SkillTemplate, bool) {
	s, ok := c.skills[id]
	return s, ok
}

// Skills lists all skill templates sorted by id.
func (c *Catalog) Skills() []*SkillTemplate {
	out := make([]*SkillTemplate, 0, len(c.skills))
	for _, s := range c.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Equipment looks up an equipment template.
func (c *Catalog) Equipment(id string) (*EquipmentTemplate, bool) {
	e, ok := c.equipment[id]
	return e, ok
}

// EquipmentTemplates lists all equipment templates sorted by id.
func (c *Catalog) EquipmentTemplates() []*EquipmentTemplate {
	out := make([]*EquipmentTemplate, 0, len(c.equipment))
	for _, e := range c.equipment {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EquipmentSet looks up a set definition.
func (c *Catalog) EquipmentSet(id string) (*EquipmentSet, bool) {
	s, ok := c.sets[id]
	return s, ok
}

// Enemy looks up an enemy template.
func (c *Catalog) Enemy(id string) (*EnemyTemplate, bool) {
	e, ok := c.enemies[id]
	return e, ok
}

// Chapters lists chapters in story order.
func (c *Catalog) Chapters() []Chapter { return c.chapters }

// Chapter looks up a chapter by id.
func (c *Catalog) Chapter(id string) (*Chapter, bool) {
	for i := range c.chapters {
		if c.chapters[i].ID == id {
			return &c.chapters[i], true
		}
	}
	return nil, false
}

// Stage looks up a stage by id.
func (c *Catalog) Stage(id string) (*Stage, bool) {
	s, ok := c.stages[id]
	return s, ok
}

// PrevStage returns the stage preceding s in its chapter, or nil for
// the first.
func (c *Catalog) PrevStage(s *Stage) *Stage {
	chapter, ok := c.Chapter(s.ChapterID)
	if !ok {
		return nil
	}
	for i := range chapter.Stages {
		if chapter.Stages[i].ID == s.ID && i > 0 {
			return &chapter.Stages[i-1]
		}
	}
	return nil
}

// PrevChapter returns the chapter before the given one in story order.
func (c *Catalog) PrevChapter(ch *Chapter) *Chapter {
	for i := range c.chapters {
		if c.chapters[i].ID == ch.ID && i > 0 {
			return &c.chapters[i-1]
		}
	}
	return nil
}

// Banner looks up a banner.
func (c *Catalog) Banner(id string) (*Banner, bool) {
	b, ok := c.banners[id]
	return b, ok
}

// Banners lists all banners sorted by id.
func (c *Catalog) Banners() []*Banner {
	out := make([]*Banner, 0, len(c.banners))
	for _, b := range c.banners {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Formation looks up a formation definition.
func (c *Catalog) Formation(id string) (*game.Formation, bool) {
	f, ok := c.formations[id]
	return f, ok
}

// Formations lists all formations sorted by id.
func (c *Catalog) Formations() []*game.Formation {
	out := make([]*game.Formation, 0, len(c.formations))
	for _, f := range c.formations {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Mount looks up a mount template.
func (c *Catalog) Mount(id string) (*MountTemplate, bool) {
	m, ok := c.mounts[id]
	return m, ok
}

// Mounts lists all mount templates sorted by id.
func (c *Catalog) Mounts() []*MountTemplate {
	out := make([]*MountTemplate, 0, len(c.mounts))
	for _, m := range c.mounts {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
