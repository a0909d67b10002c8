package catalog

import (
	"fmt"
	"sort"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// SeedDatabase mirrors the catalog into the template tables so tooling
// and ad-hoc queries can see the content the server runs with. Rows are
// upserted by primary key.
func SeedDatabase(db *gorm.DB, c *Catalog) error {
	// A chained *gorm.DB caches the first model's schema in its
	// statement, so the upsert clause has to be re-applied per Create.
	upsert := func(row any) error {
		return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
	}

	for _, h := range c.Heroes() {
		row := models.HeroTemplate{
			ID:          h.ID,
			Name:        h.Name,
			Title:       h.Title,
			Element:     string(h.Element),
			Rarity:      h.Rarity,
			BaseStats:   models.IntMap(h.BaseStats.ToMap()),
			GrowthRates: models.FloatMap(h.GrowthRates),
			SkillIDs:    models.StringSlice(h.SkillIDs),
			Lore:        h.Lore,
		}
		if err := upsert(&row); err != nil {
			return fmt.Errorf("seed hero template %s: %w", h.ID, err)
		}
	}

	for _, s := range c.Skills() {
		row := models.SkillTemplate{
			ID:               s.ID,
			Name:             s.Name,
			Description:      s.Description,
			Type:             string(s.Type),
			TargetType:       string(s.TargetType),
			Element:          string(s.Element),
			ManaCost:         s.ManaCost,
			Cooldown:         s.Cooldown,
			MaxLevel:         s.MaxLevel,
			DamageMultiplier: s.DamageMultiplier,
			HealMultiplier:   s.HealMultiplier,
			BuffStats:        models.FloatMap(s.BuffStats),
			DebuffEffects:    models.FloatMap(s.DebuffEffects),
			Duration:         s.Duration,
			IsPassive:        s.IsPassive,
			IsUltimate:       s.IsUltimate,
		}
		if err := upsert(&row); err != nil {
			return fmt.Errorf("seed skill template %s: %w", s.ID, err)
		}
	}

	for _, setID := range sortedSetIDs(c) {
		set := c.sets[setID]
		bonuses := models.JSONMap{}
		for pieces, stats := range set.Bonuses {
			bonuses[strconv.Itoa(pieces)] = stats.ToMap()
		}
		row := models.EquipmentSet{ID: set.ID, Name: set.Name, Bonuses: bonuses}
		if err := upsert(&row); err != nil {
			return fmt.Errorf("seed equipment set %s: %w", set.ID, err)
		}
	}

	for _, id := range sortedEquipmentIDs(c) {
		e := c.equipment[id]
		row := models.EquipmentTemplate{
			ID:              e.ID,
			Name:            e.Name,
			Type:            string(e.Type),
			Rarity:          string(e.Rarity),
			BaseStats:       models.IntMap(e.BaseStats.ToMap()),
			UniqueEffect:    e.UniqueEffect,
			RequiredLevel:   e.RequiredLevel,
			RequiredElement: string(e.RequiredElement),
		}
		if e.SetID != "" {
			setID := e.SetID
			row.SetID = &setID
		}
		if err := upsert(&row); err != nil {
			return fmt.Errorf("seed equipment template %s: %w", e.ID, err)
		}
	}

	for _, id := range sortedEnemyIDs(c) {
		e := c.enemies[id]
		row := models.EnemyTemplate{
			ID:         e.ID,
			Name:       e.Name,
			Title:      e.Title,
			Element:    string(e.Element),
			Behavior:   string(e.Behavior),
			Difficulty: e.Difficulty,
			IsBoss:     e.IsBoss,
			BaseStats:  models.IntMap(e.BaseStats.ToMap()),
			SkillIDs:   models.StringSlice(e.SkillIDs),
			ExpReward:  e.ExpReward,
			GoldReward: e.GoldReward,
		}
		if len(e.Phases) > 0 {
			row.Phases = models.JSONMap{"phases": e.Phases}
		}
		if len(e.DropTable) > 0 {
			row.DropTable = models.JSONMap{"entries": e.DropTable}
		}
		if err := upsert(&row); err != nil {
			return fmt.Errorf("seed enemy template %s: %w", e.ID, err)
		}
	}

	for _, m := range c.Mounts() {
		row := models.MountTemplate{
			ID:        m.ID,
			Name:      m.Name,
			Type:      string(m.Type),
			Rarity:    m.Rarity,
			Element:   string(m.Element),
			BaseStats: models.IntMap(m.BaseStats.ToMap()),
		}
		if len(m.TeamBonuses) > 0 {
			row.TeamBonuses = models.JSONMap{"bonuses": m.TeamBonuses}
		}
		if len(m.Evolutions) > 0 {
			row.Evolutions = models.JSONMap{"stages": m.Evolutions}
		}
		if err := upsert(&row); err != nil {
			return fmt.Errorf("seed mount template %s: %w", m.ID, err)
		}
	}

	for _, ch := range c.Chapters() {
		row := models.Chapter{
			ID:          ch.ID,
			Number:      ch.Number,
			Name:        ch.Name,
			Description: ch.Description,
		}
		if err := upsert(&row); err != nil {
			return fmt.Errorf("seed chapter %s: %w", ch.ID, err)
		}
		for _, st := range ch.Stages {
			stageRow := models.Stage{
				ID:                st.ID,
				ChapterID:         st.ChapterID,
				Number:            st.Number,
				Name:              st.Name,
				StaminaCost:       st.StaminaCost,
				RecommendedPower:  st.RecommendedPower,
				EnemyIDs:          models.StringSlice(st.EnemyIDs),
				IsBossStage:       st.IsBossStage,
				FirstClearRewards: models.IntMap(st.FirstClearRewards),
				RepeatRewards:     models.IntMap(st.RepeatRewards),
			}
			if err := upsert(&stageRow); err != nil {
				return fmt.Errorf("seed stage %s: %w", st.ID, err)
			}
		}
	}

	return nil
}

func sortedSetIDs(c *Catalog) []string { return sortedKeys(c.sets) }

func sortedEquipmentIDs(c *Catalog) []string { return sortedKeys(c.equipment) }

func sortedEnemyIDs(c *Catalog) []string { return sortedKeys(c.enemies) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
