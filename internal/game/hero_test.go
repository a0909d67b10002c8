package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementCycle(t *testing.T) {
	assert.Equal(t, 1.5, ElementKim.Multiplier(ElementMoc))
	assert.Equal(t, 1.5, ElementMoc.Multiplier(ElementTho))
	assert.Equal(t, 1.5, ElementTho.Multiplier(ElementThuy))
	assert.Equal(t, 1.5, ElementThuy.Multiplier(ElementHoa))
	assert.Equal(t, 1.5, ElementHoa.Multiplier(ElementKim))

	assert.Equal(t, 0.7, ElementMoc.Multiplier(ElementKim))
	assert.Equal(t, 1.0, ElementKim.Multiplier(ElementKim))
	assert.Equal(t, 1.0, ElementKim.Multiplier(ElementThuy))
}

func TestRequiredExpCurve(t *testing.T) {
	assert.Equal(t, 100, RequiredExp(1))
	assert.Equal(t, 300, RequiredExp(5))
	assert.Equal(t, 800, RequiredExp(10))
	// Past the table: 100 + 50*level.
	assert.Equal(t, 650, RequiredExp(11))
	assert.Equal(t, 1100, RequiredExp(20))
}

func TestGainExpLevelsUpAndCarriesRemainder(t *testing.T) {
	h := testHero("h", ElementKim, 0, 0, 100, 10, 5, 100)

	res := h.GainExp(260)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.OldLevel)
	assert.Equal(t, 3, res.NewLevel)
	assert.Equal(t, 10, res.ExpRemaining) // 260 - 100 - 150
}

func TestGainExpStopsAtAscensionCap(t *testing.T) {
	h := testHero("h", ElementKim, 0, 0, 100, 10, 5, 100)
	h.GainExp(1_000_000)

	assert.Equal(t, BaseMaxLevel, h.Level)
	assert.True(t, h.CanAscend())

	h.AscensionLevel = 1
	assert.Equal(t, 30, h.MaxLevel())
	assert.False(t, h.CanAscend()) // next gate is level 30
}

func TestAscensionRequirements(t *testing.T) {
	h := testHero("h", ElementKim, 0, 0, 100, 10, 5, 100)
	for asc, want := range map[int]int{0: 20, 1: 30, 2: 40, 3: 50, 4: 60, 5: 70} {
		h.AscensionLevel = asc
		assert.Equal(t, want, h.AscensionRequirement())
	}
	h.AscensionLevel = MaxAscension
	assert.False(t, h.CanAscend())
}

func TestHeroTotalPower(t *testing.T) {
	h := testHero("h", ElementKim, 0, 0, 100, 50, 30, 100)
	h.Stats = HexagonStats{HP: 100, ATK: 50, DEF: 30, SPD: 100, CRIT: 10, DEX: 10}
	base := h.Stats.TotalPower()

	h.Level = 1
	h.Stars = 1
	assert.Equal(t, base, h.TotalPower())

	h.AscensionLevel = 2
	h.AwakeningLevel = 1
	assert.Equal(t, base+2*100+150, h.TotalPower())
}

func TestEquipmentEnhance(t *testing.T) {
	eq := &Equipment{
		ID: "eq1", Name: "Thanh Long Đao", Type: EquipmentWeapon,
		Rarity: RarityRare, Level: 1,
		BaseStats: HexagonStats{ATK: 50, CRIT: 20},
	}

	assert.Equal(t, 15, eq.MaxLevel())
	assert.Equal(t, 100, eq.EnhanceCost())

	res := eq.Enhance()
	require.True(t, res.Success)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 5, res.StatsGained.ATK) // floor(50 * 0.1)
	assert.Equal(t, 2, res.StatsGained.CRIT)
	assert.Equal(t, 55, eq.TotalStats().ATK)
	assert.Equal(t, 200, eq.EnhanceCost())
}

func TestEquipmentEnhanceAtCapFails(t *testing.T) {
	eq := &Equipment{Rarity: RarityCommon, Level: 10, BaseStats: HexagonStats{ATK: 10}}
	res := eq.Enhance()
	assert.False(t, res.Success)
	assert.Equal(t, 10, eq.Level)
	assert.Equal(t, HexagonStats{}, eq.BonusStats)
}

func TestTeamCompositionInvariants(t *testing.T) {
	team := &Team{ID: "t1", PlayerID: "p1", Name: "Ngũ Hổ Tướng"}
	heroes := []*Hero{
		testHero("a", ElementKim, 0, 0, 100, 10, 5, 100),
		testHero("b", ElementKim, 1, 0, 100, 10, 5, 100),
		testHero("c", ElementMoc, 2, 0, 100, 10, 5, 100),
		testHero("d", ElementThuy, 0, 1, 100, 10, 5, 100),
		testHero("e", ElementHoa, 1, 1, 100, 10, 5, 100),
	}
	for _, h := range heroes {
		require.NoError(t, team.AddMember(h, h.Position))
	}

	extra := testHero("f", ElementTho, 2, 1, 100, 10, 5, 100)
	assert.ErrorIs(t, team.AddMember(extra, extra.Position), ErrTeamFull)

	require.NoError(t, team.RemoveMember("e"))
	assert.ErrorIs(t, team.AddMember(heroes[0], extra.Position), ErrHeroAlreadyInTeam)
	pos00, _ := NewGridPosition(0, 0)
	assert.ErrorIs(t, team.AddMember(extra, pos00), ErrPositionOccupied)
}

func TestTeamElementSynergy(t *testing.T) {
	team := &Team{}
	// Two Kim heroes side by side, one Moc hero isolated.
	a := testHero("a", ElementKim, 0, 0, 100, 10, 5, 100)
	b := testHero("b", ElementKim, 1, 0, 100, 10, 5, 100)
	c := testHero("c", ElementMoc, 2, 2, 100, 10, 5, 100)
	require.NoError(t, team.AddMember(a, a.Position))
	require.NoError(t, team.AddMember(b, b.Position))
	require.NoError(t, team.AddMember(c, c.Position))

	assert.Equal(t, 50, team.ElementSynergy())

	// Diagonal adjacency counts too.
	require.NoError(t, team.MoveMember("c", GridPosition{X: 0, Y: 1}))
	team.Members[2].Hero.Element = ElementKim
	assert.Equal(t, 150, team.ElementSynergy())
}

func TestFormationBonusGating(t *testing.T) {
	formation := &Formation{
		ID: "ngu-hanh-tran", Name: "Ngũ Hành Trận",
		RequiredElements: 5, MinMembers: 5,
		Bonuses: []FormationBonus{{Stat: "all", Value: 10, Kind: BonusPercent}},
	}
	team := &Team{Formation: formation}
	elements := []Element{ElementKim, ElementMoc, ElementThuy, ElementHoa, ElementTho}
	positions := AllPositions()
	for i, el := range elements {
		h := testHero(string(rune('a'+i)), el, positions[i].X, positions[i].Y, 100, 10, 5, 100)
		require.NoError(t, team.AddMember(h, positions[i]))
	}

	assert.True(t, team.IsFormationActive())

	team.Members[4].Hero.Element = ElementKim
	assert.False(t, team.IsFormationActive())
}

func TestDragonEvolution(t *testing.T) {
	d := &Dragon{
		Mount: Mount{
			ID: "d1", Name: "Thanh Long", Type: MountDragon,
			Level: 10, BondLevel: 1,
			BaseStats: HexagonStats{HP: 200, ATK: 40},
		},
		Element: ElementMoc,
		Evolutions: []EvolutionStage{
			{Stage: 1, Name: "Giao Long", LevelReq: 10, StatBonus: HexagonStats{HP: 100, ATK: 20}},
			{Stage: 2, Name: "Thần Long", LevelReq: 30, StatBonus: HexagonStats{HP: 300, ATK: 60}},
		},
	}

	require.True(t, d.CanEvolve())
	require.True(t, d.Evolve())
	assert.Equal(t, 1, d.EvolutionStage)
	assert.Equal(t, 300, d.BaseStats.HP)

	assert.False(t, d.CanEvolve()) // stage 2 needs level 30
	assert.False(t, d.Evolve())

	assert.Equal(t, 0.1, d.ElementBuff())
	d.AwakeningLevel = 2
	assert.Equal(t, 0.2, d.ElementBuff())
}

func TestMountBondAndScaling(t *testing.T) {
	m := &Mount{
		Level: 5, BondLevel: 1,
		BaseStats:   HexagonStats{HP: 100, SPD: 20},
		TeamBonuses: []TeamBonus{{Stat: "spd", Value: 10, Kind: BonusFlat}},
	}

	leveled := m.AddBondPoints(250)
	assert.True(t, leveled)
	assert.Equal(t, 3, m.BondLevel)
	assert.Equal(t, 50, m.BondPoints)

	// base * (1 + 0.1*4) * (1 + 0.05*2)
	assert.Equal(t, 154, m.EffectiveStats().HP)

	scaled := m.ScaledTeamBonuses()
	require.Len(t, scaled, 1)
	assert.InDelta(t, 12.0, scaled[0].Value, 1e-9) // 10 * (1 + 0.05*4)
}

func TestShieldAbsorbsBeforeHP(t *testing.T) {
	h := testHero("h", ElementKim, 0, 0, 500, 100, 10, 100)
	shield := NewStatusEffect("shield", "Hộ Thuẫn", EffectShield, 3)
	shield.ShieldAmount = 60
	h.AddStatusEffect(shield)

	res := h.TakeDamage(100)
	assert.Equal(t, 40, res.DamageTaken)
	assert.Equal(t, 460, h.CurrentHP)
	assert.Equal(t, 0, shield.ShieldAmount)

	h.RemoveExpiredEffects()
	assert.Empty(t, h.StatusEffects)
}

func TestGridAdjacency(t *testing.T) {
	center := GridPosition{X: 1, Y: 1}
	assert.Len(t, center.Neighbors(), 8)
	corner := GridPosition{X: 0, Y: 0}
	assert.Len(t, corner.Neighbors(), 3)
	assert.True(t, corner.IsAdjacent(GridPosition{X: 1, Y: 1}))
	assert.False(t, corner.IsAdjacent(corner))
	assert.False(t, corner.IsAdjacent(GridPosition{X: 2, Y: 0}))

	_, err := NewGridPosition(3, 0)
	assert.Error(t, err)
}
