package resources

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// fullCasterSlots is the shared slot progression for bards, clerics, druids,
// sorcerers, and wizards, indexed by class level
var fullCasterSlots = map[int]map[int]int{
	1:  {1: 2},
	2:  {1: 3},
	3:  {1: 4, 2: 2},
	4:  {1: 4, 2: 3},
	5:  {1: 4, 2: 3, 3: 2},
	6:  {1: 4, 2: 3, 3: 3},
	7:  {1: 4, 2: 3, 3: 3, 4: 1},
	8:  {1: 4, 2: 3, 3: 3, 4: 2},
	9:  {1: 4, 2: 3, 3: 3, 4: 3, 5: 1},
	10: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2},
	11: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2, 6: 1},
	12: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2, 6: 1},
	13: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2, 6: 1, 7: 1},
	14: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2, 6: 1, 7: 1},
	15: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2, 6: 1, 7: 1, 8: 1},
	16: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2, 6: 1, 7: 1, 8: 1},
	17: {1: 4, 2: 3, 3: 3, 4: 3, 5: 2, 6: 1, 7: 1, 8: 1, 9: 1},
	18: {1: 4, 2: 3, 3: 3, 4: 3, 5: 3, 6: 1, 7: 1, 8: 1, 9: 1},
	19: {1: 4, 2: 3, 3: 3, 4: 3, 5: 3, 6: 2, 7: 1, 8: 1, 9: 1},
	20: {1: 4, 2: 3, 3: 3, 4: 3, 5: 3, 6: 2, 7: 2, 8: 1, 9: 1},
}

// rageUses by barbarian level. Level 20 is unlimited in the rules; six per
// day covers any encounter window this engine models.
func rageUses(level int) int {
	switch {
	case level < 3:
		return 2
	case level < 6:
		return 3
	case level < 12:
		return 4
	case level < 17:
		return 5
	case level < 20:
		return 6
	default:
		return 6
	}
}

// pactSlots returns the warlock's slot level and count
func pactSlots(level int) (slotLevel, count int) {
	slotLevel = (level + 1) / 2
	if slotLevel > 5 {
		slotLevel = 5
	}
	count = 1
	if level >= 2 {
		count = 2
	}
	if level >= 11 {
		count = 3
	}
	if level >= 17 {
		count = 4
	}
	return slotLevel, count
}

// ForBuild seeds a manager with the pools the build's class and level grant
func ForBuild(b *build.Build) *Manager {
	cfg := &Config{
		BuildID:    b.ID,
		SpellSlots: make(map[int]shared.SpellSlotInfo),
		Pools:      make(map[shared.ResourceType]Pool),
	}

	switch b.Class {
	case build.ClassBard, build.ClassCleric, build.ClassDruid, build.ClassSorcerer, build.ClassWizard:
		for level, count := range fullCasterSlots[clampLevel(b.Level)] {
			cfg.SpellSlots[level] = shared.SpellSlotInfo{Max: count, Remaining: count, Source: "spellcasting"}
		}
	case build.ClassPaladin, build.ClassRanger:
		// Half casters start at level 2 and track the full table at half pace
		if b.Level >= 2 {
			for level, count := range fullCasterSlots[clampLevel(b.Level/2)] {
				cfg.SpellSlots[level] = shared.SpellSlotInfo{Max: count, Remaining: count, Source: "spellcasting"}
			}
		}
	case build.ClassWarlock:
		slotLevel, count := pactSlots(clampLevel(b.Level))
		cfg.SpellSlots[slotLevel] = shared.SpellSlotInfo{Max: count, Remaining: count, Source: "pact_magic"}
	case build.ClassMonk:
		if b.Level >= 2 {
			cfg.Pools[shared.ResourceKi] = Pool{Max: b.Level, Current: b.Level, Rest: shared.RestTypeShort}
		}
	case build.ClassBarbarian:
		uses := rageUses(b.Level)
		cfg.Pools[shared.ResourceRage] = Pool{Max: uses, Current: uses, Rest: shared.RestTypeLong}
	}

	if b.Class == build.ClassSorcerer && b.Level >= 2 {
		cfg.Pools[shared.ResourceSorcery] = Pool{Max: b.Level, Current: b.Level, Rest: shared.RestTypeLong}
	}

	return NewManager(cfg)
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 20 {
		return 20
	}
	return level
}
