package testutils

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// CreateTestWeapon creates a one-handed melee weapon fixture
func CreateTestWeapon(key, name, damage string, damageType shared.DamageType) *build.Weapon {
	return &build.Weapon{
		Key:        key,
		Name:       name,
		Damage:     dice.MustParse(damage),
		DamageType: damageType,
		Range:      "Melee",
	}
}

// CreateTestBuild creates a fully formed test build: a level 5 fighter with a
// longsword and default policies
func CreateTestBuild(id, name string) *build.Build {
	return &build.Build{
		ID:    id,
		Name:  name,
		Class: build.ClassFighter,
		Level: 5,
		Abilities: map[build.Ability]int{
			build.AbilityStrength:     16,
			build.AbilityDexterity:    14,
			build.AbilityConstitution: 15,
			build.AbilityIntelligence: 10,
			build.AbilityWisdom:       12,
			build.AbilityCharisma:     8,
		},
		MainHand: CreateTestWeapon("longsword", "Longsword", "1d8", shared.DamageTypeSlashing),
		Policies: build.Policies{
			Resource:    build.PolicyOptimal,
			PowerAttack: build.PolicyOptimal,
			OncePerTurn: build.TurnPolicyBestHit,
			Targeting:   build.PolicyOptimal,
			Positioning: build.PolicyOptimal,
		},
	}
}

// CreateTestTarget creates a plain humanoid target fixture
func CreateTestTarget(name string, armorClass int) *combat.Target {
	return &combat.Target{
		Name:       name,
		Type:       "humanoid",
		ArmorClass: armorClass,
		CurrentHP:  30,
		MaxHP:      30,
	}
}
