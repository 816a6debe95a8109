package build

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/effects"
)

// Ability is one of the six ability score names
type Ability string

const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Class is a 5e class key
type Class string

const (
	ClassBarbarian Class = "barbarian"
	ClassBard      Class = "bard"
	ClassCleric    Class = "cleric"
	ClassDruid     Class = "druid"
	ClassFighter   Class = "fighter"
	ClassMonk      Class = "monk"
	ClassPaladin   Class = "paladin"
	ClassRanger    Class = "ranger"
	ClassRogue     Class = "rogue"
	ClassSorcerer  Class = "sorcerer"
	ClassWarlock   Class = "warlock"
	ClassWizard    Class = "wizard"
)

// FightingStyle keys match the rulebook feature metadata values
type FightingStyle string

const (
	StyleArchery     FightingStyle = "archery"
	StyleDefense     FightingStyle = "defense"
	StyleDueling     FightingStyle = "dueling"
	StyleGreatWeapon FightingStyle = "great_weapon"
	StyleProtection  FightingStyle = "protection"
	StyleTwoWeapon   FightingStyle = "two_weapon"
)

// Feature keys the engine recognizes
const (
	FeatureSharpshooter      = "sharpshooter"
	FeatureGreatWeaponMaster = "great-weapon-master"
	FeatureElvenAccuracy     = "elven-accuracy"
	FeatureRecklessAttack    = "reckless-attack"
	FeaturePackTactics       = "pack-tactics"
	FeatureDarkvision        = "darkvision"
	FeatureMartialArts       = "martial-arts"
	FeatureImprovedCritical  = "improved-critical"
	FeatureSuperiorCritical  = "superior-critical"
	FeatureSneakAttack       = "sneak-attack"
	FeatureDivineSmite       = "divine-smite"
)

// WeaponProperty is a weapon trait that changes how attacks resolve
type WeaponProperty string

const (
	PropertyFinesse   WeaponProperty = "finesse"
	PropertyHeavy     WeaponProperty = "heavy"
	PropertyLight     WeaponProperty = "light"
	PropertyTwoHanded WeaponProperty = "two-handed"
)

// Weapon is an equipped weapon snapshot. Damage carries the weapon dice only;
// ability and style bonuses come from the stats deriver.
type Weapon struct {
	Key        string            `json:"key"`
	Name       string            `json:"name"`
	Damage     dice.Expression   `json:"damage"`
	DamageType shared.DamageType `json:"damage_type"`
	Range      string            `json:"range"` // "Melee" or "Ranged"
	Properties []WeaponProperty  `json:"properties,omitempty"`
}

// IsRanged reports whether the weapon attacks at range
func (w *Weapon) IsRanged() bool {
	return w != nil && w.Range == "Ranged"
}

// IsMelee reports whether the weapon is a melee weapon
func (w *Weapon) IsMelee() bool {
	return w != nil && w.Range == "Melee"
}

func (w *Weapon) hasProperty(p WeaponProperty) bool {
	if w == nil {
		return false
	}
	for _, prop := range w.Properties {
		if prop == p {
			return true
		}
	}
	return false
}

// IsFinesse reports whether the weapon can use DEX for attacks
func (w *Weapon) IsFinesse() bool { return w.hasProperty(PropertyFinesse) }

// IsHeavy reports whether the weapon has the heavy property
func (w *Weapon) IsHeavy() bool { return w.hasProperty(PropertyHeavy) }

// IsLight reports whether the weapon has the light property
func (w *Weapon) IsLight() bool { return w.hasProperty(PropertyLight) }

// IsTwoHanded reports whether the weapon requires both hands
func (w *Weapon) IsTwoHanded() bool { return w.hasProperty(PropertyTwoHanded) }

// PolicyMode is a declarative setting for resolving an in-combat choice
type PolicyMode string

const (
	PolicyNever   PolicyMode = "never"
	PolicyOnCrit  PolicyMode = "onCrit"
	PolicyOptimal PolicyMode = "optimal"
	PolicyAlways  PolicyMode = "always"
)

// TurnPolicy selects which attack a once-per-turn effect rides on
type TurnPolicy string

const (
	TurnPolicyFirstHit TurnPolicy = "firstHit"
	TurnPolicyBestHit  TurnPolicy = "bestHit"
)

// Policies holds the build's declarative decision settings
type Policies struct {
	Resource    PolicyMode `json:"resource"`
	PowerAttack PolicyMode `json:"power_attack"`
	OncePerTurn TurnPolicy `json:"once_per_turn"`
	Targeting   PolicyMode `json:"targeting"`
	Positioning PolicyMode `json:"positioning"`
}

// Build is an immutable character snapshot assembled by the editor layer.
// The engine never mutates it; all per-session state lives in the resource
// manager.
type Build struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class Class  `json:"class"`
	Level int    `json:"level"`

	Abilities map[Ability]int `json:"abilities"`

	MainHand *Weapon `json:"main_hand,omitempty"`
	OffHand  *Weapon `json:"off_hand,omitempty"`

	FightingStyles []FightingStyle `json:"fighting_styles,omitempty"`
	Features       []string        `json:"features,omitempty"`

	// Homebrew effect descriptors, interpreted by the effects evaluator.
	// Never executable user code.
	Homebrew []effects.Descriptor `json:"homebrew,omitempty"`

	// Flat per-round damage from precast concentration effects and similar
	RoundDamage []dice.Expression `json:"round_damage,omitempty"`

	Policies Policies `json:"policies"`
}

// HasFeature reports whether the build has the feature key
func (b *Build) HasFeature(key string) bool {
	if b == nil {
		return false
	}
	for _, f := range b.Features {
		if f == key {
			return true
		}
	}
	return false
}

// HasFightingStyle reports whether the build has the style
func (b *Build) HasFightingStyle(style FightingStyle) bool {
	if b == nil {
		return false
	}
	for _, s := range b.FightingStyles {
		if s == style {
			return true
		}
	}
	return false
}

// AbilityScore returns the raw score, defaulting to 10
func (b *Build) AbilityScore(a Ability) int {
	if b == nil || b.Abilities == nil {
		return 10
	}
	score, ok := b.Abilities[a]
	if !ok {
		return 10
	}
	return score
}
