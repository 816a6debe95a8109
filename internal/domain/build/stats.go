package build

// Stats is everything downstream components need that derives from the
// build snapshot. It is computed in exactly one place so attack bonuses,
// attack counts, and style bonuses cannot drift between components.
type Stats struct {
	ProficiencyBonus int

	AttackBonus int
	DamageBonus int

	OffHandAttackBonus int
	OffHandDamageBonus int

	// NumAttacks is main-hand attacks per Attack action (Extra Attack);
	// the off-hand bonus attack is counted separately by the orchestrator
	NumAttacks int

	// CritRange is how many d20 faces crit (1 = 20 only, 2 = 19-20, ...)
	CritRange int

	// PowerAttack is true when the build can take the -5/+10 trade
	PowerAttack bool

	// TripleAdvantage is true when advantage upgrades to roll-three-keep-best
	TripleAdvantage bool
}

// AbilityModifier converts an ability score to its modifier, rounding down
func AbilityModifier(score int) int {
	// Floored division; Go's integer division truncates toward zero
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// Derive computes the build's stats. Every component consumes this one
// deriver rather than re-computing bonuses locally.
func Derive(b *Build) *Stats {
	s := &Stats{
		ProficiencyBonus: proficiencyBonus(b.Level),
		NumAttacks:       attacksPerAction(b.Class, b.Level),
		CritRange:        critRange(b),
		TripleAdvantage:  b.HasFeature(FeatureElvenAccuracy),
	}

	main := b.MainHand
	mainMod := weaponAbilityModifier(b, main)

	s.AttackBonus = mainMod + s.ProficiencyBonus
	s.DamageBonus = mainMod

	if main.IsRanged() && b.HasFightingStyle(StyleArchery) {
		s.AttackBonus += 2
	}
	if main.IsMelee() && !main.IsTwoHanded() && b.OffHand == nil && b.HasFightingStyle(StyleDueling) {
		s.DamageBonus += 2
	}

	if b.OffHand != nil {
		offMod := weaponAbilityModifier(b, b.OffHand)
		s.OffHandAttackBonus = offMod + s.ProficiencyBonus
		// The off-hand swing only adds the ability modifier to damage with
		// the two-weapon fighting style
		if b.HasFightingStyle(StyleTwoWeapon) {
			s.OffHandDamageBonus = offMod
		}
	}

	s.PowerAttack = powerAttackCapable(b)

	return s
}

// proficiencyBonus follows the standard 5e progression
func proficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

// attacksPerAction counts Extra Attack main-hand swings
func attacksPerAction(class Class, level int) int {
	switch class {
	case ClassFighter:
		switch {
		case level >= 20:
			return 4
		case level >= 11:
			return 3
		case level >= 5:
			return 2
		}
	case ClassBarbarian, ClassMonk, ClassPaladin, ClassRanger:
		if level >= 5 {
			return 2
		}
	}
	return 1
}

// critRange widens with the Champion features
func critRange(b *Build) int {
	switch {
	case b.HasFeature(FeatureSuperiorCritical):
		return 3 // 18-20
	case b.HasFeature(FeatureImprovedCritical):
		return 2 // 19-20
	default:
		return 1 // 20 only
	}
}

// weaponAbilityModifier picks the governing ability for a weapon attack.
// Ranged weapons use DEX; finesse and monk weapons use the better of STR
// and DEX; everything else uses STR. A nil weapon (unarmed) uses STR.
func weaponAbilityModifier(b *Build, w *Weapon) int {
	strMod := AbilityModifier(b.AbilityScore(AbilityStrength))
	dexMod := AbilityModifier(b.AbilityScore(AbilityDexterity))

	if w.IsRanged() {
		return dexMod
	}
	if w.IsFinesse() || (b.HasFeature(FeatureMartialArts) && w.IsMelee() && !w.IsHeavy() && !w.IsTwoHanded()) {
		if dexMod > strMod {
			return dexMod
		}
	}
	return strMod
}

// powerAttackCapable checks the feat against the equipped weapon:
// Sharpshooter needs a ranged weapon, Great Weapon Master a heavy melee one
func powerAttackCapable(b *Build) bool {
	if b.HasFeature(FeatureSharpshooter) && b.MainHand.IsRanged() {
		return true
	}
	if b.HasFeature(FeatureGreatWeaponMaster) && b.MainHand.IsMelee() && b.MainHand.IsHeavy() {
		return true
	}
	return false
}
