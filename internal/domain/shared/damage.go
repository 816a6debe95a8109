package shared

// DamageType is a 5e damage type
type DamageType string

const (
	DamageTypeBludgeoning DamageType = "bludgeoning"
	DamageTypePiercing    DamageType = "piercing"
	DamageTypeSlashing    DamageType = "slashing"
	DamageTypeFire        DamageType = "fire"
	DamageTypeCold        DamageType = "cold"
	DamageTypeLightning   DamageType = "lightning"
	DamageTypeThunder     DamageType = "thunder"
	DamageTypeAcid        DamageType = "acid"
	DamageTypePoison      DamageType = "poison"
	DamageTypeNecrotic    DamageType = "necrotic"
	DamageTypeRadiant     DamageType = "radiant"
	DamageTypePsychic     DamageType = "psychic"
	DamageTypeForce       DamageType = "force"
)

// DamageOrigin tags where a damage source comes from
type DamageOrigin string

const (
	OriginWeapon  DamageOrigin = "weapon"
	OriginSpell   DamageOrigin = "spell"
	OriginFeature DamageOrigin = "feature"
)

// RerollMechanic identifies a damage-die reroll rule
type RerollMechanic string

const (
	// RerollNone leaves the dice untouched
	RerollNone RerollMechanic = "none"

	// RerollLow rerolls 1s and 2s once, keeping the new result (Great Weapon Fighting)
	RerollLow RerollMechanic = "reroll-low"

	// RaiseMin treats rolled 1s as 2s (Elemental Adept)
	RaiseMin RerollMechanic = "raise-min"
)
