package combat

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// DamageSource is one tagged contribution to an attack's damage
type DamageSource struct {
	Name         string                `json:"name"`
	Dice         dice.Expression       `json:"dice"`
	Origin       shared.DamageOrigin   `json:"origin"`
	OnCritDouble bool                  `json:"on_crit_double"`
	Reroll       shared.RerollMechanic `json:"reroll,omitempty"`
}

// ExpectedValue returns the source's average damage, crit-doubled when asked
func (s DamageSource) ExpectedValue(isCrit bool) float64 {
	d := s.Dice
	if isCrit && s.OnCritDouble {
		d = d.Doubled()
	}
	return d.ExpectedWithReroll(s.Reroll)
}

// DamageType returns the source's damage type
func (s DamageSource) DamageType() shared.DamageType {
	return s.Dice.DamageType
}

// AttackSequence is a run of identical attacks with resolved probabilities
type AttackSequence struct {
	HitProbability  float64        `json:"hit_probability"`
	CritProbability float64        `json:"crit_probability"`
	NormalDamage    []DamageSource `json:"normal_damage"`
	CritDamage      []DamageSource `json:"crit_damage,omitempty"` // extra sources that only land on a crit
	NumAttacks      int            `json:"num_attacks"`
}
