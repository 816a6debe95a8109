package combat

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// Target is an immutable snapshot of the creature being attacked.
// Range validation (AC 5-30 and friends) happens upstream in the editor layer.
type Target struct {
	Name            string                     `json:"name"`
	Type            string                     `json:"type,omitempty"` // "humanoid", "undead", ...
	ArmorClass      int                        `json:"armor_class"`
	Resistances     map[shared.DamageType]bool `json:"resistances,omitempty"`
	Immunities      map[shared.DamageType]bool `json:"immunities,omitempty"`
	Vulnerabilities map[shared.DamageType]bool `json:"vulnerabilities,omitempty"`
	CurrentHP       int                        `json:"current_hp,omitempty"`
	MaxHP           int                        `json:"max_hp,omitempty"`
	Conditions      shared.ConditionSet        `json:"conditions,omitempty"`
}

// HasCondition reports whether the target currently has the condition
func (t *Target) HasCondition(c shared.Condition) bool {
	if t == nil || t.Conditions == nil {
		return false
	}
	return t.Conditions.Has(c)
}

// HPFraction returns current/max HP, or 1.0 when HP is unknown
func (t *Target) HPFraction() float64 {
	if t == nil || t.MaxHP <= 0 {
		return 1.0
	}
	return float64(t.CurrentHP) / float64(t.MaxHP)
}

// ResistanceKind classifies how the target handles one damage type
type ResistanceKind string

const (
	ResistanceNone       ResistanceKind = "none"
	ResistanceResistant  ResistanceKind = "resistant"
	ResistanceImmune     ResistanceKind = "immune"
	ResistanceVulnerable ResistanceKind = "vulnerable"
)

// ResistanceTo returns the single transform that applies to a damage type.
// Immunity wins over resistance, resistance over vulnerability.
func (t *Target) ResistanceTo(dt shared.DamageType) ResistanceKind {
	if t == nil {
		return ResistanceNone
	}
	if t.Immunities[dt] {
		return ResistanceImmune
	}
	if t.Resistances[dt] {
		return ResistanceResistant
	}
	if t.Vulnerabilities[dt] {
		return ResistanceVulnerable
	}
	return ResistanceNone
}
