package effects

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// Trigger tags when an effect fires. This is a closed set: homebrew content
// picks a trigger and supplies data, it never supplies code.
type Trigger string

const (
	TriggerOnAttackRoll Trigger = "on_attack_roll"
	TriggerOnHit        Trigger = "on_hit"
	TriggerOnCrit       Trigger = "on_crit"
	TriggerOnDamageRoll Trigger = "on_damage_roll"
	TriggerOnSave       Trigger = "on_save"
	TriggerOnTurnStart  Trigger = "on_turn_start"
	TriggerOnTurnEnd    Trigger = "on_turn_end"
	TriggerOnKill       Trigger = "on_kill"
)

// Comparison is an operator in a condition expression
type Comparison string

const (
	CompareEq  Comparison = "eq"
	CompareLt  Comparison = "lt"
	CompareLte Comparison = "lte"
	CompareGt  Comparison = "gt"
	CompareGte Comparison = "gte"
)

// Condition fields the evaluator understands
const (
	FieldAttackIndex      = "attack_index"
	FieldHitProbability   = "hit_probability"
	FieldCritProbability  = "crit_probability"
	FieldRound            = "round"
	FieldTargetHPFraction = "target_hp_fraction"
	FieldTargetCondition  = "target_condition"
)

// Condition is one clause of a descriptor's trigger expression. All clauses
// on a descriptor must hold for the effect to be eligible.
type Condition struct {
	Field string     `json:"field"`
	Op    Comparison `json:"op,omitempty"`
	Value float64    `json:"value,omitempty"`

	// Condition names a target status for FieldTargetCondition clauses
	Condition shared.Condition `json:"condition,omitempty"`
}

// Descriptor is a serializable homebrew effect. It replaces the ad-hoc
// scripted hooks of the original sheets with data the evaluator interprets.
type Descriptor struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Trigger      Trigger             `json:"trigger"`
	Conditions   []Condition         `json:"conditions,omitempty"`
	Damage       string              `json:"damage"` // dice expression
	DamageType   shared.DamageType   `json:"damage_type"`
	OnCritDouble bool                `json:"on_crit_double"`
	Priority     int                 `json:"priority"`
	OncePerTurn  bool                `json:"once_per_turn"`
	CostType     shared.ResourceType `json:"cost_type,omitempty"`
	CostAmount   int                 `json:"cost_amount,omitempty"`
	CostLevel    int                 `json:"cost_level,omitempty"` // spell slot level
}
