package combat

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// AttackContext carries one attack's resolved numbers for trigger evaluation
type AttackContext struct {
	AttackIndex     int
	HitProbability  float64
	CritProbability float64
	Advantage       shared.AdvantageState
	Target          *Target
	Combat          *Context
}

// TriggerPredicate decides whether a once-per-turn effect can ride on an attack
type TriggerPredicate func(ctx AttackContext) bool

// ResourceCost names what spending an effect consumes
type ResourceCost struct {
	Type      shared.ResourceType `json:"type"`
	Amount    int                 `json:"amount"`
	SlotLevel int                 `json:"slot_level,omitempty"` // spell slots only
}

// OncePerTurnEffect is a limited bonus-damage effect; at most one may
// contribute damage per combat turn.
type OncePerTurnEffect struct {
	ID       string
	Name     string
	Priority int // higher wins ties
	Trigger  TriggerPredicate
	Damage   DamageSource
	Cost     *ResourceCost
}

// CanTrigger evaluates the effect's predicate, treating a nil predicate as
// always eligible.
func (e *OncePerTurnEffect) CanTrigger(ctx AttackContext) bool {
	if e.Trigger == nil {
		return true
	}
	return e.Trigger(ctx)
}
