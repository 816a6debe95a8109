package combat

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// CoverLevel is the degree of cover between attacker and target
type CoverLevel string

const (
	CoverNone          CoverLevel = "none"
	CoverHalf          CoverLevel = "half"
	CoverThreeQuarters CoverLevel = "three-quarters"
	CoverFull          CoverLevel = "full"
)

// Context is an immutable snapshot of the combat situation for one round.
// It is assembled by the caller and passed by value into every engine call.
type Context struct {
	Round int `json:"round"`

	// Positioning
	Flanking       bool       `json:"flanking"`
	Hidden         bool       `json:"hidden"`
	LongRange      bool       `json:"long_range"`
	Cover          CoverLevel `json:"cover,omitempty"`
	InDarkness     bool       `json:"in_darkness"`
	AdjacentAllies int        `json:"adjacent_allies"` // pack tactics

	// Declared choices for the round
	RecklessAttack bool `json:"reckless_attack"`

	// Conditions on the attacker; target conditions live on the Target
	AttackerConditions shared.ConditionSet `json:"attacker_conditions,omitempty"`
}

// AttackerHasCondition reports whether the attacker has the condition
func (c *Context) AttackerHasCondition(cond shared.Condition) bool {
	if c == nil || c.AttackerConditions == nil {
		return false
	}
	return c.AttackerConditions.Has(cond)
}
