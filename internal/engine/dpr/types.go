package dpr

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/onceperturn"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/powerattack"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/resources"
)

// CalculateInput is one simulation request
type CalculateInput struct {
	Build  *build.Build
	Target *combat.Target
	Combat *combat.Context

	// Rounds to project; 0 means a single round
	Rounds int

	// AccurateResources drives the projection through a resource manager
	// instead of the flat depletion heuristic
	AccurateResources bool

	// Resources overrides the manager seeded from the build's class
	Resources *resources.Manager
}

// RoundResult is one round of the projection
type RoundResult struct {
	Round  int     `json:"round"`
	DPR    float64 `json:"dpr"`
	States string  `json:"states,omitempty"` // advantage reasoning for the round
}

// Result is the stable output contract consumed by reporting collaborators
type Result struct {
	Total   float64       `json:"total"`
	ByRound []RoundResult `json:"by_round"`

	// Breakdown is the first round's per-hit expected damage by type,
	// after target resistances
	Breakdown map[shared.DamageType]float64 `json:"breakdown"`

	// Conditions lists the advantage and disadvantage sources that fired
	Conditions []string `json:"conditions,omitempty"`

	// Hit and crit chances for every advantage state, for comparison tables
	HitChances  map[shared.AdvantageState]float64 `json:"hit_chances"`
	CritChances map[shared.AdvantageState]float64 `json:"crit_chances"`

	// ResolvedState is the advantage state the projection actually used
	ResolvedState shared.AdvantageState `json:"resolved_state"`

	PowerAttack *powerattack.Analysis `json:"power_attack,omitempty"`
	OncePerTurn *onceperturn.Analysis `json:"once_per_turn,omitempty"`

	ResourceUsage *resources.Snapshot `json:"resource_usage,omitempty"`
}

// LevelSweepInput requests DPR across a level progression
type LevelSweepInput struct {
	Build  *build.Build
	Target *combat.Target
	Combat *combat.Context

	// MinLevel and MaxLevel default to 1 and 20
	MinLevel int
	MaxLevel int
}

// LevelRow is one level of a progression sweep
type LevelRow struct {
	Level       int     `json:"level"`
	DPR         float64 `json:"dpr"`
	AttackBonus int     `json:"attack_bonus"`
	NumAttacks  int     `json:"num_attacks"`
}
