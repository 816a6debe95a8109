// Package probability converts attack bonus, armor class, and an advantage
// state into hit and critical-hit chances. Everything here is closed-form;
// nothing rolls dice.
package probability

import (
	"math"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

const (
	// Natural 1 always misses and natural 20 always hits, so a single
	// d20 hit chance never leaves this band
	floorHit   = 0.05
	ceilingHit = 0.95
)

// Chances is the resolved outcome distribution for one attack roll
type Chances struct {
	Hit  float64 `json:"hit"`
	Crit float64 `json:"crit"`
}

// Resolve computes hit and crit chances for a single attack.
// critRange is the number of d20 faces that crit (1 means 20 only).
func Resolve(attackBonus, targetAC int, state shared.AdvantageState, critRange int) Chances {
	if critRange < 1 {
		critRange = 1
	}

	needed := targetAC - attackBonus + 1
	if needed < 2 {
		needed = 2
	}
	if needed > 20 {
		needed = 20
	}

	hit := clampHit(float64(21-needed) / 20)
	baseCrit := float64(critRange) / 20

	var crit float64
	switch state {
	case shared.AdvantageAdv:
		hit = 1 - math.Pow(1-hit, 2)
		crit = 1 - math.Pow(1-baseCrit, 2)
	case shared.AdvantageTriple:
		hit = 1 - math.Pow(1-hit, 3)
		crit = 1 - math.Pow(1-baseCrit, 3)
	case shared.AdvantageDisadv:
		hit = hit * hit
		crit = baseCrit * baseCrit
	default:
		crit = baseCrit
	}

	hit = clampHit(hit)
	if crit > hit {
		crit = hit
	}

	return Chances{Hit: hit, Crit: crit}
}

// Table resolves all four advantage states for side-by-side comparison
func Table(attackBonus, targetAC, critRange int) map[shared.AdvantageState]Chances {
	table := make(map[shared.AdvantageState]Chances, 4)
	for _, state := range shared.AllAdvantageStates() {
		table[state] = Resolve(attackBonus, targetAC, state, critRange)
	}
	return table
}

func clampHit(p float64) float64 {
	if p < floorHit {
		return floorHit
	}
	if p > ceilingHit {
		return ceilingHit
	}
	return p
}
