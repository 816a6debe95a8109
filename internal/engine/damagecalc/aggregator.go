// Package damagecalc sums tagged damage sources into expected totals,
// handling crit doubling, reroll mechanics, and target resistances.
package damagecalc

import (
	"math"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// Breakdown is an expected damage total grouped by damage type.
// ByType holds post-resistance values; Raw holds the pre-resistance sums.
type Breakdown struct {
	Total  float64                       `json:"total"`
	ByType map[shared.DamageType]float64 `json:"by_type"`
	Raw    map[shared.DamageType]float64 `json:"raw,omitempty"`
}

// Total computes expected damage for a set of sources. Crit doubling and
// reroll mechanics apply per source; the resistance transform applies once
// per damage type after all sources are summed, so stacking sources of one
// type can never double-apply resistance.
func Total(sources []combat.DamageSource, isCrit bool, target *combat.Target) Breakdown {
	raw := make(map[shared.DamageType]float64)
	for _, src := range sources {
		raw[src.DamageType()] += src.ExpectedValue(isCrit)
	}

	byType := make(map[shared.DamageType]float64, len(raw))
	total := 0.0
	for dt, value := range raw {
		adjusted := applyResistance(value, target.ResistanceTo(dt))
		byType[dt] = adjusted
		total += adjusted
	}

	return Breakdown{Total: total, ByType: byType, Raw: raw}
}

// applyResistance performs the single-pass transform for one damage type
func applyResistance(value float64, kind combat.ResistanceKind) float64 {
	switch kind {
	case combat.ResistanceImmune:
		return 0
	case combat.ResistanceResistant:
		return math.Floor(value / 2)
	case combat.ResistanceVulnerable:
		return value * 2
	default:
		return value
	}
}

// CalculateDPR folds a resolved attack sequence into expected damage per
// round. Crits land the normal sources (dice doubled) plus any crit-only
// sources; normal hits land the normal sources only.
func CalculateDPR(seq combat.AttackSequence, target *combat.Target) float64 {
	normalHitProb := seq.HitProbability - seq.CritProbability
	if normalHitProb < 0 {
		normalHitProb = 0
	}

	normalDmg := Total(seq.NormalDamage, false, target).Total

	critSources := make([]combat.DamageSource, 0, len(seq.NormalDamage)+len(seq.CritDamage))
	critSources = append(critSources, seq.NormalDamage...)
	critSources = append(critSources, seq.CritDamage...)
	critDmg := Total(critSources, true, target).Total

	perAttack := normalHitProb*normalDmg + seq.CritProbability*critDmg
	return perAttack * float64(seq.NumAttacks)
}
