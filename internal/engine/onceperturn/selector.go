// Package onceperturn picks which limited bonus-damage effect to spend, and
// on which attack in the sequence, to maximize expected value.
package onceperturn

import (
	"sort"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/damagecalc"
)

// maxAlternatives caps how many runner-up effects the analysis reports
const maxAlternatives = 3

// Candidate is one (effect, attack index) pairing with its expected value
type Candidate struct {
	Effect         *combat.OncePerTurnEffect
	AttackIndex    int
	ExpectedDamage float64
}

// Analysis is the selector's full output: the winning pair plus the best
// candidate for each losing effect, for display
type Analysis struct {
	Selected     *Candidate
	Alternatives []Candidate
}

// Input carries the effect list and the per-attack contexts. Attacks must be
// in sequence order; their contexts carry each attack's hit and crit chances.
type Input struct {
	Effects []*combat.OncePerTurnEffect
	Attacks []combat.AttackContext
	Target  *combat.Target
}

// Analyze evaluates every effect against every attack slot and keeps the
// single best pairing. Ties break toward higher priority, then the earlier
// attack.
func Analyze(in Input) Analysis {
	effects := append([]*combat.OncePerTurnEffect(nil), in.Effects...)
	sort.SliceStable(effects, func(i, j int) bool {
		return effects[i].Priority > effects[j].Priority
	})

	var selected *Candidate
	bestPerEffect := make([]*Candidate, 0, len(effects))

	for _, effect := range effects {
		var effectBest *Candidate
		for _, attack := range in.Attacks {
			if !effect.CanTrigger(attack) {
				continue
			}
			ev := expectedDamage(effect, attack, in.Target)
			if effectBest == nil || ev > effectBest.ExpectedDamage {
				effectBest = &Candidate{
					Effect:         effect,
					AttackIndex:    attack.AttackIndex,
					ExpectedDamage: ev,
				}
			}
		}
		if effectBest == nil {
			continue
		}
		bestPerEffect = append(bestPerEffect, effectBest)

		// Strictly-greater keeps the earlier winner, which encodes both
		// tie-break rules given the priority sort and ascending attacks
		if selected == nil || effectBest.ExpectedDamage > selected.ExpectedDamage {
			selected = effectBest
		}
	}

	analysis := Analysis{Selected: selected}
	for _, c := range bestPerEffect {
		if c == selected {
			continue
		}
		analysis.Alternatives = append(analysis.Alternatives, *c)
	}
	sort.SliceStable(analysis.Alternatives, func(i, j int) bool {
		return analysis.Alternatives[i].ExpectedDamage > analysis.Alternatives[j].ExpectedDamage
	})
	if len(analysis.Alternatives) > maxAlternatives {
		analysis.Alternatives = analysis.Alternatives[:maxAlternatives]
	}

	return analysis
}

// ApplyPolicy maps the build's turn policy onto a concrete pick. bestHit
// takes the analysis winner; firstHit pins the winning effect to its first
// qualifying attack, trading expected value for round-to-round consistency.
func ApplyPolicy(analysis Analysis, policy build.TurnPolicy, in Input) *Candidate {
	if analysis.Selected == nil {
		return nil
	}
	if policy != build.TurnPolicyFirstHit {
		return analysis.Selected
	}

	effect := analysis.Selected.Effect
	for _, attack := range in.Attacks {
		if !effect.CanTrigger(attack) {
			continue
		}
		return &Candidate{
			Effect:         effect,
			AttackIndex:    attack.AttackIndex,
			ExpectedDamage: expectedDamage(effect, attack, in.Target),
		}
	}
	return analysis.Selected
}

// TriggerProbabilityAcrossAttacks is the chance the once-per-turn condition
// lands at least once: 1 - Π(1-hit) over the eligible attacks.
func TriggerProbabilityAcrossAttacks(hitProbs []float64, eligible []bool) float64 {
	missAll := 1.0
	for i, p := range hitProbs {
		if i < len(eligible) && !eligible[i] {
			continue
		}
		missAll *= 1 - p
	}
	return 1 - missAll
}

// expectedDamage weights the effect's damage by the attack's outcome split,
// respecting target resistances
func expectedDamage(effect *combat.OncePerTurnEffect, attack combat.AttackContext, target *combat.Target) float64 {
	sources := []combat.DamageSource{effect.Damage}
	normalHitProb := attack.HitProbability - attack.CritProbability
	if normalHitProb < 0 {
		normalHitProb = 0
	}

	normal := damagecalc.Total(sources, false, target).Total
	crit := damagecalc.Total(sources, true, target).Total
	return normalHitProb*normal + attack.CritProbability*crit
}
