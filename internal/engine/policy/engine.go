// Package policy maps a build's declarative decision settings onto concrete
// in-combat actions. Every decision function is pure: it reads immutable
// snapshots and returns a Decision with rationale, never mutating state.
package policy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/powerattack"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/resources"
)

// Axis default confidences. EV-comparison decisions rescale by the observed
// delta, see scaleConfidence.
const (
	confidenceNever   = 1.0
	confidenceOnCrit  = 0.8
	confidenceOptimal = 0.9
	confidenceAlways  = 0.7
	confidenceNeutral = 1.0

	// Marginal and decisive EV deltas override the axis default
	marginalDelta = 0.5
	decisiveDelta = 2.0

	confidenceMarginal = 0.6
	confidenceDecisive = 0.95

	// Repositioning has a real action cost, so small gains never justify it
	repositionThreshold = 1.0
)

// Alternative is a decision path not taken, kept for display
type Alternative struct {
	Action        string  `json:"action"`
	ExpectedValue float64 `json:"expected_value"`
	Reasoning     string  `json:"reasoning"`
}

// Decision is the engine's answer for one decision axis
type Decision struct {
	Action        string        `json:"action"`
	Reasoning     string        `json:"reasoning"`
	ExpectedValue float64       `json:"expected_value"`
	Confidence    float64       `json:"confidence"`
	Alternatives  []Alternative `json:"alternatives,omitempty"`
}

// Context carries the immutable snapshots every decision reads
type Context struct {
	Build     *build.Build
	Target    *combat.Target
	Combat    *combat.Context
	Round     int
	Resources resources.Snapshot
}

// ResourceInput describes one candidate resource spend
type ResourceInput struct {
	Name         string
	Cost         *combat.ResourceCost
	EffectEV     float64 // expected damage added by spending
	BaselineEV   float64 // expected damage without spending
	CritBranchEV float64 // effect expected value conditional on a crit
}

// DecideResource resolves whether to spend a limited resource this attack
func DecideResource(ctx Context, mode build.PolicyMode, in ResourceInput) Decision {
	available := ctx.Resources.CanPay(in.Cost)
	delta := in.EffectEV - in.BaselineEV

	switch mode {
	case build.PolicyNever:
		return Decision{
			Action:     "hold",
			Reasoning:  fmt.Sprintf("policy never spends %s", in.Name),
			Confidence: confidenceNever,
		}

	case build.PolicyOnCrit:
		if !available {
			return declined(in.Name)
		}
		if in.CritBranchEV > in.BaselineEV {
			return Decision{
				Action:        "spend",
				Reasoning:     fmt.Sprintf("%s held for critical hits (crit branch %.1f beats %.1f)", in.Name, in.CritBranchEV, in.BaselineEV),
				ExpectedValue: in.CritBranchEV,
				Confidence:    confidenceOnCrit,
			}
		}
		return Decision{
			Action:     "hold",
			Reasoning:  fmt.Sprintf("crit branch of %s does not beat the baseline", in.Name),
			Confidence: confidenceOnCrit,
		}

	case build.PolicyOptimal:
		if !available {
			return declined(in.Name)
		}
		if delta > 0 {
			return Decision{
				Action:        "spend",
				Reasoning:     fmt.Sprintf("%s adds %.1f expected damage", in.Name, delta),
				ExpectedValue: in.EffectEV,
				Confidence:    scaleConfidence(delta, confidenceOptimal),
				Alternatives: []Alternative{{
					Action:        "hold",
					ExpectedValue: in.BaselineEV,
					Reasoning:     "keep the resource for a later round",
				}},
			}
		}
		return Decision{
			Action:        "hold",
			Reasoning:     fmt.Sprintf("%s would lose %.1f expected damage", in.Name, -delta),
			ExpectedValue: in.BaselineEV,
			Confidence:    scaleConfidence(delta, confidenceOptimal),
		}

	case build.PolicyAlways:
		if !available {
			return declined(in.Name)
		}
		return Decision{
			Action:        "spend",
			Reasoning:     fmt.Sprintf("policy always spends %s while it lasts", in.Name),
			ExpectedValue: in.EffectEV,
			Confidence:    confidenceAlways,
		}
	}

	return neutral()
}

// DecidePowerAttack resolves the -5/+10 toggle for this round
func DecidePowerAttack(ctx Context, mode build.PolicyMode, analysis powerattack.Analysis) Decision {
	switch mode {
	case build.PolicyNever:
		return Decision{
			Action:        "normal-attack",
			Reasoning:     "policy never takes the attack penalty",
			ExpectedValue: analysis.NormalDPR,
			Confidence:    confidenceNever,
		}

	case build.PolicyOnCrit, build.PolicyOptimal:
		base := confidenceOptimal
		if mode == build.PolicyOnCrit {
			base = confidenceOnCrit
		}
		if analysis.ShouldUse {
			return Decision{
				Action:        "power-attack",
				Reasoning:     fmt.Sprintf("power attack gains %.1f DPR (break-even AC %d)", analysis.Delta, analysis.BreakEvenAC),
				ExpectedValue: analysis.PowerAttackDPR,
				Confidence:    scaleConfidence(analysis.Delta, base),
				Alternatives: []Alternative{{
					Action:        "normal-attack",
					ExpectedValue: analysis.NormalDPR,
					Reasoning:     "keep the full attack bonus",
				}},
			}
		}
		return Decision{
			Action:        "normal-attack",
			Reasoning:     fmt.Sprintf("power attack loses %.1f DPR at this armor class", -analysis.Delta),
			ExpectedValue: analysis.NormalDPR,
			Confidence:    scaleConfidence(analysis.Delta, base),
			Alternatives: []Alternative{{
				Action:        "power-attack",
				ExpectedValue: analysis.PowerAttackDPR,
				Reasoning:     "take the trade anyway",
			}},
		}

	case build.PolicyAlways:
		return Decision{
			Action:        "power-attack",
			Reasoning:     "policy always takes the trade",
			ExpectedValue: analysis.PowerAttackDPR,
			Confidence:    confidenceAlways,
		}
	}

	return neutral()
}

// TargetCandidate is one enemy under targeting consideration
type TargetCandidate struct {
	Target         *combat.Target
	ExpectedDamage float64
}

// Conditions that leave a target easier to finish off
var exposedConditions = []shared.Condition{
	shared.ConditionProne,
	shared.ConditionRestrained,
	shared.ConditionParalyzed,
	shared.ConditionStunned,
	shared.ConditionUnconscious,
}

// DecideTargeting scores each candidate by expected damage plus tactical
// value and picks the maximum
func DecideTargeting(ctx Context, candidates []TargetCandidate) Decision {
	if len(candidates) == 0 {
		return neutral()
	}

	type scored struct {
		candidate TargetCandidate
		tactical  float64
		score     float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		tv := tacticalValue(c.Target)
		ranked = append(ranked, scored{candidate: c, tactical: tv, score: c.ExpectedDamage + tv})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	best := ranked[0]
	d := Decision{
		Action:        fmt.Sprintf("target:%s", best.candidate.Target.Name),
		Reasoning:     targetReasoning(best.candidate, best.tactical),
		ExpectedValue: best.candidate.ExpectedDamage,
		Confidence:    confidenceOptimal,
	}
	for _, r := range ranked[1:] {
		d.Alternatives = append(d.Alternatives, Alternative{
			Action:        fmt.Sprintf("target:%s", r.candidate.Target.Name),
			ExpectedValue: r.candidate.ExpectedDamage,
			Reasoning:     targetReasoning(r.candidate, r.tactical),
		})
	}
	return d
}

// DecidePositioning weighs the EV gain from moving (to flank, or to escape
// cover or long range) against the fixed improvement threshold
func DecidePositioning(ctx Context, currentEV, repositionedEV float64) Decision {
	gain := repositionedEV - currentEV
	if gain > repositionThreshold {
		return Decision{
			Action:        "reposition",
			Reasoning:     fmt.Sprintf("moving gains %.1f expected damage", gain),
			ExpectedValue: repositionedEV,
			Confidence:    scaleConfidence(gain, confidenceOptimal),
			Alternatives: []Alternative{{
				Action:        "stay",
				ExpectedValue: currentEV,
				Reasoning:     "hold position",
			}},
		}
	}
	return Decision{
		Action:        "stay",
		Reasoning:     fmt.Sprintf("moving gains only %.1f expected damage, below the %.1f threshold", gain, repositionThreshold),
		ExpectedValue: currentEV,
		Confidence:    confidenceOptimal,
	}
}

// scaleConfidence overrides an axis default when the EV margin is lopsided:
// razor-thin deltas are coin flips, decisive ones are near-certain
func scaleConfidence(delta, base float64) float64 {
	abs := math.Abs(delta)
	switch {
	case abs < marginalDelta:
		return confidenceMarginal
	case abs > decisiveDelta:
		return confidenceDecisive
	default:
		return base
	}
}

func tacticalValue(t *combat.Target) float64 {
	if t == nil {
		return 0
	}

	// A nearly-dead target is worth finishing
	value := (1 - t.HPFraction()) * 5
	for _, cond := range exposedConditions {
		if t.HasCondition(cond) {
			value += 2
		}
	}
	return value
}

func targetReasoning(c TargetCandidate, tactical float64) string {
	parts := []string{fmt.Sprintf("%.1f expected damage", c.ExpectedDamage)}
	if tactical > 0 {
		parts = append(parts, fmt.Sprintf("%.1f tactical value", tactical))
	}
	return strings.Join(parts, " + ")
}

func declined(name string) Decision {
	return Decision{
		Action:     "hold",
		Reasoning:  fmt.Sprintf("%s is exhausted", name),
		Confidence: confidenceNever,
	}
}

// neutral is the fallback for unrecognized policy values: no special action,
// full confidence, never an error
func neutral() Decision {
	return Decision{
		Action:     "none",
		Reasoning:  "no special action",
		Confidence: confidenceNeutral,
	}
}
