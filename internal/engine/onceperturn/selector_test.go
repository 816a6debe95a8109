package onceperturn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

func sneakAttack(priority int) *combat.OncePerTurnEffect {
	d := dice.MustParse("3d6")
	d.DamageType = shared.DamageTypePiercing
	return &combat.OncePerTurnEffect{
		ID:       "sneak-attack",
		Name:     "Sneak Attack",
		Priority: priority,
		Damage: combat.DamageSource{
			Name: "Sneak Attack", Dice: d,
			Origin: shared.OriginFeature, OnCritDouble: true,
		},
	}
}

func attacks(chances ...[2]float64) []combat.AttackContext {
	out := make([]combat.AttackContext, len(chances))
	for i, c := range chances {
		out[i] = combat.AttackContext{
			AttackIndex:     i,
			HitProbability:  c[0],
			CritProbability: c[1],
		}
	}
	return out
}

func TestAnalyze_PicksHighestEVAttack(t *testing.T) {
	// Second attack has better hit odds; the effect should ride on it
	in := Input{
		Effects: []*combat.OncePerTurnEffect{sneakAttack(10)},
		Attacks: attacks([2]float64{0.50, 0.05}, [2]float64{0.75, 0.05}),
	}

	analysis := Analyze(in)
	require.NotNil(t, analysis.Selected)
	assert.Equal(t, 1, analysis.Selected.AttackIndex)

	// 3d6 = 10.5, crit 6d6 = 21: 0.70*10.5 + 0.05*21
	assert.InDelta(t, 0.70*10.5+0.05*21, analysis.Selected.ExpectedDamage, 0.0001)
}

func TestAnalyze_TieBreaksToLowerIndex(t *testing.T) {
	in := Input{
		Effects: []*combat.OncePerTurnEffect{sneakAttack(10)},
		Attacks: attacks([2]float64{0.60, 0.05}, [2]float64{0.60, 0.05}),
	}

	analysis := Analyze(in)
	require.NotNil(t, analysis.Selected)
	assert.Equal(t, 0, analysis.Selected.AttackIndex, "equal EV keeps the earlier attack")
}

func TestAnalyze_TieBreaksToHigherPriority(t *testing.T) {
	low := sneakAttack(1)
	low.ID, low.Name = "low", "Low Priority Copy"
	high := sneakAttack(9)
	high.ID, high.Name = "high", "High Priority Copy"

	in := Input{
		Effects: []*combat.OncePerTurnEffect{low, high},
		Attacks: attacks([2]float64{0.60, 0.05}),
	}

	analysis := Analyze(in)
	require.NotNil(t, analysis.Selected)
	assert.Equal(t, "high", analysis.Selected.Effect.ID)
}

func TestAnalyze_RespectsTriggerPredicate(t *testing.T) {
	gated := sneakAttack(10)
	gated.Trigger = func(ctx combat.AttackContext) bool {
		return ctx.AttackIndex == 1
	}

	in := Input{
		Effects: []*combat.OncePerTurnEffect{gated},
		Attacks: attacks([2]float64{0.90, 0.05}, [2]float64{0.40, 0.05}),
	}

	analysis := Analyze(in)
	require.NotNil(t, analysis.Selected)
	assert.Equal(t, 1, analysis.Selected.AttackIndex, "predicate excludes the better attack")
}

func TestAnalyze_NoEligibleEffects(t *testing.T) {
	gated := sneakAttack(10)
	gated.Trigger = func(ctx combat.AttackContext) bool { return false }

	analysis := Analyze(Input{
		Effects: []*combat.OncePerTurnEffect{gated},
		Attacks: attacks([2]float64{0.60, 0.05}),
	})
	assert.Nil(t, analysis.Selected)
	assert.Empty(t, analysis.Alternatives)
}

func TestAnalyze_AlternativesListed(t *testing.T) {
	small := &combat.OncePerTurnEffect{
		ID: "hex", Name: "Hex", Priority: 1,
		Damage: combat.DamageSource{
			Name: "Hex",
			Dice: func() dice.Expression {
				d := dice.MustParse("1d6")
				d.DamageType = shared.DamageTypeNecrotic
				return d
			}(),
			Origin: shared.OriginSpell, OnCritDouble: true,
		},
	}

	analysis := Analyze(Input{
		Effects: []*combat.OncePerTurnEffect{sneakAttack(10), small},
		Attacks: attacks([2]float64{0.60, 0.05}),
	})

	require.NotNil(t, analysis.Selected)
	assert.Equal(t, "sneak-attack", analysis.Selected.Effect.ID)
	require.Len(t, analysis.Alternatives, 1)
	assert.Equal(t, "hex", analysis.Alternatives[0].Effect.ID)
	assert.Less(t, analysis.Alternatives[0].ExpectedDamage, analysis.Selected.ExpectedDamage)
}

func TestAnalyze_ResistanceLowersEV(t *testing.T) {
	fireRider := &combat.OncePerTurnEffect{
		ID: "searing", Name: "Searing Smite", Priority: 5,
		Damage: combat.DamageSource{
			Name: "Searing Smite",
			Dice: func() dice.Expression {
				d := dice.MustParse("2d6")
				d.DamageType = shared.DamageTypeFire
				return d
			}(),
			Origin: shared.OriginSpell, OnCritDouble: true,
		},
	}

	resistant := &combat.Target{
		Resistances: map[shared.DamageType]bool{shared.DamageTypeFire: true},
	}

	plain := Analyze(Input{
		Effects: []*combat.OncePerTurnEffect{fireRider},
		Attacks: attacks([2]float64{0.60, 0.05}),
	})
	halved := Analyze(Input{
		Effects: []*combat.OncePerTurnEffect{fireRider},
		Attacks: attacks([2]float64{0.60, 0.05}),
		Target:  resistant,
	})

	require.NotNil(t, plain.Selected)
	require.NotNil(t, halved.Selected)
	assert.Less(t, halved.Selected.ExpectedDamage, plain.Selected.ExpectedDamage)
}

func TestApplyPolicy_BestVsFirstHit(t *testing.T) {
	in := Input{
		Effects: []*combat.OncePerTurnEffect{sneakAttack(10)},
		Attacks: attacks([2]float64{0.50, 0.05}, [2]float64{0.80, 0.05}),
	}
	analysis := Analyze(in)
	require.NotNil(t, analysis.Selected)

	best := ApplyPolicy(analysis, build.TurnPolicyBestHit, in)
	first := ApplyPolicy(analysis, build.TurnPolicyFirstHit, in)

	require.NotNil(t, best)
	require.NotNil(t, first)
	assert.Equal(t, 1, best.AttackIndex)
	assert.Equal(t, 0, first.AttackIndex, "firstHit pins the earliest qualifying attack")
	assert.GreaterOrEqual(t, best.ExpectedDamage, first.ExpectedDamage,
		"the optimal pick is never worse than the fixed heuristic")
}

func TestTriggerProbabilityAcrossAttacks(t *testing.T) {
	probs := []float64{0.5, 0.5}
	assert.InDelta(t, 0.75, TriggerProbabilityAcrossAttacks(probs, []bool{true, true}), 0.0001)
	assert.InDelta(t, 0.5, TriggerProbabilityAcrossAttacks(probs, []bool{true, false}), 0.0001)
	assert.InDelta(t, 0.0, TriggerProbabilityAcrossAttacks(probs, []bool{false, false}), 0.0001)

	// Missing eligibility entries default to eligible
	assert.InDelta(t, 0.75, TriggerProbabilityAcrossAttacks(probs, nil), 0.0001)
}
