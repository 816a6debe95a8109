package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/powerattack"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/resources"
)

func ctxWithSlots(remaining int) Context {
	m := resources.NewManager(&resources.Config{
		SpellSlots: map[int]shared.SpellSlotInfo{
			1: {Max: 4, Remaining: remaining},
		},
	})
	return Context{Resources: m.Snapshot()}
}

func smiteInput() ResourceInput {
	return ResourceInput{
		Name:         "divine smite",
		Cost:         &combat.ResourceCost{Type: shared.ResourceSpellSlot},
		EffectEV:     14.0,
		BaselineEV:   8.0,
		CritBranchEV: 18.0,
	}
}

func TestDecideResource_Never(t *testing.T) {
	d := DecideResource(ctxWithSlots(4), build.PolicyNever, smiteInput())
	assert.Equal(t, "hold", d.Action)
	assert.Equal(t, 1.0, d.Confidence)
}

func TestDecideResource_Optimal(t *testing.T) {
	d := DecideResource(ctxWithSlots(4), build.PolicyOptimal, smiteInput())
	assert.Equal(t, "spend", d.Action)
	assert.Equal(t, 14.0, d.ExpectedValue)
	assert.Equal(t, 0.95, d.Confidence, "a 6-point delta is decisive")
	require.Len(t, d.Alternatives, 1)
	assert.Equal(t, "hold", d.Alternatives[0].Action)

	losing := smiteInput()
	losing.EffectEV = 7.0
	d = DecideResource(ctxWithSlots(4), build.PolicyOptimal, losing)
	assert.Equal(t, "hold", d.Action)
}

func TestDecideResource_ConfidenceScalesWithDelta(t *testing.T) {
	marginal := smiteInput()
	marginal.EffectEV = marginal.BaselineEV + 0.3
	d := DecideResource(ctxWithSlots(4), build.PolicyOptimal, marginal)
	assert.Equal(t, "spend", d.Action)
	assert.Equal(t, 0.6, d.Confidence, "thin margins are coin flips")

	middling := smiteInput()
	middling.EffectEV = middling.BaselineEV + 1.0
	d = DecideResource(ctxWithSlots(4), build.PolicyOptimal, middling)
	assert.Equal(t, 0.9, d.Confidence, "axis default between the bands")
}

func TestDecideResource_OnCrit(t *testing.T) {
	d := DecideResource(ctxWithSlots(4), build.PolicyOnCrit, smiteInput())
	assert.Equal(t, "spend", d.Action)
	assert.Equal(t, 0.8, d.Confidence)

	weak := smiteInput()
	weak.CritBranchEV = 5.0
	d = DecideResource(ctxWithSlots(4), build.PolicyOnCrit, weak)
	assert.Equal(t, "hold", d.Action)
}

func TestDecideResource_AlwaysRespectsAvailability(t *testing.T) {
	d := DecideResource(ctxWithSlots(1), build.PolicyAlways, smiteInput())
	assert.Equal(t, "spend", d.Action)
	assert.Equal(t, 0.7, d.Confidence)

	d = DecideResource(ctxWithSlots(0), build.PolicyAlways, smiteInput())
	assert.Equal(t, "hold", d.Action)
}

func TestDecideResource_UnknownPolicyIsNeutral(t *testing.T) {
	d := DecideResource(ctxWithSlots(4), build.PolicyMode("berserk"), smiteInput())
	assert.Equal(t, "none", d.Action)
	assert.Equal(t, 1.0, d.Confidence, "unrecognized policies never error")
}

func TestDecidePowerAttack(t *testing.T) {
	favorable := powerattack.Analysis{
		NormalDPR: 5.0, PowerAttackDPR: 8.5, ShouldUse: true, BreakEvenAC: 18, Delta: 3.5,
	}
	unfavorable := powerattack.Analysis{
		NormalDPR: 6.0, PowerAttackDPR: 4.0, ShouldUse: false, BreakEvenAC: 18, Delta: -2.0,
	}

	d := DecidePowerAttack(Context{}, build.PolicyOptimal, favorable)
	assert.Equal(t, "power-attack", d.Action)
	assert.Equal(t, 8.5, d.ExpectedValue)
	assert.Equal(t, 0.95, d.Confidence)

	d = DecidePowerAttack(Context{}, build.PolicyOptimal, unfavorable)
	assert.Equal(t, "normal-attack", d.Action)

	d = DecidePowerAttack(Context{}, build.PolicyNever, favorable)
	assert.Equal(t, "normal-attack", d.Action)
	assert.Equal(t, 1.0, d.Confidence)

	d = DecidePowerAttack(Context{}, build.PolicyAlways, unfavorable)
	assert.Equal(t, "power-attack", d.Action)
	assert.Equal(t, 0.7, d.Confidence)

	d = DecidePowerAttack(Context{}, build.PolicyMode(""), favorable)
	assert.Equal(t, "none", d.Action)
}

func TestDecideTargeting(t *testing.T) {
	healthy := &combat.Target{Name: "Ogre", CurrentHP: 59, MaxHP: 59}
	wounded := &combat.Target{Name: "Orc", CurrentHP: 3, MaxHP: 15}

	d := DecideTargeting(Context{}, []TargetCandidate{
		{Target: healthy, ExpectedDamage: 9.0},
		{Target: wounded, ExpectedDamage: 7.0},
	})

	// 7.0 + (1-0.2)*5 = 11.0 beats 9.0: finish the wounded orc
	assert.Equal(t, "target:Orc", d.Action)
	require.Len(t, d.Alternatives, 1)
	assert.Equal(t, "target:Ogre", d.Alternatives[0].Action)
}

func TestDecideTargeting_ConditionsAddValue(t *testing.T) {
	prone := &combat.Target{
		Name:       "Bandit",
		Conditions: shared.ConditionSet{shared.ConditionProne: true},
	}
	standing := &combat.Target{Name: "Scout"}

	d := DecideTargeting(Context{}, []TargetCandidate{
		{Target: standing, ExpectedDamage: 8.0},
		{Target: prone, ExpectedDamage: 7.0},
	})
	assert.Equal(t, "target:Bandit", d.Action, "prone is worth +2")
}

func TestDecideTargeting_NoCandidates(t *testing.T) {
	d := DecideTargeting(Context{}, nil)
	assert.Equal(t, "none", d.Action)
	assert.Equal(t, 1.0, d.Confidence)
}

func TestDecidePositioning(t *testing.T) {
	d := DecidePositioning(Context{}, 8.0, 11.0)
	assert.Equal(t, "reposition", d.Action)
	assert.Equal(t, 0.95, d.Confidence)

	d = DecidePositioning(Context{}, 8.0, 8.5)
	assert.Equal(t, "stay", d.Action, "half a point is under the move threshold")

	d = DecidePositioning(Context{}, 8.0, 7.0)
	assert.Equal(t, "stay", d.Action)
}
