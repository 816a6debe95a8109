package effects

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Compile turns a descriptor into a once-per-turn effect the selector can
// rank. The returned predicate interprets the descriptor's conditions; no
// homebrew-supplied code ever runs.
func Compile(d Descriptor) (*combat.OncePerTurnEffect, error) {
	if d.ID == "" {
		return nil, dprerr.InvalidArgument("effect descriptor requires an id")
	}

	expr, err := dice.Parse(d.Damage)
	if err != nil {
		return nil, dprerr.Wrapf(err, "effect %q has a bad damage expression", d.ID)
	}
	expr.DamageType = d.DamageType

	var cost *combat.ResourceCost
	if d.CostType != "" {
		amount := d.CostAmount
		if amount == 0 {
			amount = 1
		}
		cost = &combat.ResourceCost{
			Type:      d.CostType,
			Amount:    amount,
			SlotLevel: d.CostLevel,
		}
	}

	conditions := append([]Condition(nil), d.Conditions...)
	trigger := d.Trigger

	return &combat.OncePerTurnEffect{
		ID:       d.ID,
		Name:     d.Name,
		Priority: d.Priority,
		Trigger: func(ctx combat.AttackContext) bool {
			if !triggerApplies(trigger, ctx) {
				return false
			}
			for _, c := range conditions {
				if !evalCondition(c, ctx) {
					return false
				}
			}
			return true
		},
		Damage: combat.DamageSource{
			Name:         d.Name,
			Dice:         expr,
			Origin:       shared.OriginFeature,
			OnCritDouble: d.OnCritDouble,
		},
		Cost: cost,
	}, nil
}

// CompileAll compiles every once-per-turn descriptor in the list, skipping
// descriptors whose trigger never rides on an attack.
func CompileAll(descriptors []Descriptor) ([]*combat.OncePerTurnEffect, error) {
	var compiled []*combat.OncePerTurnEffect
	for _, d := range descriptors {
		if !d.OncePerTurn {
			continue
		}
		effect, err := Compile(d)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, effect)
	}
	return compiled, nil
}

// triggerApplies filters triggers that can attach to an attack in the
// expected-value model. Turn and save triggers contribute elsewhere.
func triggerApplies(t Trigger, ctx combat.AttackContext) bool {
	switch t {
	case TriggerOnHit, TriggerOnDamageRoll, TriggerOnAttackRoll, "":
		return true
	case TriggerOnCrit:
		return ctx.CritProbability > 0
	default:
		return false
	}
}

func evalCondition(c Condition, ctx combat.AttackContext) bool {
	switch c.Field {
	case FieldTargetCondition:
		return ctx.Target.HasCondition(c.Condition)
	case FieldAttackIndex:
		return compare(float64(ctx.AttackIndex), c.Op, c.Value)
	case FieldHitProbability:
		return compare(ctx.HitProbability, c.Op, c.Value)
	case FieldCritProbability:
		return compare(ctx.CritProbability, c.Op, c.Value)
	case FieldRound:
		round := 0
		if ctx.Combat != nil {
			round = ctx.Combat.Round
		}
		return compare(float64(round), c.Op, c.Value)
	case FieldTargetHPFraction:
		return compare(ctx.Target.HPFraction(), c.Op, c.Value)
	default:
		// Unknown fields never match rather than erroring mid-analysis
		return false
	}
}

func compare(got float64, op Comparison, want float64) bool {
	switch op {
	case CompareEq:
		return got == want
	case CompareLt:
		return got < want
	case CompareLte:
		return got <= want
	case CompareGt:
		return got > want
	case CompareGte:
		return got >= want
	default:
		return false
	}
}
