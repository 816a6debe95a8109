package advantage

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// Kind says which way a source pushes the roll
type Kind string

const (
	KindAdvantage    Kind = "advantage"
	KindDisadvantage Kind = "disadvantage"
)

// Input is the snapshot a source predicate evaluates against
type Input struct {
	Build  *build.Build
	Target *combat.Target
	Combat *combat.Context
}

// Source is one independently-triggered advantage or disadvantage cause.
// It only counts when its predicate is true for the current input.
type Source struct {
	ID          string
	Kind        Kind
	Description string
	Applies     func(in Input) bool
}

func attackerIsRanged(in Input) bool {
	return in.Build != nil && in.Build.MainHand.IsRanged()
}

// DefaultCatalog is the ordered list of sources the resolver checks. The
// order only affects how reasoning strings read.
func DefaultCatalog() []Source {
	return []Source{
		{
			ID:          "flanking",
			Kind:        KindAdvantage,
			Description: "flanking the target with an ally",
			Applies: func(in Input) bool {
				return in.Combat != nil && in.Combat.Flanking && !attackerIsRanged(in)
			},
		},
		{
			ID:          "hidden",
			Kind:        KindAdvantage,
			Description: "attacking from hiding",
			Applies: func(in Input) bool {
				return in.Combat != nil && in.Combat.Hidden
			},
		},
		{
			ID:          "attacker-invisible",
			Kind:        KindAdvantage,
			Description: "attacker is invisible",
			Applies: func(in Input) bool {
				return in.Combat.AttackerHasCondition(shared.ConditionInvisible)
			},
		},
		{
			ID:          "target-prone-melee",
			Kind:        KindAdvantage,
			Description: "target is prone (melee attack)",
			Applies: func(in Input) bool {
				return in.Target.HasCondition(shared.ConditionProne) && !attackerIsRanged(in)
			},
		},
		{
			ID:          "target-restrained",
			Kind:        KindAdvantage,
			Description: "target is restrained",
			Applies: func(in Input) bool {
				return in.Target.HasCondition(shared.ConditionRestrained)
			},
		},
		{
			ID:          "target-paralyzed",
			Kind:        KindAdvantage,
			Description: "target is paralyzed",
			Applies: func(in Input) bool {
				return in.Target.HasCondition(shared.ConditionParalyzed)
			},
		},
		{
			ID:          "target-stunned",
			Kind:        KindAdvantage,
			Description: "target is stunned",
			Applies: func(in Input) bool {
				return in.Target.HasCondition(shared.ConditionStunned)
			},
		},
		{
			ID:          "target-unconscious",
			Kind:        KindAdvantage,
			Description: "target is unconscious",
			Applies: func(in Input) bool {
				return in.Target.HasCondition(shared.ConditionUnconscious)
			},
		},
		{
			ID:          "reckless-attack",
			Kind:        KindAdvantage,
			Description: "reckless attack declared",
			Applies: func(in Input) bool {
				return in.Build.HasFeature(build.FeatureRecklessAttack) &&
					in.Combat != nil && in.Combat.RecklessAttack && !attackerIsRanged(in)
			},
		},
		{
			ID:          "pack-tactics",
			Kind:        KindAdvantage,
			Description: "pack tactics with an ally adjacent to the target",
			Applies: func(in Input) bool {
				return in.Build.HasFeature(build.FeaturePackTactics) &&
					in.Combat != nil && in.Combat.AdjacentAllies > 0
			},
		},
		{
			ID:          "target-prone-ranged",
			Kind:        KindDisadvantage,
			Description: "target is prone (ranged attack)",
			Applies: func(in Input) bool {
				return in.Target.HasCondition(shared.ConditionProne) && attackerIsRanged(in)
			},
		},
		{
			ID:          "attacker-blinded",
			Kind:        KindDisadvantage,
			Description: "attacker is blinded",
			Applies: func(in Input) bool {
				return in.Combat.AttackerHasCondition(shared.ConditionBlinded)
			},
		},
		{
			ID:          "attacker-poisoned",
			Kind:        KindDisadvantage,
			Description: "attacker is poisoned",
			Applies: func(in Input) bool {
				return in.Combat.AttackerHasCondition(shared.ConditionPoisoned)
			},
		},
		{
			ID:          "attacker-frightened",
			Kind:        KindDisadvantage,
			Description: "attacker is frightened",
			Applies: func(in Input) bool {
				return in.Combat.AttackerHasCondition(shared.ConditionFrightened)
			},
		},
		{
			ID:          "attacker-restrained",
			Kind:        KindDisadvantage,
			Description: "attacker is restrained",
			Applies: func(in Input) bool {
				return in.Combat.AttackerHasCondition(shared.ConditionRestrained)
			},
		},
		{
			ID:          "long-range",
			Kind:        KindDisadvantage,
			Description: "attacking at long range",
			Applies: func(in Input) bool {
				return in.Combat != nil && in.Combat.LongRange && attackerIsRanged(in)
			},
		},
		{
			ID:          "cover",
			Kind:        KindDisadvantage,
			Description: "target has three-quarters or better cover",
			Applies: func(in Input) bool {
				if in.Combat == nil {
					return false
				}
				return in.Combat.Cover == combat.CoverThreeQuarters || in.Combat.Cover == combat.CoverFull
			},
		},
		{
			ID:          "darkness",
			Kind:        KindDisadvantage,
			Description: "fighting in darkness without darkvision",
			Applies: func(in Input) bool {
				return in.Combat != nil && in.Combat.InDarkness &&
					!in.Build.HasFeature(build.FeatureDarkvision)
			},
		},
	}
}
