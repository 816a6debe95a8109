// Package dpr wires the engine components into round-by-round expected
// damage: advantage resolution, probability tables, attack sequence assembly,
// power-attack and once-per-turn analysis, and multi-round projection.
package dpr

//go:generate mockgen -destination=mock/mock_service.go -package=mockdpr -source=service.go

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/effects"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/advantage"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/damagecalc"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/onceperturn"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/policy"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/powerattack"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/probability"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/resources"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

const (
	minTargetAC = 5
	maxTargetAC = 30

	// Rounds past this point start draining limited resources in the
	// heuristic projection
	depletionOnset = 3
	depletionFloor = 0.5
)

// Service is the top-level calculation interface
type Service interface {
	// Calculate produces the full DPR result for one build against one target
	Calculate(ctx context.Context, input *CalculateInput) (*Result, error)

	// LevelSweep computes single-round DPR across a level progression
	LevelSweep(ctx context.Context, input *LevelSweepInput) ([]LevelRow, error)
}

type service struct {
	resolver *advantage.Resolver
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	// Resolver overrides the default advantage source catalog
	Resolver *advantage.Resolver
}

// NewService creates a new DPR calculation service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{
		resolver: advantage.NewResolver(),
	}
	if cfg != nil && cfg.Resolver != nil {
		svc.resolver = cfg.Resolver
	}
	return svc
}

func (s *service) Calculate(_ context.Context, input *CalculateInput) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	b := input.Build
	target := input.Target
	combatCtx := input.Combat
	if combatCtx == nil {
		combatCtx = &combat.Context{Round: 1}
	}

	rounds := input.Rounds
	if rounds < 1 {
		rounds = 1
	}

	mgr := input.Resources
	if mgr == nil {
		mgr = resources.ForBuild(b)
	}
	startingPools := mgr.Snapshot()

	stats := build.Derive(b)

	resolution := s.resolver.Resolve(advantage.Input{
		Build:  b,
		Target: target,
		Combat: combatCtx,
	})

	table := probability.Table(stats.AttackBonus, target.ArmorClass, stats.CritRange)
	current := table[resolution.State]

	mainDamage := mainHandDamage(b, stats)
	mainSeq := combat.AttackSequence{
		HitProbability:  current.Hit,
		CritProbability: current.Crit,
		NormalDamage:    mainDamage,
		NumAttacks:      stats.NumAttacks,
	}

	result := &Result{
		Breakdown:     perHitBreakdown(mainDamage, target),
		Conditions:    append(resolution.AdvantageSources, resolution.DisadvantageSources...),
		HitChances:    make(map[shared.AdvantageState]float64, len(table)),
		CritChances:   make(map[shared.AdvantageState]float64, len(table)),
		ResolvedState: resolution.State,
	}
	for state, chances := range table {
		result.HitChances[state] = chances.Hit
		result.CritChances[state] = chances.Crit
	}

	// The power attack analysis compares both routines; the build's policy
	// picks which one the projection actually runs
	baseDPR := damagecalc.CalculateDPR(mainSeq, target)
	if stats.PowerAttack {
		analysis := powerattack.Analyze(powerattack.Input{
			AttackBonus:  stats.AttackBonus,
			CritRange:    stats.CritRange,
			State:        resolution.State,
			NormalDamage: mainDamage,
			NumAttacks:   stats.NumAttacks,
			Target:       target,
		}, target.ArmorClass)
		result.PowerAttack = &analysis

		decision := policy.DecidePowerAttack(policy.Context{
			Build:     b,
			Target:    target,
			Combat:    combatCtx,
			Resources: startingPools,
		}, b.Policies.PowerAttack, analysis)
		if decision.Action == "power-attack" {
			baseDPR = analysis.PowerAttackDPR
		}
	}

	offHandDPR, offHandChances := s.offHandDPR(b, stats, target, resolution.State)
	baseDPR += offHandDPR

	attackContexts := attackContextsFor(stats.NumAttacks, current, offHandChances, resolution.State, target, combatCtx)

	turnEffects, err := turnEffectsFor(b, startingPools)
	if err != nil {
		return nil, err
	}

	var selected *onceperturn.Candidate
	optInput := onceperturn.Input{
		Effects: turnEffects,
		Attacks: attackContexts,
		Target:  target,
	}
	if len(turnEffects) > 0 {
		analysis := onceperturn.Analyze(optInput)
		result.OncePerTurn = &analysis
		selected = onceperturn.ApplyPolicy(analysis, b.Policies.OncePerTurn, optInput)
	}

	extraDPR := 0.0
	for _, expr := range b.RoundDamage {
		extraDPR += expr.ExpectedValue()
	}

	// Round loop. The once-per-turn effect is re-gated each round: free
	// effects always land, costed ones go through the resource policy and,
	// in accurate mode, actually drain the manager.
	result.ByRound = make([]RoundResult, 0, rounds)
	for round := 1; round <= rounds; round++ {
		roundDPR := baseDPR + extraDPR

		if selected != nil {
			roundDPR += s.oncePerTurnContribution(b, target, combatCtx, mgr, selected, baseDPR, input.AccurateResources)
		}

		if !input.AccurateResources && round > depletionOnset {
			roundDPR *= math.Max(depletionFloor, 1-float64(round)*0.1)
		}

		states := ""
		if round == 1 {
			states = resolution.Reasoning
		}
		result.ByRound = append(result.ByRound, RoundResult{Round: round, DPR: roundDPR, States: states})
		result.Total += roundDPR
	}

	usage := mgr.Snapshot()
	result.ResourceUsage = &usage

	return result, nil
}

// LevelSweep runs an independent single-round calculation per level. Levels
// are independent, so they run in parallel.
func (s *service) LevelSweep(ctx context.Context, input *LevelSweepInput) ([]LevelRow, error) {
	if input == nil || input.Build == nil {
		return nil, dprerr.InvalidArgument("level sweep requires a build")
	}

	minLevel := input.MinLevel
	if minLevel < 1 {
		minLevel = 1
	}
	maxLevel := input.MaxLevel
	if maxLevel < minLevel || maxLevel > 20 {
		maxLevel = 20
	}

	rows := make([]LevelRow, maxLevel-minLevel+1)
	var g errgroup.Group
	for i := range rows {
		level := minLevel + i
		idx := i
		g.Go(func() error {
			leveled := *input.Build
			leveled.Level = level

			res, err := s.Calculate(ctx, &CalculateInput{
				Build:  &leveled,
				Target: input.Target,
				Combat: input.Combat,
			})
			if err != nil {
				return err
			}

			stats := build.Derive(&leveled)
			rows[idx] = LevelRow{
				Level:       level,
				DPR:         res.Total,
				AttackBonus: stats.AttackBonus,
				NumAttacks:  stats.NumAttacks,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func validateInput(input *CalculateInput) error {
	if input == nil || input.Build == nil {
		return dprerr.InvalidArgument("calculation requires a build")
	}
	if input.Target == nil {
		return dprerr.InvalidArgument("calculation requires a target")
	}
	if input.Target.ArmorClass < minTargetAC || input.Target.ArmorClass > maxTargetAC {
		return dprerr.InvalidArgumentf("target armor class %d outside [%d,%d]",
			input.Target.ArmorClass, minTargetAC, maxTargetAC)
	}
	if input.Build.Level < 1 || input.Build.Level > 20 {
		return dprerr.InvalidArgumentf("build level %d outside [1,20]", input.Build.Level)
	}
	return nil
}

// mainHandDamage assembles the main-hand damage sources. Builds with no
// weapon fall back to an unarmed 1d4.
func mainHandDamage(b *build.Build, stats *build.Stats) []combat.DamageSource {
	weapon := b.MainHand
	expr := dice.Expression{Count: 1, Sides: 4}
	name := "unarmed strike"
	damageType := shared.DamageTypeBludgeoning
	if weapon != nil {
		expr = weapon.Damage
		name = weapon.Name
		damageType = weapon.DamageType
	}

	expr = expr.WithBonus(stats.DamageBonus)
	expr.DamageType = damageType

	src := combat.DamageSource{
		Name:         name,
		Dice:         expr,
		Origin:       shared.OriginWeapon,
		OnCritDouble: true,
	}
	if weapon != nil && weapon.IsMelee() && weapon.IsTwoHanded() && b.HasFightingStyle(build.StyleGreatWeapon) {
		src.Reroll = shared.RerollLow
	}
	return []combat.DamageSource{src}
}

// perHitBreakdown reports the per-hit expected damage by type after the
// target's resistance transforms
func perHitBreakdown(sources []combat.DamageSource, target *combat.Target) map[shared.DamageType]float64 {
	return damagecalc.Total(sources, false, target).ByType
}

// offHandDPR computes the bonus-action swing when a second weapon is held
func (s *service) offHandDPR(b *build.Build, stats *build.Stats, target *combat.Target, state shared.AdvantageState) (float64, *probability.Chances) {
	if b.OffHand == nil {
		return 0, nil
	}

	chances := probability.Resolve(stats.OffHandAttackBonus, target.ArmorClass, state, stats.CritRange)
	expr := b.OffHand.Damage.WithBonus(stats.OffHandDamageBonus)
	expr.DamageType = b.OffHand.DamageType

	seq := combat.AttackSequence{
		HitProbability:  chances.Hit,
		CritProbability: chances.Crit,
		NormalDamage: []combat.DamageSource{{
			Name:         b.OffHand.Name,
			Dice:         expr,
			Origin:       shared.OriginWeapon,
			OnCritDouble: true,
		}},
		NumAttacks: 1,
	}
	return damagecalc.CalculateDPR(seq, target), &chances
}

// attackContextsFor lays out the turn's attacks in order: main-hand swings
// then the off-hand bonus attack, each carrying its own probabilities
func attackContextsFor(numAttacks int, main probability.Chances, offHand *probability.Chances, state shared.AdvantageState, target *combat.Target, combatCtx *combat.Context) []combat.AttackContext {
	contexts := make([]combat.AttackContext, 0, numAttacks+1)
	for i := 0; i < numAttacks; i++ {
		contexts = append(contexts, combat.AttackContext{
			AttackIndex:     i,
			HitProbability:  main.Hit,
			CritProbability: main.Crit,
			Advantage:       state,
			Target:          target,
			Combat:          combatCtx,
		})
	}
	if offHand != nil {
		contexts = append(contexts, combat.AttackContext{
			AttackIndex:     numAttacks,
			HitProbability:  offHand.Hit,
			CritProbability: offHand.Crit,
			Advantage:       state,
			Target:          target,
			Combat:          combatCtx,
		})
	}
	return contexts
}

// turnEffectsFor gathers class-granted once-per-turn effects and compiles the
// build's homebrew descriptors
func turnEffectsFor(b *build.Build, pools resources.Snapshot) ([]*combat.OncePerTurnEffect, error) {
	var turnEffects []*combat.OncePerTurnEffect

	if b.HasFeature(build.FeatureSneakAttack) {
		d := dice.Expression{Count: (b.Level + 1) / 2, Sides: 6, DamageType: shared.DamageTypePiercing}
		turnEffects = append(turnEffects, &combat.OncePerTurnEffect{
			ID:       "sneak-attack",
			Name:     "Sneak Attack",
			Priority: 10,
			Damage: combat.DamageSource{
				Name:         "Sneak Attack",
				Dice:         d,
				Origin:       shared.OriginFeature,
				OnCritDouble: true,
			},
		})
	}

	if b.HasFeature(build.FeatureDivineSmite) {
		turnEffects = append(turnEffects, &combat.OncePerTurnEffect{
			ID:       "divine-smite",
			Name:     "Divine Smite",
			Priority: 8,
			Damage: combat.DamageSource{
				Name:         "Divine Smite",
				Dice:         smiteDice(pools),
				Origin:       shared.OriginFeature,
				OnCritDouble: true,
			},
			Cost: &combat.ResourceCost{Type: shared.ResourceSpellSlot},
		})
	}

	compiled, err := effects.CompileAll(b.Homebrew)
	if err != nil {
		return nil, err
	}
	return append(turnEffects, compiled...), nil
}

// smiteDice sizes the smite to the highest slot the build can burn:
// 2d8 for a first-level slot, one more d8 per level above that, capped at 5d8
func smiteDice(pools resources.Snapshot) dice.Expression {
	highest := 1
	for level, slot := range pools.SpellSlots {
		if slot.Remaining > 0 && level > highest {
			highest = level
		}
	}

	count := 1 + highest
	if count > 5 {
		count = 5
	}
	return dice.Expression{Count: count, Sides: 8, DamageType: shared.DamageTypeRadiant}
}

// oncePerTurnContribution gates the selected effect for one round. Free
// effects always contribute; costed ones consult the resource policy and, in
// accurate mode, spend from the manager.
func (s *service) oncePerTurnContribution(b *build.Build, target *combat.Target, combatCtx *combat.Context, mgr *resources.Manager, selected *onceperturn.Candidate, baseDPR float64, accurate bool) float64 {
	cost := selected.Effect.Cost
	if cost == nil {
		return selected.ExpectedDamage
	}

	decision := policy.DecideResource(policy.Context{
		Build:     b,
		Target:    target,
		Combat:    combatCtx,
		Resources: mgr.Snapshot(),
	}, b.Policies.Resource, policy.ResourceInput{
		Name:         selected.Effect.Name,
		Cost:         cost,
		EffectEV:     baseDPR + selected.ExpectedDamage,
		BaselineEV:   baseDPR,
		CritBranchEV: baseDPR + selected.Effect.Damage.ExpectedValue(true),
	})
	if decision.Action != "spend" {
		return 0
	}

	if accurate {
		if err := mgr.Use(cost); err != nil {
			// Pool ran dry mid-projection; the effect stops contributing
			return 0
		}
	}
	return selected.ExpectedDamage
}
