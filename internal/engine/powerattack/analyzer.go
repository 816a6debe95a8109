// Package powerattack compares the -5 attack / +10 damage trade (Sharpshooter,
// Great Weapon Master) against the baseline and finds the armor class where
// the trade stops paying for itself.
package powerattack

import (
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/damagecalc"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/probability"
)

const (
	// AttackPenalty and DamageBonus are the feat's fixed trade
	AttackPenalty = 5
	DamageBonus   = 10

	defaultSweepMin = 10
	defaultSweepMax = 30
)

// Input describes the attack routine under analysis
type Input struct {
	AttackBonus  int
	CritRange    int
	State        shared.AdvantageState
	NormalDamage []combat.DamageSource
	CritDamage   []combat.DamageSource
	NumAttacks   int
	Target       *combat.Target
}

// Analysis is the comparison at one armor class
type Analysis struct {
	NormalDPR      float64 `json:"normal_dpr"`
	PowerAttackDPR float64 `json:"power_attack_dpr"`
	ShouldUse      bool    `json:"should_use"`
	BreakEvenAC    int     `json:"break_even_ac"`
	Delta          float64 `json:"delta"`
}

// Row is one AC point of a sweep, shaped for charting
type Row struct {
	AC             int     `json:"ac"`
	NormalDPR      float64 `json:"normal_dpr"`
	PowerAttackDPR float64 `json:"power_attack_dpr"`
	ShouldUse      bool    `json:"should_use"`
}

// Analyze compares both routines at the given armor class
func Analyze(in Input, targetAC int) Analysis {
	normal := dprAt(in, targetAC, false)
	power := dprAt(in, targetAC, true)

	return Analysis{
		NormalDPR:      normal,
		PowerAttackDPR: power,
		ShouldUse:      power > normal,
		BreakEvenAC:    BreakEvenAC(in),
		Delta:          power - normal,
	}
}

// Sweep evaluates both routines across an inclusive AC range. Each AC point
// is independent, so the rows are computed in parallel.
func Sweep(in Input, acMin, acMax int) ([]Row, error) {
	if acMin > acMax {
		acMin, acMax = acMax, acMin
	}

	rows := make([]Row, acMax-acMin+1)
	var g errgroup.Group
	for i := range rows {
		ac := acMin + i
		idx := i
		g.Go(func() error {
			normal := dprAt(in, ac, false)
			power := dprAt(in, ac, true)
			rows[idx] = Row{
				AC:             ac,
				NormalDPR:      normal,
				PowerAttackDPR: power,
				ShouldUse:      power > normal,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// BreakEvenAC returns the highest armor class at which the power attack is
// still worth taking: the trade wins for every AC at or below the returned
// value and loses just above it. Returns acMin-1 when the trade never wins.
//
// The scan stops at the first sign flip. At extreme ACs both routines are
// pinned to the natural-20 floor and the flat +10 flips the comparison back,
// but that region is noise rather than a real second break-even.
func BreakEvenAC(in Input) int {
	breakEven := defaultSweepMin - 1
	for ac := defaultSweepMin; ac <= defaultSweepMax; ac++ {
		if dprAt(in, ac, true) > dprAt(in, ac, false) {
			breakEven = ac
			continue
		}
		break
	}
	return breakEven
}

// ThresholdsByAdvantageState reports the break-even AC for each advantage
// state. Advantage pushes the threshold up, disadvantage pulls it down.
func ThresholdsByAdvantageState(in Input) map[shared.AdvantageState]int {
	thresholds := make(map[shared.AdvantageState]int, 4)
	for _, state := range shared.AllAdvantageStates() {
		perState := in
		perState.State = state
		thresholds[state] = BreakEvenAC(perState)
	}
	return thresholds
}

// dprAt computes the routine's DPR at one AC, optionally with the trade on.
// The +10 rides on the weapon damage source so it applies once per attack.
func dprAt(in Input, targetAC int, powerAttack bool) float64 {
	bonus := in.AttackBonus
	normalDamage := in.NormalDamage
	if powerAttack {
		bonus -= AttackPenalty
		normalDamage = boostWeaponDamage(in.NormalDamage)
	}

	chances := probability.Resolve(bonus, targetAC, in.State, in.CritRange)
	seq := combat.AttackSequence{
		HitProbability:  chances.Hit,
		CritProbability: chances.Crit,
		NormalDamage:    normalDamage,
		CritDamage:      in.CritDamage,
		NumAttacks:      in.NumAttacks,
	}
	return damagecalc.CalculateDPR(seq, in.Target)
}

// boostWeaponDamage adds the +10 to the first weapon-origin source, falling
// back to the first source for routines with no weapon tag
func boostWeaponDamage(sources []combat.DamageSource) []combat.DamageSource {
	if len(sources) == 0 {
		return sources
	}

	boosted := append([]combat.DamageSource(nil), sources...)
	idx := 0
	for i, src := range boosted {
		if src.Origin == shared.OriginWeapon {
			idx = i
			break
		}
	}
	boosted[idx].Dice = boosted[idx].Dice.WithBonus(DamageBonus)
	return boosted
}
