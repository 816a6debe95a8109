package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Expression is a parsed dice term such as 2d6+3.
// A zero Count means the term contributes only its bonus.
type Expression struct {
	Count      int               `json:"count"`
	Sides      int               `json:"sides"`
	Bonus      int               `json:"bonus"`
	DamageType shared.DamageType `json:"damage_type,omitempty"`
}

// Parse accepts "NdM", "NdM+B", or a bare integer
func Parse(expr string) (Expression, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Expression{}, dprerr.Format("empty dice expression")
	}

	// Bare integer is a flat bonus with no dice
	if flat, err := strconv.Atoi(trimmed); err == nil {
		return Expression{Bonus: flat}, nil
	}

	dice := trimmed
	bonus := 0
	if parts := strings.Split(trimmed, "+"); len(parts) == 2 {
		b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Expression{}, dprerr.Formatf("invalid dice expression %q", expr)
		}
		bonus = b
		dice = strings.TrimSpace(parts[0])
	} else if len(parts) > 2 {
		return Expression{}, dprerr.Formatf("invalid dice expression %q", expr)
	}

	diceParts := strings.Split(dice, "d")
	if len(diceParts) != 2 {
		return Expression{}, dprerr.Formatf("invalid dice expression %q", expr)
	}

	count, err := strconv.Atoi(diceParts[0])
	if err != nil || count < 0 {
		return Expression{}, dprerr.Formatf("invalid dice count in %q", expr)
	}
	sides, err := strconv.Atoi(diceParts[1])
	if err != nil || sides < 0 {
		return Expression{}, dprerr.Formatf("invalid dice size in %q", expr)
	}

	return Expression{Count: count, Sides: sides, Bonus: bonus}, nil
}

// MustParse parses expr and panics on failure. For fixtures and static tables.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// ExpectedValue returns the average result of the expression
func (e Expression) ExpectedValue() float64 {
	if e.Count == 0 {
		return float64(e.Bonus)
	}
	return float64(e.Count)*float64(e.Sides+1)/2 + float64(e.Bonus)
}

// Min returns the lowest possible result, floored at zero
func (e Expression) Min() int {
	minimum := e.Count + e.Bonus
	if minimum < 0 {
		return 0
	}
	return minimum
}

// Max returns the highest possible result
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Bonus
}

// ExpectedWithReroll returns the expected value after applying a reroll mechanic
func (e Expression) ExpectedWithReroll(mechanic shared.RerollMechanic) float64 {
	switch mechanic {
	case shared.RerollLow:
		return e.rerollLowExpected()
	case shared.RaiseMin:
		return e.raiseMinExpected()
	default:
		return e.ExpectedValue()
	}
}

// rerollLowExpected models Great Weapon Fighting: each die showing 1 or 2 is
// rerolled once and the new result kept. Each rerolled face contributes the
// plain die average instead of its face value.
//
// The original sheet collapsed this to the unmodified average (a defect, the
// keep and reroll branches were both weighted by the same average); we compute
// the correct distribution instead.
func (e Expression) rerollLowExpected() float64 {
	if e.Count == 0 {
		return float64(e.Bonus)
	}
	if e.Sides <= 2 {
		// Rerolling every face lands back on the plain average
		return e.ExpectedValue()
	}

	sides := float64(e.Sides)
	plainAvg := (sides + 1) / 2
	faceSum := sides * (sides + 1) / 2
	// Faces 1 and 2 are replaced by a fresh roll worth the plain average
	perDie := (faceSum - 1 - 2 + 2*plainAvg) / sides

	return float64(e.Count)*perDie + float64(e.Bonus)
}

// raiseMinExpected models treating every rolled 1 as a 2
func (e Expression) raiseMinExpected() float64 {
	if e.Count == 0 || e.Sides == 0 {
		return float64(e.Bonus)
	}

	sides := float64(e.Sides)
	modifiedAvg := (sides*(sides+1)/2 - 1 + 2) / sides

	return float64(e.Count)*modifiedAvg + float64(e.Bonus)
}

// WithBonus returns a copy of the expression with the bonus shifted by delta
func (e Expression) WithBonus(delta int) Expression {
	e.Bonus += delta
	return e
}

// Doubled returns a copy with twice the dice count, leaving the bonus alone.
// This is the 5e critical-hit rule: dice double, modifiers do not.
func (e Expression) Doubled() Expression {
	e.Count *= 2
	return e
}

// String renders the expression in NdM+B form
func (e Expression) String() string {
	if e.Count == 0 {
		return strconv.Itoa(e.Bonus)
	}
	if e.Bonus == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Bonus)
}
