package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Expression
		wantErr bool
	}{
		{
			name:  "basic dice",
			input: "2d6",
			want:  Expression{Count: 2, Sides: 6},
		},
		{
			name:  "dice with bonus",
			input: "2d6+3",
			want:  Expression{Count: 2, Sides: 6, Bonus: 3},
		},
		{
			name:  "single die",
			input: "1d20",
			want:  Expression{Count: 1, Sides: 20},
		},
		{
			name:  "bare integer",
			input: "5",
			want:  Expression{Bonus: 5},
		},
		{
			name:  "negative integer",
			input: "-2",
			want:  Expression{Bonus: -2},
		},
		{
			name:  "whitespace tolerated",
			input: " 1d8+2 ",
			want:  Expression{Count: 1, Sides: 8, Bonus: 2},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "fireball",
			wantErr: true,
		},
		{
			name:    "missing sides",
			input:   "2d",
			wantErr: true,
		},
		{
			name:    "double plus",
			input:   "1d6+2+3",
			wantErr: true,
		},
		{
			name:    "non-numeric bonus",
			input:   "1d6+x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dprerr.IsFormat(err), "parse failures should be format errors")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpression_ExpectedValue(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{name: "2d6+3 averages 10", expr: "2d6+3", want: 10.0},
		{name: "1d8 averages 4.5", expr: "1d8", want: 4.5},
		{name: "1d4 averages 2.5", expr: "1d4", want: 2.5},
		{name: "flat bonus", expr: "7", want: 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := MustParse(tt.expr)
			assert.InDelta(t, tt.want, e.ExpectedValue(), 0.0001)
		})
	}
}

func TestExpression_MinMaxBracketExpected(t *testing.T) {
	exprs := []Expression{
		{Count: 1, Sides: 4},
		{Count: 2, Sides: 6, Bonus: 3},
		{Count: 4, Sides: 12, Bonus: -2},
		{Count: 0, Sides: 0, Bonus: 5},
		{Count: 1, Sides: 20, Bonus: -5},
	}

	for _, e := range exprs {
		ev := e.ExpectedValue()
		assert.LessOrEqual(t, float64(e.Min()), ev, "min ≤ expected for %s", e)
		assert.GreaterOrEqual(t, float64(e.Max()), ev, "max ≥ expected for %s", e)
	}
}

func TestExpression_MinFlooredAtZero(t *testing.T) {
	e := Expression{Count: 1, Sides: 8, Bonus: -4}
	assert.Equal(t, 0, e.Min())
	assert.Equal(t, 4, e.Max())
}

func TestExpression_RerollLow(t *testing.T) {
	// Great Weapon Fighting on 1d6: faces 1 and 2 become a fresh 3.5 average.
	// Per-die: (3+4+5+6 + 2*3.5)/6 = 25/6
	e := MustParse("1d6")
	assert.InDelta(t, 25.0/6.0, e.ExpectedWithReroll(shared.RerollLow), 0.0001)

	// Always strictly better than the plain average for sides > 2
	assert.Greater(t, e.ExpectedWithReroll(shared.RerollLow), e.ExpectedValue())

	// 2d6+3 doubles the per-die gain and keeps the bonus
	gwf := MustParse("2d6+3")
	assert.InDelta(t, 2*25.0/6.0+3, gwf.ExpectedWithReroll(shared.RerollLow), 0.0001)
}

func TestExpression_RerollLow_SmallDie(t *testing.T) {
	// On a d2 every face rerolls, which lands back on the plain average
	e := Expression{Count: 1, Sides: 2}
	assert.InDelta(t, e.ExpectedValue(), e.ExpectedWithReroll(shared.RerollLow), 0.0001)
}

func TestExpression_RaiseMin(t *testing.T) {
	// Treating 1s as 2s on a d6: (21-1+2)/6 = 22/6
	e := MustParse("1d6")
	assert.InDelta(t, 22.0/6.0, e.ExpectedWithReroll(shared.RaiseMin), 0.0001)

	// 3d6 scales per die
	big := MustParse("3d6")
	assert.InDelta(t, 3*22.0/6.0, big.ExpectedWithReroll(shared.RaiseMin), 0.0001)

	// Flat bonus untouched
	flat := Expression{Bonus: 4}
	assert.InDelta(t, 4.0, flat.ExpectedWithReroll(shared.RaiseMin), 0.0001)
}

func TestExpression_Doubled(t *testing.T) {
	e := MustParse("2d6+3")
	crit := e.Doubled()
	assert.Equal(t, 4, crit.Count)
	assert.Equal(t, 3, crit.Bonus, "crit doubles dice, not modifiers")
	assert.Equal(t, 2, e.Count, "original unchanged")
}

func TestExpression_String(t *testing.T) {
	assert.Equal(t, "2d6+3", MustParse("2d6+3").String())
	assert.Equal(t, "1d8", MustParse("1d8").String())
	assert.Equal(t, "5", Expression{Bonus: 5}.String())
}
