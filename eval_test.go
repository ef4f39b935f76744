package arith_test

import (
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/evaluants/arith"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "1", 1},
		{"decimal", "2.5", 2.5},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"precedence", "2 + 3 * 4", 14},
		{"pow-right", "2 ^ 3 ^ 2", 512},
		{"neg-pow", "-2 ^ 2", -4},
		{"pow-neg", "2 ^ -2", 0.25},
		{"neg-mul", "-2 * -2", 4},
		{"paren", "(1+2)*3", 9},
		{"plus", "+3", 3},
		{"pi", "pi", math.Pi},
		{"euler", "e", math.E},
		{"exponent", "8E3 / 100 + 30", 110},
		{"sqrt", "sqrt(9)", 3},
		{"sqrt-expr", "sqrt(4E4) / (3 - 1)", 100},
		{"abs", "abs(3-5)", 2},
		{"ln", "ln(e)", 1},
		{"log", "log(1000)", 3},
		{"floor", "floor(2.7)", 2},
		{"ceil", "ceil(2.1)", 3},
		{"round", "round(2.5)", 3},
		{"exp", "exp(0)", 1},
		{"call-of-neg", "abs(-2)", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := arith.EvalString(c.src)
			require.NoError(t, err)
			assert.InDelta(t, c.want, r, 1e-9)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"div-zero", "5 / 0", &arith.DivisionError{}},
		{"div-zero-zero", "0 / 0", &arith.DivisionError{}},
		{"div-zero-expr", "1 / (2 - 2)", &arith.DivisionError{}},
		{"unknown-func", "foo(1)", &arith.NameError{Name: "foo"}},
		{"unknown-name", "x + 1", &arith.NameError{Name: "x"}},
		{"sqrt-neg", "sqrt(-4)", &arith.DomainError{Func: "sqrt", X: -4}},
		{"ln-neg", "ln(-1)", &arith.DomainError{Func: "ln", X: -1}},
		{"asin-big", "asin(2)", &arith.DomainError{Func: "asin", X: 2}},
		{"pow-frac-neg", "(-2) ^ 0.5", &arith.DomainError{Func: "^", X: -2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := arith.EvalString(c.src)
			assert.Equal(t, c.want, err)
		})
	}
}

// Overflow is not an error: results that leave float64 range are infinities.
func TestEvalInfinity(t *testing.T) {
	for _, src := range []string{"1E309", "1E308 * 10", "2 ^ 9999"} {
		r, err := arith.EvalString(src)
		require.NoError(t, err, src)
		assert.True(t, math.IsInf(r, 1), "%s = %g, want +Inf", src, r)
	}
}

func TestEvalIdempotent(t *testing.T) {
	const src = "2 + 3 * 4 - sqrt(25)"
	a, err := arith.Parse(strings.NewReader(src))
	require.NoError(t, err)
	ctx := arith.NewContext()
	r1, err := a.Eval(ctx)
	require.NoError(t, err)
	r2, err := a.Eval(ctx)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	r3, err := arith.EvalString(src)
	require.NoError(t, err)
	assert.Equal(t, r1, r3)
}

func TestEvalVars(t *testing.T) {
	r, err := arith.EvalString("x^2 + y", arith.SetVar("x", 3), arith.SetVar("y", 1))
	require.NoError(t, err)
	assert.Equal(t, 10.0, r)

	a, err := arith.Parse(strings.NewReader("x^2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, a.Vars())
	ctx := arith.NewContext(arith.SetVars(map[string]float64{"x": 4}))
	r, err = a.Eval(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16.0, r)

	// A clone's definitions don't leak back.
	r, err = a.Eval(ctx.Clone(arith.SetVar("x", 5)))
	require.NoError(t, err)
	assert.Equal(t, 25.0, r)
	r, err = a.Eval(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16.0, r)
}

func TestEvalDegrees(t *testing.T) {
	ctx := arith.NewContext(arith.Degrees())
	cases := []struct {
		src  string
		want float64
	}{
		{"sin(90)", 1},
		{"cos(180)", -1},
		{"tan(45)", 1},
		{"asin(1)", 90},
		{"acos(0)", 90},
		{"atan(1)", 45},
	}
	for _, c := range cases {
		a, err := arith.Parse(strings.NewReader(c.src))
		require.NoError(t, err, c.src)
		r, err := a.Eval(ctx)
		require.NoError(t, err, c.src)
		assert.InDelta(t, c.want, r, 1e-9, c.src)
	}
}

type yamlCase struct {
	Label string  `yaml:"label"`
	Input string  `yaml:"input"`
	Want  float64 `yaml:"want"`
	Error string  `yaml:"error"`
}

// TestEvalYAML runs the regression cases in testdata/eval.yaml through the
// whole pipeline.
func TestEvalYAML(t *testing.T) {
	s, err := os.ReadFile("testdata/eval.yaml")
	require.NoError(t, err)
	var cases []yamlCase
	require.NoError(t, yaml.Unmarshal(s, &cases))
	for _, c := range cases {
		t.Run(c.Label, func(t *testing.T) {
			r, err := arith.EvalString(c.Input)
			if c.Error != "" {
				require.Error(t, err)
				assert.EqualError(t, err, c.Error)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, c.Want, r, 1e-9)
		})
	}
}
