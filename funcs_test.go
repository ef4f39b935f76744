package arith_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaluants/arith"
)

func TestMonadic(t *testing.T) {
	relu := arith.Monadic("relu", func(x float64) float64 {
		return math.Max(x, 0)
	})
	r, err := arith.EvalString("relu(3) + relu(-3)", arith.SetFunc("relu", relu))
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
}

func TestMonadicDomain(t *testing.T) {
	// A wrapped function that produces NaN reports a domain error rather
	// than leaking the NaN.
	bad := arith.Monadic("bad", func(x float64) float64 {
		return math.NaN()
	})
	_, err := arith.EvalString("bad(7)", arith.SetFunc("bad", bad))
	assert.Equal(t, &arith.DomainError{Func: "bad", X: 7}, err)
}

func TestSetFuncOverride(t *testing.T) {
	doubled := arith.Monadic("sqrt", func(x float64) float64 {
		return 2 * x
	})
	r, err := arith.EvalString("sqrt(9)", arith.SetFunc("sqrt", doubled))
	require.NoError(t, err)
	assert.Equal(t, 18.0, r)
	// Other contexts still see the default table.
	r, err = arith.EvalString("sqrt(9)")
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
}

func TestDisableDefaultFuncs(t *testing.T) {
	_, err := arith.EvalString("sqrt(4)", arith.SetFuncs(arith.DisableDefaultFuncs()))
	assert.Equal(t, &arith.NameError{Name: "sqrt"}, err)
}
