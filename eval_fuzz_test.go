package arith_test

import (
	"testing"

	"github.com/evaluants/arith"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("5 / 0")
	f.Add("sin(pi/2) ^ 2")
	f.Fuzz(func(t *testing.T, s string) {
		arith.EvalString(s, arith.SetVar("x", 1))
	})
}
