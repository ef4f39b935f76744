package arith_test

import (
	"strings"
	"testing"

	"github.com/evaluants/arith"
)

func FuzzParse(f *testing.F) {
	f.Add("2 + 3 * 4")
	f.Add("-2^2")
	f.Add("sqrt(x)")
	f.Fuzz(func(t *testing.T, s string) {
		arith.Parse(strings.NewReader(s))
	})
}
