package arith

import (
	"math"
	"strconv"
)

// Func is a function from reals to reals. Functions should not modify the
// context they are called with.
type Func interface {
	// Call evaluates the function on x. The angle mode and any other
	// definitions are available through ctx. If x is outside the function's
	// domain, Call returns a *DomainError.
	Call(ctx *Context, x float64) (float64, error)
}

var globalfuncs = map[string]Func{
	"sqrt":  monadic{"sqrt", math.Sqrt},
	"ln":    monadic{"ln", math.Log},
	"log":   monadic{"log", math.Log10},
	"abs":   monadic{"abs", math.Abs},
	"ceil":  monadic{"ceil", math.Ceil},
	"floor": monadic{"floor", math.Floor},
	"round": monadic{"round", math.Round},
	"exp":   monadic{"exp", math.Exp},

	// trig; sensitive to the context's angle mode
	"sin":  angular{"sin", math.Sin},
	"cos":  angular{"cos", math.Cos},
	"tan":  angular{"tan", math.Tan},
	"asin": inverse{"asin", math.Asin},
	"acos": inverse{"acos", math.Acos},
	"atan": inverse{"atan", math.Atan},
}

// DisableDefaultFuncs returns a functions map suitable for removing all
// default functions when passed to SetFuncs.
func DisableDefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}

type monadic struct {
	name string
	f    func(float64) float64
}

func (m monadic) Call(ctx *Context, x float64) (float64, error) {
	r := m.f(x)
	if math.IsNaN(r) && !math.IsNaN(x) {
		return 0, &DomainError{Func: m.name, X: x}
	}
	return r, nil
}

// Monadic wraps a function of one variable into a Func. If f returns NaN for
// a non-NaN argument, the call reports a *DomainError naming name.
func Monadic(name string, f func(float64) float64) Func {
	return monadic{name, f}
}

// angular is a function whose argument is an angle, converted from degrees
// when the context says so.
type angular struct {
	name string
	f    func(float64) float64
}

func (a angular) Call(ctx *Context, x float64) (float64, error) {
	if ctx.deg {
		x *= math.Pi / 180
	}
	r := a.f(x)
	if math.IsNaN(r) && !math.IsNaN(x) {
		return 0, &DomainError{Func: a.name, X: x}
	}
	return r, nil
}

// inverse is a function whose result is an angle, converted to degrees when
// the context says so.
type inverse struct {
	name string
	f    func(float64) float64
}

func (i inverse) Call(ctx *Context, x float64) (float64, error) {
	r := i.f(x)
	if math.IsNaN(r) && !math.IsNaN(x) {
		return 0, &DomainError{Func: i.name, X: x}
	}
	if ctx.deg {
		r *= 180 / math.Pi
	}
	return r, nil
}

// DomainError is an error returned when a function is called on an argument
// outside its domain, or when exponentiation would raise a negative base to
// a fractional power.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
