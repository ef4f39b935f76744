package arith

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Context is a set of definitions for evaluating expressions: constant and
// variable values, the function table, and the angle mode. It is not safe to
// use a Context concurrently.
type Context struct {
	names map[string]float64
	funcs map[string]Func
	deg   bool
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	fnopt   struct {
		name string
		fn   Func
	}
	fnsopt map[string]Func
	degopt struct{}
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (fnopt) ctxOption()   {}
func (fnsopt) ctxOption()  {}
func (degopt) ctxOption()  {}

// SetVar sets the value of a constant or variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of constants or variables in the
// context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// SetFunc sets a function in the context. To remove a function, including a
// default one, pass nil for fn.
func SetFunc(name string, fn Func) ContextOption {
	return fnopt{name, fn}
}

// SetFuncs sets a group of functions in the context. To remove any function,
// set it to nil.
func SetFuncs(fns map[string]Func) ContextOption {
	return fnsopt(fns)
}

// Degrees makes the trigonometric functions in the context measure angles in
// degrees instead of radians.
func Degrees() ContextOption {
	return degopt{}
}

// NewContext creates a new evaluation context. The context starts with the
// constants pi and e and the default function table, measuring angles in
// radians.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		names: map[string]float64{
			"pi": math.Pi,
			"e":  math.E,
		},
	}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Definitions on
// the clone do not affect the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]float64, len(ctx.names)),
		deg:   ctx.deg,
	}
	for k, v := range ctx.names {
		n.names[k] = v
	}
	if ctx.funcs != nil {
		n.funcs = make(map[string]Func, len(ctx.funcs))
		for k, v := range ctx.funcs {
			n.funcs[k] = v
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case fnopt:
			n.setfn(opt.name, opt.fn)
		case fnsopt:
			for k, v := range opt {
				n.setfn(k, v)
			}
		case degopt:
			n.deg = true
		default:
			panic("arith: unknown option type")
		}
	}
	return &n
}

// setfn sets a function, copying the default table first if the context is
// still sharing it.
func (ctx *Context) setfn(name string, fn Func) {
	if ctx.funcs == nil {
		ctx.funcs = make(map[string]Func, len(globalfuncs)+1)
		for k, v := range globalfuncs {
			ctx.funcs[k] = v
		}
	}
	if fn == nil {
		delete(ctx.funcs, name)
		return
	}
	ctx.funcs[name] = fn
}

// Set sets the value of a constant or variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value float64) *Context {
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a constant or variable and whether the context
// defines it.
func (ctx *Context) Lookup(name string) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// fn looks up a function by name.
func (ctx *Context) fn(name string) Func {
	if ctx.funcs == nil {
		return globalfuncs[name]
	}
	return ctx.funcs[name]
}

// Eval evaluates an expression with the context's definitions and returns
// the result.
//
// Arithmetic is float64 throughout. A result that overflows to an infinity,
// or a NaN produced by arithmetic on infinities, is returned as an ordinary
// value; errors are reserved for division by exactly zero, arguments outside
// a function's domain, and names the context does not define.
func (e *Expr) Eval(ctx *Context) (float64, error) {
	return e.n.eval(ctx)
}

// eval computes the value of the subtree rooted at n. Children are evaluated
// before their parent's operator is applied.
func (n *node) eval(ctx *Context) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		v, ok := ctx.names[n.name]
		if !ok {
			return 0, &NameError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		fn := ctx.fn(n.name)
		if fn == nil {
			return 0, &NameError{Name: n.name}
		}
		x, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		return fn.Call(ctx, x)
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeNop:
		return n.left.eval(ctx)
	case nodeAdd:
		l, r, err := n.eval2(ctx)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case nodeSub:
		l, r, err := n.eval2(ctx)
		if err != nil {
			return 0, err
		}
		return l - r, nil
	case nodeMul:
		l, r, err := n.eval2(ctx)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case nodeDiv:
		l, r, err := n.eval2(ctx)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, &DivisionError{}
		}
		return l / r, nil
	case nodePow:
		l, r, err := n.eval2(ctx)
		if err != nil {
			return 0, err
		}
		v := math.Pow(l, r)
		// Pow is NaN for a negative base with a fractional exponent; that is
		// a domain violation, not a result.
		if math.IsNaN(v) && !math.IsNaN(l) && !math.IsNaN(r) {
			return 0, &DomainError{Func: "^", X: l}
		}
		return v, nil
	default:
		panic("arith: invalid AST node " + n.kind.String())
	}
}

// eval2 evaluates both operands of a binary node.
func (n *node) eval2(ctx *Context) (float64, float64, error) {
	l, err := n.left.eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// Eval is a shortcut to parse an expression and evaluate it with a new
// context using the given options.
func Eval(src io.RuneScanner, opts ...ContextOption) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval(NewContext(opts...))
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup of a name that is missing from the
// evaluation context, whether it was written as a variable or called as a
// function.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined name: " + strconv.Quote(err.Name)
}

// DivisionError is an error from dividing by exactly zero. Division never
// silently produces an infinity or NaN.
type DivisionError struct{}

func (err *DivisionError) Error() string {
	return "division by zero"
}
