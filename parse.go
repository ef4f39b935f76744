package arith

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Sum     = Term { ('+' | '-') Term }
// Term    = Unary { ('*' | '/') Unary }
// Unary   = ['-' | '+'] Power
// Power   = Primary ['^' Unary]
// Primary = num | name | name '(' Sum ')' | '(' Sum ')'
//
// Unary minus binds tighter than multiplication and division but looser
// than exponentiation: -2*3 is (-2)*3, while -2^2 is -(2^2).

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of constant and variable names used in the
	// expression.
	names []string
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	switch {
	case n == nil:
		if tok.kind == tokenEOF {
			return nil, &EmptyExpressionError{Col: tok.pos}
		}
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	case tok.kind != tokenEOF:
		// The parser must consume exactly to the end of the input; anything
		// left over is an error, including "2 2".
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an
// error in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil || n == nil {
		return n, err
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, unexpectedEnd(scan.must())
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen, tokenClose, tokenEOF:
			// End of this term. A token that cannot continue the expression
			// is left for the caller; Parse reports leftovers.
			scan.push(tok)
			return n, nil
		default:
			panic("arith: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := numval(tok)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeNum, name: tok.text, val: v}
	case tokenIdent:
		nxt, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		if nxt.kind != tokenOpen {
			// A bare name. Whether it means anything is the evaluation
			// context's business, not the parser's.
			scan.push(nxt)
			p.names[tok.text] = true
			n = &node{kind: nodeName, name: tok.text}
			break
		}
		arg, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, closeparen(end)
		}
		if arg == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: nodeCall, name: tok.text, right: arg}
	case tokenOp:
		// Unary operator.
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &TokenError{Col: tok.pos, Token: tok.text}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, unexpectedEnd(scan.must())
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, closeparen(end)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose, tokenEOF:
		// Let the caller decide what this means.
		scan.push(tok)
		return nil, nil
	default:
		panic("arith: unknown token: " + tok.String())
	}
	return n, nil
}

// numval converts a scanned number token to its value. The lexer only emits
// literals strconv accepts; values too large for a float64 round to an
// infinity, which is an ordinary result.
func numval(tok lexToken) (float64, error) {
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	return v, nil
}

// unexpectedEnd returns an error for a token that ended a subexpression where
// a term was still expected.
func unexpectedEnd(tok lexToken) error {
	return &TokenError{Col: tok.pos, Token: tok.text}
}

// closeparen returns an error for a token that appeared where a close
// parenthesis was required.
func closeparen(end lexToken) error {
	if end.kind == tokenEOF {
		return &BracketError{Col: end.pos}
	}
	return &TokenError{Col: end.pos, Token: end.text}
}

// Vars returns the names of the constants and variables the expression
// references, sorted.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets the binary operator for a token string. The lexer only emits
// operator tokens binop understands.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		panic("arith: no binary operator " + strconv.Quote(text))
	}
}

// unop gets the unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
