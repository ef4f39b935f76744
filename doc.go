// Package arith evaluates calculator-style arithmetic expressions.
//
// The syntax is what a calculator's text entry accepts: numbers, the
// operators + - * / ^, parentheses, named constants like pi and e, and
// single-argument function calls like sqrt(2). Exponentiation is
// right-associative, and unary minus binds tighter than * and / but
// looser than ^, so "-2^2" means "-(2^2)".
//
// All arithmetic is float64. Overflow to an infinity is an ordinary
// result; division by exactly zero and arguments outside a function's
// domain are errors. Every error caused by invalid input is a typed
// value from this package, never a panic.
//
// Variables let you parse an expression once and evaluate it for many
// inputs, or you can clone contexts for several expressions to share the
// same definitions.
package arith
