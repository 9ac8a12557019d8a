// Package sciexpr implements a scientific calculator engine over float64.
//
// An expression is a single line of math as you'd type it into a pocket
// calculator: "2+3*4", "sin(90)", "5!", "root(3, 27)". Button glyphs such as
// "×", "√" and "π" are rewritten to plain text by Normalize before lexing, so
// text composed by a calculator keypad can be passed in directly.
//
// Trigonometric functions interpret their arguments (and inverse functions
// their results) in the angle mode of the evaluation Context. Nothing else
// depends on the mode.
//
// Parsing and evaluation share no state, so an *Expr may be evaluated from
// many goroutines at once, with the same or different contexts.
package sciexpr
