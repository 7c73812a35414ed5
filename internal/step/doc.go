// Package step implements the token-level grammar of STEP exchange files.
//
// Parser is a hand-written recursive-descent cursor over the source text.
// Every token method first skips whitespace and /* ... */ comments, so
// callers never handle layout. Writer is the inverse: it emits tokens and
// inserts the comma separators of the current parameter list itself.
//
// Record-level grammars are composed from these primitives by the model
// package, one parse function and one write method per record type.
//
// # Literals
//
//	#42          identifier
//	'text'       label, quotes doubled inside ('it''s')
//	.ELEMENT.    enumeration
//	.T. .F. .U.  logical
//	12 -3        integer
//	1. 0.5 1.E-07  real, the decimal point is mandatory
//	(a,b,c)      list
//	$            omitted
//	*            derived
package step
