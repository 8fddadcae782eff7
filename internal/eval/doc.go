// Package eval parses and evaluates engineering expressions against a
// merged symbol context.
//
// Expression grammar (precedence low to high):
//
//	expr    = term    (("+" | "-") term)*
//	term    = unary   (("*" | "/" | "%") unary)*
//	unary   = ("-" | "+") unary | power
//	power   = primary ("^" unary)?           // right associative; -2^2 is -(2^2)
//	primary = number [unit] | imaginary | ident | call | matrix | "(" expr ")"
//	call    = ident "(" [expr ("," expr)*] ")"
//	matrix  = "[" "[" expr,... "]" ("," "[" expr,... "]")* "]"
//
// A numeric literal immediately followed by an identifier token is a
// unit-tagged quantity ("2.5 kPa"); the identifier must name a
// registered unit. Unit tags survive a bare tagged literal and +/-
// between same-dimension quantities (the right operand is converted to
// the left operand's unit first). Tags are dropped through *, /, ^, and
// %: the engine does not derive compound dimensions.
//
// Identifier resolution: call syntax resolves against the function
// table; bare identifiers resolve against the merged context. An
// unresolved identifier is an UNKNOWN_IDENTIFIER error naming the
// symbol; there is no symbolic fallback.
//
// Evaluation is a pure function of (expression, context): it never
// mutates the symbol store.
package eval
