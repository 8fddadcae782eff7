package eval

import "strconv"

// Expression AST. Nodes are produced by parse and consumed by the
// evaluator; positions are kept for error reporting.

type node interface {
	position() int
}

type numberLit struct {
	value float64
	pos   int
}

type imagLit struct {
	value float64 // imaginary coefficient
	pos   int
}

// quantityLit is a numeric literal tagged with a unit symbol ("2.5 kPa").
// The symbol is validated against the registry at evaluation time.
type quantityLit struct {
	value float64
	unit  string
	pos   int
}

type identRef struct {
	name string
	pos  int
}

type unaryOp struct {
	op      tokenKind // tokMinus or tokPlus
	operand node
	pos     int
}

type binaryOp struct {
	op    tokenKind
	left  node
	right node
	pos   int
}

type callExpr struct {
	name string
	args []node
	pos  int
}

type matrixLit struct {
	rows [][]node
	pos  int
}

func (n numberLit) position() int   { return n.pos }
func (n imagLit) position() int     { return n.pos }
func (n quantityLit) position() int { return n.pos }
func (n identRef) position() int    { return n.pos }
func (n unaryOp) position() int     { return n.pos }
func (n binaryOp) position() int    { return n.pos }
func (n callExpr) position() int    { return n.pos }
func (n matrixLit) position() int   { return n.pos }

type parser struct {
	tokens []token
	cur    int
}

// parse turns an expression string into an AST.
func parse(src string) (node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, parseError(p.peek().pos, "unexpected token %q", p.peek().text)
	}
	return expr, nil
}

func (p *parser) peek() token { return p.tokens[p.cur] }

func (p *parser) next() token {
	t := p.tokens[p.cur]
	if t.kind != tokEOF {
		p.cur++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, parseError(t.pos, "expected %s", what)
	}
	return p.next(), nil
}

// parseExpr handles + and - (lowest precedence).
func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: t.kind, left: left, right: right, pos: t.pos}
	}
}

// parseTerm handles *, /, and %.
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokStar && t.kind != tokSlash && t.kind != tokPercent {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: t.kind, left: left, right: right, pos: t.pos}
	}
}

// parseUnary handles a leading sign. The sign binds looser than ^, so
// -2^2 reads as -(2^2), the usual mathematical convention.
func (p *parser) parseUnary() (node, error) {
	t := p.peek()
	if t.kind == tokMinus || t.kind == tokPlus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryOp{op: t.kind, operand: operand, pos: t.pos}, nil
	}
	return p.parsePower()
}

// parsePower handles ^, right associative. The exponent may carry its
// own sign (2^-3).
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binaryOp{op: tokCaret, left: base, right: exp, pos: t.pos}, nil
}

func (p *parser) parsePrimary() (node, error) {
	t := p.peek()

	switch t.kind {
	case tokNumber:
		p.next()
		value, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, parseError(t.pos, "malformed number %q", t.text)
		}
		// A literal immediately followed by an identifier is a
		// unit-tagged quantity, unless the identifier opens a call.
		if next := p.peek(); next.kind == tokIdent && p.tokens[p.cur+1].kind != tokLParen {
			p.next()
			return quantityLit{value: value, unit: next.text, pos: t.pos}, nil
		}
		return numberLit{value: value, pos: t.pos}, nil

	case tokImag:
		p.next()
		coeff, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, parseError(t.pos, "malformed imaginary literal %q", t.text)
		}
		return imagLit{value: coeff, pos: t.pos}, nil

	case tokIdent:
		p.next()
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		return identRef{name: t.text, pos: t.pos}, nil

	case tokLParen:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case tokLBracket:
		return p.parseMatrix()

	case tokEquals:
		return nil, parseError(t.pos, "'=' is not valid in an expression; use the solver for equations")

	default:
		return nil, parseError(t.pos, "unexpected token %q", t.text)
	}
}

func (p *parser) parseCall(name token) (node, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	var args []node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return callExpr{name: name.text, args: args, pos: name.pos}, nil
}

// parseMatrix parses [[a,b],[c,d]] row-list syntax. Rectangularity is
// checked at evaluation, where element counts are known values.
func (p *parser) parseMatrix() (node, error) {
	open, err := p.expect(tokLBracket, "'['")
	if err != nil {
		return nil, err
	}

	var rows [][]node
	for {
		if _, err := p.expect(tokLBracket, "'[' opening a matrix row"); err != nil {
			return nil, err
		}
		var row []node
		for {
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			row = append(row, el)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(tokRBracket, "']' closing a matrix row"); err != nil {
			return nil, err
		}
		rows = append(rows, row)

		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokRBracket, "']' closing the matrix"); err != nil {
		return nil, err
	}
	return matrixLit{rows: rows, pos: open.pos}, nil
}
