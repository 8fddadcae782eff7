package eval

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokImag // numeric literal with trailing i/j
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokEquals
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the source expression
}

// lex tokenizes an expression. The only context sensitivity is the
// imaginary suffix: digits immediately followed by a lone i or j form a
// single imaginary literal ("4i"), while "4in" is a number then the
// identifier "in".
func lex(src string) ([]token, error) {
	var out []token
	i := 0
	n := len(src)

	for i < n {
		ch := src[i]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++

		case ch >= '0' && ch <= '9' || ch == '.':
			start := i
			i = scanNumber(src, i)
			if i == start {
				return nil, parseError(start, "malformed number")
			}
			kind := tokNumber
			// Imaginary suffix: i/j not followed by an identifier char.
			if i < n && (src[i] == 'i' || src[i] == 'j') {
				if i+1 >= n || !isIdentChar(rune(src[i+1])) {
					kind = tokImag
					i++
				}
			}
			text := src[start:i]
			if kind == tokImag {
				text = text[:len(text)-1]
			}
			out = append(out, token{kind: kind, text: text, pos: start})

		case isIdentStart(rune(ch)):
			start := i
			for i < n && isIdentChar(rune(src[i])) {
				i++
			}
			text := src[start:i]
			// A lone imaginary unit is an imaginary literal of 1.
			if text == "i" || text == "j" {
				out = append(out, token{kind: tokImag, text: "1", pos: start})
			} else {
				out = append(out, token{kind: tokIdent, text: text, pos: start})
			}

		default:
			kind, ok := punctKind(ch)
			if !ok {
				return nil, parseError(i, "unexpected character %q", string(ch))
			}
			out = append(out, token{kind: kind, text: string(ch), pos: i})
			i++
		}
	}

	out = append(out, token{kind: tokEOF, pos: n})
	return out, nil
}

// scanNumber consumes digits, one decimal point, and an optional
// exponent; returns the index past the literal.
func scanNumber(src string, i int) int {
	n := len(src)
	sawDigit := false
	sawDot := false

	for i < n {
		ch := src[i]
		if ch >= '0' && ch <= '9' {
			sawDigit = true
			i++
			continue
		}
		if ch == '.' && !sawDot {
			sawDot = true
			i++
			continue
		}
		break
	}
	if !sawDigit {
		return i
	}
	// Exponent: e or E, optional sign, at least one digit.
	if i < n && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < n && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < n && src[j] >= '0' && src[j] <= '9' {
			for j < n && src[j] >= '0' && src[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return i
}

func isIdentStart(r rune) bool {
	return r < 128 && unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func punctKind(ch byte) (tokenKind, bool) {
	switch ch {
	case '+':
		return tokPlus, true
	case '-':
		return tokMinus, true
	case '*':
		return tokStar, true
	case '/':
		return tokSlash, true
	case '%':
		return tokPercent, true
	case '^':
		return tokCaret, true
	case '(':
		return tokLParen, true
	case ')':
		return tokRParen, true
	case '[':
		return tokLBracket, true
	case ']':
		return tokRBracket, true
	case ',':
		return tokComma, true
	case '=':
		return tokEquals, true
	default:
		return tokEOF, false
	}
}

// SplitEquation splits "left = right" on the single equals sign.
// Returns an error unless exactly one = is present with non-empty sides.
func SplitEquation(equation string) (left, right string, err error) {
	parts := strings.Split(equation, "=")
	if len(parts) != 2 {
		return "", "", parseError(-1, "equation must contain exactly one '='")
	}
	left = strings.TrimSpace(parts[0])
	right = strings.TrimSpace(parts[1])
	if left == "" || right == "" {
		return "", "", parseError(-1, "equation side is empty")
	}
	return left, right, nil
}
