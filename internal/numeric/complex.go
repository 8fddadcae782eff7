package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AddComplex returns a + b.
func AddComplex(a, b Complex) Complex {
	return Complex{Re: a.Re + b.Re, Im: a.Im + b.Im}
}

// SubComplex returns a - b.
func SubComplex(a, b Complex) Complex {
	return Complex{Re: a.Re - b.Re, Im: a.Im - b.Im}
}

// MulComplex returns a * b.
func MulComplex(a, b Complex) Complex {
	return Complex{
		Re: a.Re*b.Re - a.Im*b.Im,
		Im: a.Re*b.Im + a.Im*b.Re,
	}
}

// DivComplex returns a / b.
// Returns a DIVISION_BY_ZERO kernel error when b is exactly zero.
func DivComplex(a, b Complex) (Complex, error) {
	denom := b.Re*b.Re + b.Im*b.Im
	if denom == 0 {
		return Complex{}, &KernelError{
			Code:    ErrCodeDivisionByZero,
			Op:      "complex divide",
			Message: "denominator is zero",
		}
	}
	return Complex{
		Re: (a.Re*b.Re + a.Im*b.Im) / denom,
		Im: (a.Im*b.Re - a.Re*b.Im) / denom,
	}, nil
}

// Conj returns the complex conjugate of c.
func Conj(c Complex) Complex {
	return Complex{Re: c.Re, Im: -c.Im}
}

// Abs returns the magnitude sqrt(re^2 + im^2).
// Uses math.Hypot to avoid intermediate overflow.
func Abs(c Complex) float64 {
	return math.Hypot(c.Re, c.Im)
}

// Phase returns the argument atan2(im, re) in radians.
func Phase(c Complex) float64 {
	return math.Atan2(c.Im, c.Re)
}

// String renders the complex value in a+bi form ("3+4i", "2-5i", "i").
func (c Complex) String() string {
	if c.Im == 0 {
		return formatFloat(c.Re)
	}
	imPart := ""
	switch c.Im {
	case 1:
		imPart = "i"
	case -1:
		imPart = "-i"
	default:
		imPart = formatFloat(c.Im) + "i"
	}
	if c.Re == 0 {
		return imPart
	}
	if c.Im > 0 {
		return formatFloat(c.Re) + "+" + strings.TrimPrefix(imPart, "+")
	}
	return formatFloat(c.Re) + imPart
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseComplex parses engineering complex notation.
//
// Accepted forms: "3+4i", "2-5j", "4i", "-i", "i", and plain reals
// ("2.5", "-1e3"). Both "i" and "j" mark the imaginary unit; whitespace
// anywhere in the number ("3 + 4i") is ignored.
func ParseComplex(s string) (Complex, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if trimmed == "" {
		return Complex{}, malformedComplex(s, "empty input")
	}

	// Normalize the engineering "j" suffix to "i".
	norm := strings.ReplaceAll(trimmed, "j", "i")

	if !strings.Contains(norm, "i") {
		re, err := strconv.ParseFloat(norm, 64)
		if err != nil {
			return Complex{}, malformedComplex(s, "not a number")
		}
		return Complex{Re: re}, nil
	}

	// Pure imaginary: "i", "-i", "+i", "4i", "-2.5i".
	if strings.Count(norm, "i") != 1 || !strings.HasSuffix(norm, "i") {
		return Complex{}, malformedComplex(s, "imaginary unit must be a single trailing i or j")
	}
	body := strings.TrimSuffix(norm, "i")

	// Find the sign that splits the real part from the imaginary part.
	// Skip index 0 (leading sign) and signs that belong to an exponent.
	split := -1
	for idx := len(body) - 1; idx > 0; idx-- {
		ch := body[idx]
		if ch != '+' && ch != '-' {
			continue
		}
		if prev := body[idx-1]; prev == 'e' || prev == 'E' {
			continue
		}
		split = idx
		break
	}

	if split == -1 {
		im, err := parseImagCoeff(body)
		if err != nil {
			return Complex{}, malformedComplex(s, "bad imaginary coefficient")
		}
		return Complex{Im: im}, nil
	}

	re, err := strconv.ParseFloat(body[:split], 64)
	if err != nil {
		return Complex{}, malformedComplex(s, "bad real part")
	}
	im, err := parseImagCoeff(body[split:])
	if err != nil {
		return Complex{}, malformedComplex(s, "bad imaginary part")
	}
	return Complex{Re: re, Im: im}, nil
}

// parseImagCoeff parses the coefficient in front of the imaginary unit,
// where a bare sign (or nothing) means 1.
func parseImagCoeff(coeff string) (float64, error) {
	switch coeff {
	case "", "+":
		return 1, nil
	case "-":
		return -1, nil
	}
	return strconv.ParseFloat(coeff, 64)
}

func malformedComplex(input, reason string) *KernelError {
	return &KernelError{
		Code:    ErrCodeMalformedComplex,
		Op:      "parse",
		Message: fmt.Sprintf("%s: %q", reason, input),
	}
}
