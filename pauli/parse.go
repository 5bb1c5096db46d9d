// SPDX-License-Identifier: MIT

package pauli

import (
	"fmt"
	"math/cmplx"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a sentence written as a sum of terms, e.g.
//
//	"X0 X1"
//	"0.5*Z0 Z1 - X0"
//	"(1+2i)*Y0@Y2 + 1e-3*Z1"
//
// A term is an optional complex coefficient followed by '*' and a word. Word
// factors are separated by spaces or '@'; a factor is one of I, X, Y, Z
// followed by a wire number ("I" alone is the identity word). A bare number
// is a multiple of the identity.
//
// Errors: ErrParse (wrapped with the offending fragment), ErrDuplicateWire.
func Parse(src string) (Sentence, error) {
	pieces, signs, err := splitTerms(src)
	if err != nil {
		return Sentence{}, err
	}
	if len(pieces) == 0 {
		return Sentence{}, fmt.Errorf("Parse: %q: empty input: %w", src, ErrParse)
	}

	terms := make([]Term, 0, len(pieces))
	for i, p := range pieces {
		t, err := parseTerm(p)
		if err != nil {
			return Sentence{}, err
		}
		t.Coeff *= complex(signs[i], 0)
		terms = append(terms, t)
	}

	return NewSentence(terms...), nil
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(src string) Sentence {
	s, err := Parse(src)
	if err != nil {
		panic(err)
	}

	return s
}

// splitTerms cuts src at top-level '+' and '-' signs. Signs inside parentheses
// and exponent signs ("1e-3") do not split.
func splitTerms(src string) (pieces []string, signs []float64, err error) {
	var (
		depth int
		start int
		sign  = 1.0
	)
	flush := func(end int, next float64) {
		p := strings.TrimSpace(src[start:end])
		if p == "" {
			// Consecutive or leading signs combine.
			sign *= next
			return
		}
		pieces = append(pieces, p)
		signs = append(signs, sign)
		sign = next
	}

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, nil, fmt.Errorf("Parse: %q: unbalanced ')': %w", src, ErrParse)
			}
		case '+', '-':
			if depth > 0 || isExponentSign(src, i) {
				continue
			}
			next := 1.0
			if c == '-' {
				next = -1
			}
			flush(i, next)
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, nil, fmt.Errorf("Parse: %q: unbalanced '(': %w", src, ErrParse)
	}
	tail := strings.TrimSpace(src[start:])
	if tail == "" {
		if len(pieces) > 0 || start > 0 {
			return nil, nil, fmt.Errorf("Parse: %q: dangling sign: %w", src, ErrParse)
		}
		return nil, nil, nil
	}
	pieces = append(pieces, tail)
	signs = append(signs, sign)

	return pieces, signs, nil
}

// isExponentSign reports whether src[i] is the sign of a float exponent.
func isExponentSign(src string, i int) bool {
	if i < 2 || (src[i-1] != 'e' && src[i-1] != 'E') {
		return false
	}
	prev := src[i-2]

	return (prev >= '0' && prev <= '9') || prev == '.'
}

// parseTerm reads "coeff*word", "word" or "coeff".
func parseTerm(p string) (Term, error) {
	coeffSrc, wordSrc, found := strings.Cut(p, "*")
	if !found {
		if c, err := parseCoeff(p); err == nil {
			return Term{Coeff: c}, nil
		}
		w, err := parseWord(p)
		if err != nil {
			return Term{}, err
		}
		return Term{Word: w, Coeff: 1}, nil
	}

	c, err := parseCoeff(strings.TrimSpace(coeffSrc))
	if err != nil {
		return Term{}, fmt.Errorf("Parse: coefficient %q: %w", coeffSrc, ErrParse)
	}
	w, err := parseWord(wordSrc)
	if err != nil {
		return Term{}, err
	}

	return Term{Word: w, Coeff: c}, nil
}

// parseCoeff accepts finite complex literals only.
func parseCoeff(s string) (complex128, error) {
	c, err := strconv.ParseComplex(strings.ReplaceAll(s, " ", ""), 128)
	if err != nil {
		return 0, err
	}
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		return 0, fmt.Errorf("non-finite coefficient %v", c)
	}

	return c, nil
}

// parseWord reads factors like "X0 Y1" or "X0@Y1".
func parseWord(src string) (Word, error) {
	fields := strings.FieldsFunc(src, func(r rune) bool { return r == '@' || unicode.IsSpace(r) })
	if len(fields) == 0 {
		return Word{}, fmt.Errorf("Parse: word %q: empty: %w", src, ErrParse)
	}

	factors := make([]Factor, 0, len(fields))
	for _, f := range fields {
		if f == "I" {
			continue
		}
		var op Pauli
		switch f[0] {
		case 'I':
			op = I
		case 'X':
			op = X
		case 'Y':
			op = Y
		case 'Z':
			op = Z
		default:
			return Word{}, fmt.Errorf("Parse: factor %q: %w", f, ErrParse)
		}
		wire, err := strconv.Atoi(f[1:])
		if err != nil || strings.HasPrefix(f[1:], "+") {
			return Word{}, fmt.Errorf("Parse: factor %q: %w", f, ErrParse)
		}
		if wire < 0 {
			return Word{}, fmt.Errorf("Parse: factor %q: %w", f, ErrInvalidWire)
		}
		factors = append(factors, Factor{Wire: wire, Op: op})
	}

	return NewWord(factors...)
}
