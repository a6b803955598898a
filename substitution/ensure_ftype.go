package substitution

import (
	"regexp"
	"strings"

	"github.com/sbl8/sublation/core"
)

// literal-coercion scanner states, named exactly as spec.md §4.1's table.
type ftypeState int

const (
	stateLeadIn ftypeState = iota // S0: looking for lead-in
	stateMayStart                 // S1: may start number
	stateInteger                  // S2: integer body
	stateFraction                 // S3: fractional body
	stateExpMark                  // S4: after exponent mark
	stateExpSign                  // S5: after exponent sign
	stateExpDigits                // S6: exponent digits
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isExpMarker(c byte) bool { return c == 'e' || c == 'E' }
func isSign(c byte) bool { return c == '+' || c == '-' }
func isTrailingLetter(c byte) bool { return c == 'f' || c == 'F' }

// isOpChar classifies whitespace and C operator/punctuation characters —
// the "op" column of the ensure_ftype state table.
func isOpChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r',
		'+', '-', '*', '/', '%', '<', '>', '=', '!', '&', '|', '^', '~',
		',', ';', ':', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// coerceLiteral inserts or strips the trailing precision suffix on a
// floating literal, matching "emit" in spec.md §4.1: for PrecisionSingle,
// append "f" if absent; otherwise, strip a trailing f/F if present.
func coerceLiteral(lit string, target core.Precision) string {
	hasSuffix := strings.HasSuffix(lit, "f") || strings.HasSuffix(lit, "F")
	if target == core.PrecisionSingle {
		if hasSuffix {
			return lit
		}
		return lit + "f"
	}
	if hasSuffix {
		return lit[:len(lit)-1]
	}
	return lit
}

// coerceLiterals runs the seven-state literal-coercion scanner over code,
// inserting or stripping the "f" suffix on floating-point literals so that
// every literal matches target. Integer-looking tokens (digits with no dot
// or exponent marker) are left untouched, including at end-of-input: per
// spec.md §9's resolved open question, a bare trailing integer such as "3"
// is a pass-through, never coerced into "3f".
//
// Grounded on compiler/compiler.go's parseLine/parseIterateBlock explicit
// index-driven scanning style, generalized from line-oriented state to
// character-oriented state.
func coerceLiterals(code string, target core.Precision) string {
	var out strings.Builder
	out.Grow(len(code) + 8)

	state := stateLeadIn
	var token strings.Builder

	flush := func(coerce bool) {
		if token.Len() == 0 {
			return
		}
		if coerce {
			out.WriteString(coerceLiteral(token.String(), target))
		} else {
			out.WriteString(token.String())
		}
		token.Reset()
	}

	for i := 0; i < len(code); i++ {
		c := code[i]
		switch state {
		case stateLeadIn:
			out.WriteByte(c)
			if isOpChar(c) {
				state = stateMayStart
			}

		case stateMayStart:
			switch {
			case isDigit(c):
				token.WriteByte(c)
				state = stateInteger
			case c == '.':
				token.WriteByte(c)
				state = stateFraction
			case isOpChar(c):
				out.WriteByte(c)
			default:
				out.WriteByte(c)
				state = stateLeadIn
			}

		case stateInteger:
			switch {
			case isDigit(c):
				token.WriteByte(c)
			case c == '.':
				token.WriteByte(c)
				state = stateFraction
			case isExpMarker(c):
				token.WriteByte(c)
				state = stateExpMark
			case isOpChar(c):
				flush(false) // fix-int: pass through unchanged
				out.WriteByte(c)
				state = stateMayStart
			default:
				flush(false)
				out.WriteByte(c)
				state = stateLeadIn
			}

		case stateFraction:
			switch {
			case isDigit(c):
				token.WriteByte(c)
			case isExpMarker(c):
				token.WriteByte(c)
				state = stateExpMark
			case isTrailingLetter(c):
				token.WriteByte(c)
				flush(true)
				state = stateLeadIn
			case isOpChar(c):
				flush(true)
				out.WriteByte(c)
				state = stateMayStart
			default:
				flush(true)
				out.WriteByte(c)
				state = stateLeadIn
			}

		case stateExpMark:
			switch {
			case isDigit(c):
				token.WriteByte(c)
				state = stateExpDigits
			case isSign(c):
				token.WriteByte(c)
				state = stateExpSign
			case isOpChar(c):
				// malformed exponent ("1e" followed by an operator): not
				// a complete float, pass through unchanged.
				flush(false)
				out.WriteByte(c)
				state = stateMayStart
			default:
				flush(false)
				out.WriteByte(c)
				state = stateLeadIn
			}

		case stateExpSign:
			switch {
			case isDigit(c):
				token.WriteByte(c)
				state = stateExpDigits
			case isOpChar(c):
				flush(false)
				out.WriteByte(c)
				state = stateMayStart
			default:
				flush(false)
				out.WriteByte(c)
				state = stateLeadIn
			}

		case stateExpDigits:
			switch {
			case isDigit(c):
				token.WriteByte(c)
			case isTrailingLetter(c):
				token.WriteByte(c)
				flush(true)
				state = stateLeadIn
			case isOpChar(c):
				flush(true)
				out.WriteByte(c)
				state = stateMayStart
			default:
				flush(true)
				out.WriteByte(c)
				state = stateLeadIn
			}
		}
	}

	// End-of-input: only a fractional body or exponent-digits body is a
	// complete float: coerce it. An integer body ("3") or a truncated
	// exponent ("1e", "1e+") is passed through unchanged.
	switch state {
	case stateFraction, stateExpDigits:
		flush(true)
	default:
		flush(false)
	}

	return out.String()
}

// mathFunctionEntry pairs a double-precision math function name with its
// single-precision ("f"-suffixed) counterpart, plus the precompiled
// word-boundary patterns used to rewrite calls in either direction.
type mathFunctionEntry struct {
	double   string
	single   string
	toSingle *regexp.Regexp
	toDouble *regexp.Regexp
}

// mathFunctionNames is the 55-entry table of C/CUDA math library functions
// whose single- and double-precision spellings differ only by a trailing
// "f". Grounded on spec.md §4.1's requirement for "a fixed table (cos <->
// cosf, pow <-> powf, ..., 55 entries)".
var mathFunctionNames = []string{
	"sin", "cos", "tan", "asin", "acos", "atan", "atan2",
	"sinh", "cosh", "tanh", "asinh", "acosh", "atanh",
	"exp", "exp2", "exp10", "expm1",
	"log", "log2", "log10", "log1p", "logb", "ilogb",
	"pow", "sqrt", "rsqrt", "cbrt", "hypot",
	"fabs", "floor", "ceil", "round", "trunc", "nearbyint", "rint",
	"fmod", "remainder", "remquo",
	"copysign", "nextafter",
	"fdim", "fmax", "fmin", "fma",
	"erf", "erfc", "erfinv", "erfcinv",
	"lgamma", "tgamma",
	"j0", "j1", "y0", "y1",
	"scalbn",
}

var mathFunctionTable []mathFunctionEntry

func init() {
	mathFunctionTable = make([]mathFunctionEntry, 0, len(mathFunctionNames))
	for _, name := range mathFunctionNames {
		single := name + "f"
		mathFunctionTable = append(mathFunctionTable, mathFunctionEntry{
			double:   name,
			single:   single,
			toSingle: regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\(`),
			toDouble: regexp.MustCompile(`\b` + regexp.QuoteMeta(single) + `\(`),
		})
	}
}

// ensureMathPrecision rewrites every call to a known math function in code
// to the spelling matching target, e.g. "cos(x)" -> "cosf(x)" for single
// precision, or the reverse for double/extended.
func ensureMathPrecision(code string, target core.Precision) string {
	for _, entry := range mathFunctionTable {
		if target == core.PrecisionSingle {
			code = entry.toSingle.ReplaceAllString(code, entry.single+"(")
		} else {
			code = entry.toDouble.ReplaceAllString(code, entry.double+"(")
		}
	}
	return code
}

// EnsureFtype is the numeric literal and math-function precision coercion
// pass: it runs the literal-suffix state machine, then a companion pass
// rewriting math-function names against the 55-entry table, so that a code
// string handed to one backend's precision is byte-for-byte ready to emit.
// Both passes are idempotent and non-interfering (spec.md §8): running
// EnsureFtype twice, or running it over code with no floating literals or
// math calls, leaves the result unchanged.
func EnsureFtype(code string, target core.Precision) string {
	code = coerceLiterals(code, target)
	code = ensureMathPrecision(code, target)
	return code
}
