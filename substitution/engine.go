package substitution

import (
	"fmt"
	"strconv"
	"strings"
)

// Substitute performs a global literal replacement of every occurrence of
// target with replacement in code. It is the simplest of the five public
// operations.
func Substitute(code, target, replacement string) string {
	if target == "" {
		return code
	}
	return strings.ReplaceAll(code, target, replacement)
}

// NameSubstitution rewrites, for each n in names, every occurrence of
// $(n+suffix) into the indexed device-memory access spec.md §3 requires:
// "n[idExpr]" normally, or the ring-buffer access "n[(queueOffset)*stride +
// (idExpr)]" once some downstream group reads n through a delay and
// queueOffset names the delay-slot expression Finalize's queue propagation
// computed for it. idExpr is whatever the caller already knows resolves to
// a concrete index at the point this var's access becomes required — a
// thread's own local id, a per-connection loop variable, or the deferred
// function-template placeholder "$(0)" a connectivity row-build snippet
// hasn't bound yet. Passing an empty queueOffset always selects the plain
// form, so callers for unqueued groups need not special-case anything.
func NameSubstitution(code string, names []string, idExpr, queueOffset string, stride int, suffix string) string {
	for _, n := range names {
		pattern := "$(" + n + suffix + ")"
		replacement := fmt.Sprintf("%s[%s]", n, idExpr)
		if queueOffset != "" {
			replacement = fmt.Sprintf("%s[(%s)*%d + (%s)]", n, queueOffset, stride, idExpr)
		}
		code = strings.ReplaceAll(code, pattern, replacement)
	}
	return code
}

// ValueSubstitution replaces, for each pair (names[i], values[i]), every
// occurrence of $(names[i]+suffix) with a full-precision, round-trippable
// decimal literal for values[i] ("no digits lost" per spec.md §4.1). The
// literal carries no type suffix yet — EnsureFtype performs that coercion
// in a later pass, once the target Precision is known at the call site.
func ValueSubstitution(code string, names []string, values []float64, suffix string) string {
	for i, n := range names {
		if i >= len(values) {
			break
		}
		pattern := "$(" + n + suffix + ")"
		literal := strconv.FormatFloat(values[i], 'g', -1, 64)
		code = strings.ReplaceAll(code, pattern, literal)
	}
	return code
}
