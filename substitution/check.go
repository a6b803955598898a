package substitution

import (
	"fmt"
	"strings"
)

// CheckUnresolved scans code for any remaining $(name) placeholder with a
// word-character body and fails with a diagnostic enumerating them. This is
// the correctness barrier (spec.md §4.1, §4.6) run at every point a
// generator is about to commit code to its output stream; context names the
// snippet and role being checked so the diagnostic can point at the
// offending group.
func CheckUnresolved(code, context string) error {
	residue := findPlaceholders(code)
	if len(residue) == 0 {
		return nil
	}
	return fmt.Errorf("unresolved placeholder(s) in %s: %s", context, strings.Join(residue, ", "))
}

// findPlaceholders returns every "$(...)" token remaining in code, in
// order of first appearance, without duplicates.
func findPlaceholders(code string) []string {
	var found []string
	seen := make(map[string]bool)

	i := 0
	for {
		start := strings.Index(code[i:], "$(")
		if start < 0 {
			break
		}
		start += i
		end := strings.IndexByte(code[start+2:], ')')
		if end < 0 {
			// unterminated placeholder: report what's left and stop.
			tok := code[start:]
			if !seen[tok] {
				found = append(found, tok)
				seen[tok] = true
			}
			break
		}
		end += start + 2
		tok := code[start : end+1]
		if isWordBody(code[start+2 : end]) {
			if !seen[tok] {
				found = append(found, tok)
				seen[tok] = true
			}
		}
		i = end + 1
	}
	return found
}

// isWordBody reports whether body consists only of word characters
// (letters, digits, underscore), the shape CheckUnresolved flags as a
// leftover name reference as opposed to, say, an already-rewritten
// function-call template fragment containing commas or parens.
func isWordBody(body string) bool {
	if body == "" {
		return false
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
