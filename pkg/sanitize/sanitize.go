// Package sanitize normalizes free-form arithmetic expressions into the form
// the calculator's evaluator accepts.
package sanitize

import "strings"

// Namespace-style prefixes models frequently emit when naming math functions.
// The evaluator takes bare function names, so every occurrence is stripped.
var strippedPrefixes = []string{"math.", "Math.", "numpy.", "np."}

// Expression strips the known namespace prefixes from a raw expression.
// Pure and idempotent; an expression with no matching prefixes passes
// through unchanged. Removing one prefix can splice a new occurrence
// together (e.g. "mMath.ath." collapses to "math."), so the passes repeat
// until the output stops changing. Each pass only shortens the string, so
// the loop terminates.
func Expression(raw string) string {
	out := raw
	for {
		prev := out
		for _, prefix := range strippedPrefixes {
			out = strings.ReplaceAll(out, prefix, "")
		}
		if out == prev {
			return out
		}
	}
}
