package analyzer

import (
	"regexp"
	"strings"
)

// complexityWarnThreshold is the cyclomatic complexity above which a
// non-blocking warning is raised.
const complexityWarnThreshold = 100

var (
	functionRe = regexp.MustCompile(`\bfunction\b|=>`)
	classRe    = regexp.MustCompile(`\bclass\s+[A-Za-z_$]`)
	branchRe   = regexp.MustCompile(`\bif\b|\bfor\b|\bwhile\b|\bcase\b|\bcatch\b`)

	// Ternary conditionals; excludes optional chaining (?.), nullish
	// coalescing (??) and optional member declarations (?:).
	ternaryRe = regexp.MustCompile(`\?[^.?:]`)
)

// computeMetrics derives size and complexity estimates from source text.
// These are heuristics over raw text, not a parse: function and class counts
// come from keyword occurrences, complexity is 1 plus the count of branch
// points, and estimated memory charges two bytes per source byte plus a
// fixed overhead per function.
func computeMetrics(source string) Metrics {
	functionCount := len(functionRe.FindAllStringIndex(source, -1))

	complexity := 1 +
		len(branchRe.FindAllStringIndex(source, -1)) +
		len(ternaryRe.FindAllStringIndex(source, -1))

	return Metrics{
		LineCount:       strings.Count(source, "\n") + 1,
		FunctionCount:   functionCount,
		ClassCount:      len(classRe.FindAllStringIndex(source, -1)),
		Complexity:      complexity,
		EstimatedMemory: len(source)*2 + functionCount*1000,
	}
}
