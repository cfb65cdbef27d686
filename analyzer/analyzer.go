package analyzer

import (
	"fmt"
	"strings"
)

// Issue severities. Any error-severity issue marks the source unsafe.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// DefaultMaxCodeSize is the source size budget applied when none is configured.
const DefaultMaxCodeSize = 1 << 20

// Issue is a single finding against the submitted source.
// Line and Col are 1-based; zero means the finding has no position.
type Issue struct {
	Severity string
	Rule     string
	Message  string
	Line     int
	Col      int
}

// Metrics holds size and complexity estimates for the submitted source.
type Metrics struct {
	LineCount       int
	FunctionCount   int
	ClassCount      int
	Complexity      int
	EstimatedMemory int
}

// Result is the outcome of static analysis. It is a pure function of the
// source text; identical input always yields an identical Result.
type Result struct {
	Safe    bool
	Issues  []Issue
	Metrics Metrics
}

// Analyzer screens submitted game logic before compilation. It scans for
// forbidden APIs, checks conformance to the required game interface, and
// estimates resource metrics.
type Analyzer struct {
	maxCodeSize int
}

// New creates an Analyzer with the given source size budget.
// A non-positive budget falls back to DefaultMaxCodeSize.
func New(maxCodeSize int) *Analyzer {
	if maxCodeSize <= 0 {
		maxCodeSize = DefaultMaxCodeSize
	}
	return &Analyzer{maxCodeSize: maxCodeSize}
}

// Analyze screens source and returns all findings plus metrics.
// Checks run in a fixed order: size budget, forbidden patterns, interface
// conformance, metrics. Safe is true iff no issue has error severity.
func (a *Analyzer) Analyze(source string) Result {
	var issues []Issue

	if len(source) > a.maxCodeSize {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Rule:     "max-code-size",
			Message:  fmt.Sprintf("code size %d exceeds limit %d", len(source), a.maxCodeSize),
		})
	}

	issues = append(issues, scanForbidden(source)...)
	issues = append(issues, checkInterface(source)...)

	metrics := computeMetrics(source)
	if metrics.Complexity > complexityWarnThreshold {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Rule:     "complexity",
			Message:  fmt.Sprintf("cyclomatic complexity %d exceeds %d; consider simplifying", metrics.Complexity, complexityWarnThreshold),
		})
	}

	return Result{
		Safe:    !hasErrors(issues),
		Issues:  issues,
		Metrics: metrics,
	}
}

// ErrorMessages returns the messages of all error-severity issues.
func (r Result) ErrorMessages() []string {
	return messagesBySeverity(r.Issues, SeverityError)
}

// WarningMessages returns the messages of all warning-severity issues.
func (r Result) WarningMessages() []string {
	return messagesBySeverity(r.Issues, SeverityWarning)
}

func messagesBySeverity(issues []Issue, severity string) []string {
	var msgs []string
	for _, is := range issues {
		if is.Severity == severity {
			msgs = append(msgs, is.Message)
		}
	}
	return msgs
}

func hasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

// position converts a byte offset into 1-based line and column numbers.
func position(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	prefix := source[:offset]
	line = strings.Count(prefix, "\n") + 1
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = offset - idx
	} else {
		col = offset + 1
	}
	return line, col
}
