package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// forbiddenPattern is one entry of the deny-list. Any match is an error:
// each of these either breaks replay determinism or opens a sandbox escape.
type forbiddenPattern struct {
	re      *regexp.Regexp
	rule    string
	message string
}

var forbiddenPatterns = []forbiddenPattern{
	// Network access
	{regexp.MustCompile(`\bfetch\s*\(`), "no-network", "network access via fetch() is forbidden"},
	{regexp.MustCompile(`\bXMLHttpRequest\b`), "no-network", "network access via XMLHttpRequest is forbidden"},
	{regexp.MustCompile(`\bWebSocket\b`), "no-network", "network access via WebSocket is forbidden"},

	// Dynamic code evaluation
	{regexp.MustCompile(`\beval\s*\(`), "no-eval", "dynamic code via eval() is forbidden"},
	{regexp.MustCompile(`new\s+Function\b`), "no-eval", "dynamic code via new Function is forbidden"},
	{regexp.MustCompile(`\bFunction\s*\(`), "no-eval", "dynamic code via the Function constructor is forbidden"},

	// Filesystem and process access
	{regexp.MustCompile(`\brequire\s*\(`), "no-fs-process", "module loading via require() is forbidden"},
	{regexp.MustCompile(`\bimport\s*\(`), "no-fs-process", "dynamic import() is forbidden"},
	{regexp.MustCompile(`\bprocess\.`), "no-fs-process", "process access is forbidden"},

	// Non-deterministic timing
	{regexp.MustCompile(`\bsetTimeout\s*\(`), "no-timers", "setTimeout breaks determinism; use tick()"},
	{regexp.MustCompile(`\bsetInterval\s*\(`), "no-timers", "setInterval breaks determinism; use tick()"},
	{regexp.MustCompile(`\bDate\.now\s*\(`), "no-wallclock", "Date.now breaks determinism; use the host clock"},
	{regexp.MustCompile(`new\s+Date\b`), "no-wallclock", "new Date breaks determinism; use the host clock"},

	// Non-deterministic randomness
	{regexp.MustCompile(`Math\.random`), "no-math-random", "Math.random breaks determinism; use the seeded host generator"},
}

// Bracket-indexed global access is matched literally, not as a regexp.
var forbiddenLiterals = []struct {
	lit     string
	rule    string
	message string
}{
	{"globalThis[", "no-global-mutation", "indexed access to globalThis is forbidden"},
	{"window[", "no-global-mutation", "indexed access to window is forbidden"},
}

// scanForbidden runs the deny-list over source. Each match yields one error
// issue naming the violated rule, with the position of the first occurrence.
func scanForbidden(source string) []Issue {
	var issues []Issue

	for _, p := range forbiddenPatterns {
		if loc := p.re.FindStringIndex(source); loc != nil {
			line, col := position(source, loc[0])
			issues = append(issues, Issue{
				Severity: SeverityError,
				Rule:     p.rule,
				Message:  p.message,
				Line:     line,
				Col:      col,
			})
		}
	}

	for _, p := range forbiddenLiterals {
		if idx := strings.Index(source, p.lit); idx >= 0 {
			line, col := position(source, idx)
			issues = append(issues, Issue{
				Severity: SeverityError,
				Rule:     p.rule,
				Message:  p.message,
				Line:     line,
				Col:      col,
			})
		}
	}

	return issues
}

// requiredProperty is a property every game class must declare.
type requiredProperty struct {
	name string
	typ  string
}

// requiredMethod is a method every game class must implement.
type requiredMethod struct {
	name   string
	params []string
}

var requiredProperties = []requiredProperty{
	{"gameType", "string"},
	{"maxPlayers", "number"},
	{"turnBased", "boolean"},
	{"tickRate", "number"},
}

var requiredMethods = []requiredMethod{
	{"initialize", []string{"config"}},
	{"reset", nil},
	{"destroy", nil},
	{"getState", nil},
	{"getStateForPlayer", []string{"playerId"}},
	{"getValidActions", []string{"playerId"}},
	{"validateAction", []string{"playerId", "action"}},
	{"applyAction", []string{"playerId", "action"}},
	{"tick", []string{"deltaTime"}},
	{"isTerminal", nil},
	{"getResult", nil},
	{"serialize", nil},
	{"deserialize", []string{"data"}},
}

var extendsGameLogic = regexp.MustCompile(`\bextends\s+GameLogic\b`)

var (
	propertyRes = make(map[string]*regexp.Regexp, len(requiredProperties))
	methodRes   = make(map[string]*regexp.Regexp, len(requiredMethods))
)

func init() {
	for _, p := range requiredProperties {
		propertyRes[p.name] = regexp.MustCompile(`\b` + p.name + `\s*[:=]`)
	}
	for _, m := range requiredMethods {
		methodRes[m.name] = regexp.MustCompile(`\b` + m.name + `\s*\(`)
	}
}

// checkInterface verifies the required game interface by structural text
// match. Each missing member is one named error issue; a missing GameLogic
// base declaration is a warning only.
func checkInterface(source string) []Issue {
	var issues []Issue

	for _, p := range requiredProperties {
		if !propertyRes[p.name].MatchString(source) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Rule:     "required-interface",
				Message:  fmt.Sprintf("missing required property %s: %s", p.name, p.typ),
			})
		}
	}

	for _, m := range requiredMethods {
		if !methodRes[m.name].MatchString(source) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Rule:     "required-interface",
				Message:  fmt.Sprintf("missing required method %s(%s)", m.name, strings.Join(m.params, ", ")),
			})
		}
	}

	if !extendsGameLogic.MatchString(source) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Rule:     "required-interface",
			Message:  "class does not declare extends GameLogic",
		})
	}

	return issues
}
