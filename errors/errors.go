package errors

import (
	"fmt"
	"strings"
	"time"
)

// Phase indicates where in the pipeline the error occurred
type Phase string

const (
	PhaseAnalyze  Phase = "analyze"  // static source screening
	PhaseCompile  Phase = "compile"  // module assembly
	PhaseValidate Phase = "validate" // byte-level module validation
	PhaseLoad     Phase = "load"     // module instantiation
	PhaseCall     Phase = "call"     // export invocation
)

// Kind categorizes the error
type Kind string

const (
	KindSecurityViolation Kind = "security_violation"
	KindInterfaceMissing  Kind = "interface_missing"
	KindSizeLimit         Kind = "size_limit"
	KindInvalidModule     Kind = "invalid_module"
	KindMissingExport     Kind = "missing_export"
	KindBudgetExceeded    Kind = "budget_exceeded"
	KindDestroyed         Kind = "destroyed"
	KindNotFound          Kind = "not_found"
	KindInstantiation     Kind = "instantiation"
	KindTrap              Kind = "trap"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the sandbox pipeline
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// SecurityViolation creates an error for a forbidden source pattern
func SecurityViolation(rule, detail string) *Error {
	return &Error{
		Phase:  PhaseAnalyze,
		Kind:   KindSecurityViolation,
		Path:   []string{rule},
		Detail: detail,
	}
}

// SizeLimit creates an error for code or module bytes over the budget
func SizeLimit(phase Phase, actual, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeLimit,
		Detail: fmt.Sprintf("size %d exceeds limit %d", actual, limit),
	}
}

// InvalidModule creates an error for bytes that fail structural validation
func InvalidModule(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidModule,
		Detail: detail,
		Cause:  cause,
	}
}

// Instantiation creates a module instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// BudgetExceeded creates an error for a call that overran its CPU-time budget.
// The call has already completed when this is raised; it is fatal to the
// result of that call only, not to the instance.
func BudgetExceeded(fn string, elapsed, budget time.Duration) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindBudgetExceeded,
		Path:   []string{fn},
		Detail: fmt.Sprintf("took %s, budget %s", elapsed, budget),
	}
}

// Destroyed creates an error for a call on a destroyed instance
func Destroyed(instanceID string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindDestroyed,
		Detail: fmt.Sprintf("instance %q destroyed", instanceID),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// MissingExportsError is returned when a module fails to provide the fixed
// required export set. All missing names are reported at once.
type MissingExportsError struct {
	Names []string
}

// NewMissingExportsError creates an error listing every missing export
func NewMissingExportsError(names []string) *MissingExportsError {
	return &MissingExportsError{Names: names}
}

func (e *MissingExportsError) Error() string {
	if len(e.Names) == 0 {
		return "[load] missing_export: no exports specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing %d required export(s):", len(e.Names)))
	for _, name := range e.Names {
		b.WriteString("\n  - ")
		b.WriteString(name)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *MissingExportsError) Is(target error) bool {
	_, ok := target.(*MissingExportsError)
	return ok
}
