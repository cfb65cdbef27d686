package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/moltblox/game-sandbox/errors"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidModule},
			want: "[load] invalid_module",
		},
		{
			name: "with detail",
			err:  &errors.Error{Phase: errors.PhaseAnalyze, Kind: errors.KindSecurityViolation, Detail: "eval is forbidden"},
			want: "[analyze] security_violation: eval is forbidden",
		},
		{
			name: "with path",
			err:  &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindNotFound, Path: []string{"update"}, Detail: "no such export"},
			want: "[call] not_found at update: no such export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorCauseChain(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.InvalidModule("compile failed", cause)

	if !strings.Contains(err.Error(), "caused by: boom") {
		t.Errorf("cause missing from message: %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
}

func TestErrorIsMatchesPhaseAndKind(t *testing.T) {
	err := errors.Destroyed("match4_123")
	target := &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindDestroyed}

	if !stderrors.Is(err, target) {
		t.Error("expected match on phase+kind")
	}

	other := &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindNotFound}
	if stderrors.Is(err, other) {
		t.Error("unexpected match on different kind")
	}
}

func TestBuilder(t *testing.T) {
	err := errors.New(errors.PhaseCompile, errors.KindSizeLimit).
		Path("source").
		Detail("code is %d bytes", 2048).
		Build()

	want := "[compile] size_limit at source: code is 2048 bytes"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBudgetExceeded(t *testing.T) {
	err := errors.BudgetExceeded("tick", 20*time.Millisecond, 16*time.Millisecond)
	if !strings.Contains(err.Error(), "tick") || !strings.Contains(err.Error(), "16ms") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestMissingExportsError(t *testing.T) {
	err := errors.NewMissingExportsError([]string{"update", "getState"})

	msg := err.Error()
	if !strings.Contains(msg, "missing 2 required export(s)") {
		t.Errorf("unexpected header: %q", msg)
	}
	for _, name := range []string{"update", "getState"} {
		if !strings.Contains(msg, name) {
			t.Errorf("message missing %q: %q", name, msg)
		}
	}

	if !stderrors.Is(err, &errors.MissingExportsError{}) {
		t.Error("errors.Is should match MissingExportsError type")
	}
}
