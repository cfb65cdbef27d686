package sandbox

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/moltblox/game-sandbox/wasm"
)

// ValidationResult reports whether a byte buffer may be trusted for
// instantiation. Consumed by LoadGame before any runtime work happens.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks magic number, size limit, and structural compilability of
// an arbitrary byte buffer. A bad header stops everything; any later failure
// is captured as an error string, never raised.
func (s *Sandbox) Validate(ctx context.Context, data []byte) ValidationResult {
	var res ValidationResult

	if len(data) < 8 || !wasm.IsModule(data) {
		res.Errors = append(res.Errors, "invalid magic number: not a WebAssembly module")
		return res
	}

	if uint64(len(data)) > s.cfg.MaxMemory {
		res.Errors = append(res.Errors,
			fmt.Sprintf("module size %d exceeds memory budget %d", len(data), s.cfg.MaxMemory))
	}

	if v := binary.LittleEndian.Uint32(data[4:8]); v != wasm.Version {
		res.Warnings = append(res.Warnings, fmt.Sprintf("unexpected binary version %d", v))
	}

	// Structural compile only; nothing is instantiated here.
	if compiled, err := s.validator.CompileModule(ctx, data); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("structural compile failed: %v", err))
	} else {
		_ = compiled.Close(ctx)
	}

	res.Valid = len(res.Errors) == 0
	return res
}
