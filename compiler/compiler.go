package compiler

import (
	"github.com/moltblox/game-sandbox/analyzer"
)

// Config controls a single compile call. It is stateless; one Compiler may
// serve many calls.
type Config struct {
	// Optimize is accepted for interface stability; the stub assembler has
	// nothing to optimize.
	Optimize bool

	// SourceMap requests an identity Source Map v3 for the submitted text.
	SourceMap bool

	// MaxCodeSize bounds the submitted source in bytes.
	// Zero falls back to analyzer.DefaultMaxCodeSize.
	MaxCodeSize int

	// Strict promotes analyzer warnings to compilation failures.
	Strict bool
}

// Result is produced fresh per Compile call and immutable once returned.
// Success is the single source of truth; there is no partial-success mode.
type Result struct {
	Success   bool
	WasmBytes []byte
	WasmHash  string
	SourceMap string
	Errors    []string
	Analysis  analyzer.Result
}

// Compiler turns screened source text into a content-addressed WebAssembly
// artifact.
//
// Compilation is deliberately a stub: the emitted module is a minimal valid
// binary exporting the fixed symbol set, independent of the submitted logic.
// That is the shipped contract, not a placeholder — replacing it with a real
// source-to-wasm compiler must keep the Result contract and the export list.
type Compiler struct {
	cfg      Config
	analyzer *analyzer.Analyzer
}

// New creates a Compiler with the given configuration.
func New(cfg Config) *Compiler {
	return &Compiler{
		cfg:      cfg,
		analyzer: analyzer.New(cfg.MaxCodeSize),
	}
}

// Compile screens source and, if it passes, synthesizes the stub module,
// its content hash, and an optional source map. Identical (source, config)
// pairs produce byte-identical output.
func (c *Compiler) Compile(source string) Result {
	analysis := c.analyzer.Analyze(source)

	if !analysis.Safe {
		return Result{
			Success:  false,
			Errors:   analysis.ErrorMessages(),
			Analysis: analysis,
		}
	}

	if c.cfg.Strict {
		if warnings := analysis.WarningMessages(); len(warnings) > 0 {
			return Result{
				Success:  false,
				Errors:   append(warnings, analysis.ErrorMessages()...),
				Analysis: analysis,
			}
		}
	}

	bytes := assembleStub()

	res := Result{
		Success:   true,
		WasmBytes: bytes,
		WasmHash:  HashModule(bytes),
		Analysis:  analysis,
	}
	if c.cfg.SourceMap {
		res.SourceMap = GenerateSourceMap(source)
	}
	return res
}
