// Package gamesandbox compiles submitted game logic into content-addressed
// WebAssembly artifacts and executes them in isolated, deterministic
// sandboxes.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	game-sandbox/
//	├── analyzer/    Static source screening: deny-list, interface checks, metrics
//	├── compiler/    Artifact assembly, content hashing, source maps
//	├── wasm/        Core WASM binary encoding and decoding primitives
//	├── sandbox/     Byte-level validation and isolated wazero execution
//	├── config/      File-backed configuration with shipped defaults
//	├── errors/      Structured error types across the pipeline
//	└── cmd/sandbox/ CLI for compiling, inspecting, and running artifacts
//
// # Quick Start
//
// Compile a game and run it:
//
//	res := compiler.New(compiler.Config{SourceMap: true}).Compile(source)
//	if !res.Success {
//	    log.Fatal(res.Errors)
//	}
//
//	sb, err := sandbox.New(ctx, sandbox.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sb.Close(ctx)
//
//	inst, err := sb.LoadGame(ctx, res.WasmBytes, "tictactoe")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = inst.Call(ctx, "init")
//
// # Determinism
//
// Every instance draws one cryptographically sourced 32-bit seed at load;
// its math_random host import is a pure function of that seed. Persisting
// the seed alongside recorded inputs replays a session bit-identically.
//
// # Thread Safety
//
// Sandbox is safe for concurrent use. Instance is NOT thread-safe: calls on
// one instance must be serialized by the caller, which matches the
// session-orchestrator model where one worker owns one instance.
package gamesandbox
