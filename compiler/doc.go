// Package compiler turns submitted game logic into a content-addressed
// WebAssembly artifact.
//
// A compile call runs static analysis first and fails with every error
// message if the source is unsafe (in strict mode, warnings block too).
// Source that passes is paired with a synthesized stub module exporting the
// fixed symbol set in StubExports, a SHA-256 content hash, and an optional
// identity source map.
//
// Stub synthesis is the intended contract of this subsystem: the binary is
// structurally valid WebAssembly but independent of the submitted logic.
// Compilation is pure — identical (source, Config) pairs yield byte-identical
// artifacts and hashes.
package compiler
