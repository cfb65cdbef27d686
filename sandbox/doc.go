// Package sandbox validates compiled game artifacts and executes them in
// isolated wazero runtimes.
//
// Validation is byte-level: magic number, size against the memory budget,
// and a structural compile with nothing instantiated. Execution gives each
// instance its own runtime with linear memory capped in pages, a
// deterministic host import set (fixed canvas dimensions, gated console_log,
// seeded math_random, monotonic performance_now), and a per-call CPU-time
// budget checked after each invocation.
//
// Every instance draws one cryptographically sourced 32-bit seed at load and
// keeps it on the instance, so an external orchestrator can persist the seed
// and replay every math_random value the game observed. The sandbox owns the
// live-instance registry, keyed by an opaque handle; destroy is idempotent
// and use-after-destroy is a cheap checked error.
package sandbox
