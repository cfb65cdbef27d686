// Package analyzer statically screens submitted game logic before it may be
// compiled into a sandbox artifact.
//
// Analysis is pure and deterministic: the same source always produces the
// same Result. Three classes of checks run in a fixed order:
//
//   - a source size budget
//   - a deny-list of APIs that break replay determinism or escape the
//     sandbox (network, dynamic code, filesystem/process, wall-clock timing,
//     Math.random, indexed global access)
//   - structural conformance to the required game interface (four properties
//     and thirteen methods)
//
// Matching is structural text matching over the raw source. A hardened
// implementation would parse to an AST and reject by grammar; the deny-list
// itself is the contract and survives any change of detection mechanism.
package analyzer
