// Package wasm provides WebAssembly binary format primitives for the game
// sandbox pipeline.
//
// It models the core-module subset the pipeline produces and inspects:
// function types, function imports, linear memories, exports, and code
// bodies. Modules encode to standard binary form and arbitrary module bytes
// can be parsed back for inspection.
//
// Encode a module:
//
//	m := &wasm.Module{
//	    Types:   []wasm.FuncType{{}},
//	    Funcs:   []uint32{0},
//	    Exports: []wasm.Export{{Name: "init", Kind: wasm.KindFunc, Index: 0}},
//	    Code:    []wasm.FuncBody{{Code: []byte{wasm.OpEnd}}},
//	}
//	data := m.Encode()
//
// Parse one back:
//
//	parsed, err := wasm.ParseModule(data)
//	names, err := wasm.ExportNames(data)
//
// The package also exposes the LEB128 variable-length integer utilities used
// throughout the binary format.
package wasm
