package sandbox

import (
	"github.com/moltblox/game-sandbox/wasm"
)

// hostModule is the wazero module name carrying the Go host functions.
const hostModule = "moltblox"

// envFuncs lists the host functions the env namespace forwards, with their
// type index in the bridge module's type section.
var envFuncs = []struct {
	name    string
	typeIdx uint32
}{
	{"canvas_width", 0},
	{"canvas_height", 0},
	{"console_log", 1},
	{"math_random", 2},
	{"performance_now", 2},
}

// buildEnvModule synthesizes the "env" import namespace as a real module.
// Host module builders cannot export memory, so the bridge imports the Go
// host functions from the moltblox module, re-exports them under the same
// names, and defines the capped linear memory itself. Guests that import
// from "env" link against it; guests with no imports ignore it.
func buildEnvModule(maxPages uint32) []byte {
	m := &wasm.Module{
		Types: []wasm.FuncType{
			{Results: []wasm.ValType{wasm.ValI32}},
			{Params: []wasm.ValType{wasm.ValI32, wasm.ValI32}},
			{Results: []wasm.ValType{wasm.ValF64}},
		},
		Memories: []wasm.MemoryType{{Min: 1, Max: maxPages, HasMax: true}},
		Exports: []wasm.Export{
			{Name: "memory", Kind: wasm.KindMemory, Index: 0},
		},
	}
	for i, f := range envFuncs {
		m.Imports = append(m.Imports, wasm.Import{
			Module:  hostModule,
			Name:    f.name,
			Kind:    wasm.KindFunc,
			TypeIdx: f.typeIdx,
		})
		m.Exports = append(m.Exports, wasm.Export{
			Name:  f.name,
			Kind:  wasm.KindFunc,
			Index: uint32(i),
		})
	}
	return m.Encode()
}
