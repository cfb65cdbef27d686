package compiler

import (
	"github.com/moltblox/game-sandbox/wasm"
)

// StubExports is the fixed symbol set every compiled artifact exports, in
// declaration order. The server-side host requires all but render; render is
// consumed only by client runtimes.
var StubExports = []string{"init", "update", "render", "handleInput", "getState", "destroy"}

// assembleStub synthesizes the minimal valid module: one ()->() type, one
// function entry per export all referencing it, and identical trivial bodies
// (zero locals, immediate end).
func assembleStub() []byte {
	m := &wasm.Module{
		Types: []wasm.FuncType{{}},
		Funcs: make([]uint32, len(StubExports)),
		Code:  make([]wasm.FuncBody, len(StubExports)),
	}
	for i, name := range StubExports {
		m.Exports = append(m.Exports, wasm.Export{
			Name:  name,
			Kind:  wasm.KindFunc,
			Index: uint32(i),
		})
		m.Code[i] = wasm.FuncBody{Code: []byte{wasm.OpEnd}}
	}
	return m.Encode()
}
