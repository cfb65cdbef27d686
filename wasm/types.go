package wasm

// ValType is a WebAssembly value type encoding.
type ValType byte

// Module represents the core-module subset produced and inspected by the
// game sandbox pipeline: function types, function/memory imports, declared
// functions, memories, exports, and code bodies.
type Module struct {
	Types    []FuncType
	Imports  []Import
	Funcs    []uint32 // Type indices for declared functions
	Memories []MemoryType
	Exports  []Export
	Code     []FuncBody
}

// FuncType represents a WebAssembly function signature.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Import represents an imported function.
type Import struct {
	Module  string
	Name    string
	Kind    byte
	TypeIdx uint32 // valid when Kind == KindFunc
}

// MemoryType represents a linear memory definition with page limits.
type MemoryType struct {
	Min    uint32
	Max    uint32
	HasMax bool
}

// Export represents an exported definition.
type Export struct {
	Name  string
	Kind  byte
	Index uint32
}

// LocalEntry is a run-length encoded group of locals in a function body.
type LocalEntry struct {
	Count   uint32
	ValType ValType
}

// FuncBody holds a declared function's locals and bytecode.
type FuncBody struct {
	Locals []LocalEntry
	Code   []byte
}

// NumImportedFuncs returns the number of imported functions. Declared
// function indices start after the imports in the function index space.
func (m *Module) NumImportedFuncs() int {
	n := 0
	for _, imp := range m.Imports {
		if imp.Kind == KindFunc {
			n++
		}
	}
	return n
}

// ExportNames returns the names of all exports in declaration order.
func (m *Module) ExportNames() []string {
	names := make([]string, len(m.Exports))
	for i, e := range m.Exports {
		names[i] = e.Name
	}
	return names
}
