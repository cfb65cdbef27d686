package wasm_test

import (
	"bytes"
	"testing"

	"github.com/moltblox/game-sandbox/wasm"
)

func TestEncodeEmptyModule(t *testing.T) {
	m := &wasm.Module{}
	data := m.Encode()

	if len(data) != 8 {
		t.Errorf("expected 8 bytes for empty module, got %d", len(data))
	}
	if !bytes.Equal(data[:4], []byte{0x00, 0x61, 0x73, 0x6D}) {
		t.Error("invalid magic number")
	}
	if !bytes.Equal(data[4:8], []byte{0x01, 0x00, 0x00, 0x00}) {
		t.Error("invalid version")
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	m := &wasm.Module{
		Types: []wasm.FuncType{
			{Params: nil, Results: nil},
			{Params: []wasm.ValType{wasm.ValI32, wasm.ValI32}, Results: nil},
			{Params: nil, Results: []wasm.ValType{wasm.ValF64}},
		},
		Imports: []wasm.Import{
			{Module: "host", Name: "math_random", Kind: wasm.KindFunc, TypeIdx: 2},
			{Module: "host", Name: "console_log", Kind: wasm.KindFunc, TypeIdx: 1},
		},
		Funcs: []uint32{0, 0},
		Memories: []wasm.MemoryType{
			{Min: 1, Max: 1024, HasMax: true},
		},
		Exports: []wasm.Export{
			{Name: "memory", Kind: wasm.KindMemory, Index: 0},
			{Name: "init", Kind: wasm.KindFunc, Index: 2},
			{Name: "update", Kind: wasm.KindFunc, Index: 3},
		},
		Code: []wasm.FuncBody{
			{Locals: nil, Code: []byte{wasm.OpEnd}},
			{Locals: []wasm.LocalEntry{{Count: 1, ValType: wasm.ValI32}}, Code: []byte{wasm.OpEnd}},
		},
	}

	data := m.Encode()
	parsed, err := wasm.ParseModule(data)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}

	if len(parsed.Types) != 3 {
		t.Fatalf("expected 3 types, got %d", len(parsed.Types))
	}
	if len(parsed.Types[1].Params) != 2 || parsed.Types[1].Params[0] != wasm.ValI32 {
		t.Error("type 1 params mismatch")
	}
	if len(parsed.Types[2].Results) != 1 || parsed.Types[2].Results[0] != wasm.ValF64 {
		t.Error("type 2 results mismatch")
	}

	if len(parsed.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(parsed.Imports))
	}
	if parsed.Imports[0].Module != "host" || parsed.Imports[0].Name != "math_random" {
		t.Errorf("import 0: got %s.%s", parsed.Imports[0].Module, parsed.Imports[0].Name)
	}
	if parsed.NumImportedFuncs() != 2 {
		t.Errorf("NumImportedFuncs: got %d, want 2", parsed.NumImportedFuncs())
	}

	if len(parsed.Memories) != 1 {
		t.Fatalf("expected 1 memory, got %d", len(parsed.Memories))
	}
	mem := parsed.Memories[0]
	if mem.Min != 1 || !mem.HasMax || mem.Max != 1024 {
		t.Errorf("memory limits: got %+v", mem)
	}

	if len(parsed.Code) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(parsed.Code))
	}
	if len(parsed.Code[1].Locals) != 1 || parsed.Code[1].Locals[0].ValType != wasm.ValI32 {
		t.Error("body 1 locals mismatch")
	}
}

func TestExportNames(t *testing.T) {
	m := &wasm.Module{
		Types:   []wasm.FuncType{{}},
		Funcs:   []uint32{0, 0},
		Exports: []wasm.Export{
			{Name: "init", Kind: wasm.KindFunc, Index: 0},
			{Name: "update", Kind: wasm.KindFunc, Index: 1},
		},
		Code: []wasm.FuncBody{
			{Code: []byte{wasm.OpEnd}},
			{Code: []byte{wasm.OpEnd}},
		},
	}

	names, err := wasm.ExportNames(m.Encode())
	if err != nil {
		t.Fatalf("ExportNames: %v", err)
	}
	want := []string{"init", "update"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestParseModuleErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte{0x00, 0x61, 0x73}},
		{"bad magic", []byte{0, 0, 0, 0, 1, 0, 0, 0}},
		{"bad version", []byte{0x00, 0x61, 0x73, 0x6D, 2, 0, 0, 0}},
		{"truncated section", []byte{0x00, 0x61, 0x73, 0x6D, 1, 0, 0, 0, 0x01, 0x10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := wasm.ParseModule(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestIsModule(t *testing.T) {
	if !wasm.IsModule([]byte{0x00, 0x61, 0x73, 0x6D, 1, 0, 0, 0}) {
		t.Error("valid header not recognized")
	}
	if wasm.IsModule([]byte{0, 0, 0, 0}) {
		t.Error("zero bytes recognized as module")
	}
	if wasm.IsModule([]byte{0x00, 0x61}) {
		t.Error("short buffer recognized as module")
	}
}
