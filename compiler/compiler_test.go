package compiler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/moltblox/game-sandbox/compiler"
	"github.com/moltblox/game-sandbox/wasm"
)

const validGame = `class TicTacToe extends GameLogic {
  gameType = 'tictactoe';
  maxPlayers = 2;
  turnBased = true;
  tickRate = 0;

  initialize(config) {}
  reset() {}
  destroy() {}
  getState() { return {}; }
  getStateForPlayer(playerId) { return {}; }
  getValidActions(playerId) { return []; }
  validateAction(playerId, action) { return true; }
  applyAction(playerId, action) {}
  tick(deltaTime) {}
  isTerminal() { return false; }
  getResult() { return null; }
  serialize() { return '{}'; }
  deserialize(data) {}
}`

func TestCompileSuccess(t *testing.T) {
	res := compiler.New(compiler.Config{}).Compile(validGame)

	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}
	if !bytes.Equal(res.WasmBytes[:4], []byte{0x00, 0x61, 0x73, 0x6D}) {
		t.Error("artifact missing wasm magic")
	}
	if len(res.WasmHash) != 64 {
		t.Errorf("hash length: got %d, want 64 hex chars", len(res.WasmHash))
	}
	if res.SourceMap != "" {
		t.Error("source map produced without being requested")
	}
}

func TestCompileExportsFixedSymbols(t *testing.T) {
	res := compiler.New(compiler.Config{}).Compile(validGame)
	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}

	names, err := wasm.ExportNames(res.WasmBytes)
	if err != nil {
		t.Fatalf("ExportNames: %v", err)
	}
	want := []string{"init", "update", "render", "handleInput", "getState", "destroy"}
	if len(names) != len(want) {
		t.Fatalf("exports: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("export %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCompileStubStructure(t *testing.T) {
	res := compiler.New(compiler.Config{}).Compile(validGame)
	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}

	m, err := wasm.ParseModule(res.WasmBytes)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}

	if len(m.Types) != 1 || len(m.Types[0].Params) != 0 || len(m.Types[0].Results) != 0 {
		t.Errorf("expected a single ()->() type, got %+v", m.Types)
	}
	if len(m.Funcs) != 6 || len(m.Code) != 6 {
		t.Fatalf("expected 6 functions with bodies, got %d/%d", len(m.Funcs), len(m.Code))
	}
	for i, body := range m.Code {
		if len(body.Locals) != 0 {
			t.Errorf("body %d: expected zero locals", i)
		}
		if !bytes.Equal(body.Code, []byte{0x0B}) {
			t.Errorf("body %d: expected a bare end opcode, got % x", i, body.Code)
		}
		if m.Funcs[i] != 0 {
			t.Errorf("func %d: expected type index 0", i)
		}
	}
}

func TestCompilePure(t *testing.T) {
	c := compiler.New(compiler.Config{SourceMap: true})
	r1 := c.Compile(validGame)
	r2 := c.Compile(validGame)

	if !bytes.Equal(r1.WasmBytes, r2.WasmBytes) {
		t.Error("wasm bytes differ across identical compiles")
	}
	if r1.WasmHash != r2.WasmHash {
		t.Error("hashes differ across identical compiles")
	}
	if r1.SourceMap != r2.SourceMap {
		t.Error("source maps differ across identical compiles")
	}
}

func TestCompileUnsafeSource(t *testing.T) {
	res := compiler.New(compiler.Config{}).Compile(validGame + "\neval('x')")

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.WasmBytes != nil {
		t.Error("failed compile must not emit bytes")
	}
	found := false
	for _, msg := range res.Errors {
		if strings.Contains(msg, "eval") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected eval error, got %v", res.Errors)
	}
}

func TestCompileStrictPromotesWarnings(t *testing.T) {
	src := strings.Replace(validGame, "extends GameLogic ", "", 1)

	if res := compiler.New(compiler.Config{}).Compile(src); !res.Success {
		t.Fatalf("non-strict compile should succeed: %v", res.Errors)
	}

	res := compiler.New(compiler.Config{Strict: true}).Compile(src)
	if res.Success {
		t.Fatal("strict compile should fail on warnings")
	}
	found := false
	for _, msg := range res.Errors {
		if strings.Contains(msg, "GameLogic") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected GameLogic warning among errors, got %v", res.Errors)
	}
}

func TestCompileSizeLimit(t *testing.T) {
	res := compiler.New(compiler.Config{MaxCodeSize: 16}).Compile(validGame)
	if res.Success {
		t.Fatal("expected size failure")
	}
}

func TestVerifyHash(t *testing.T) {
	res := compiler.New(compiler.Config{}).Compile(validGame)
	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}

	if !compiler.VerifyHash(res.WasmBytes, res.WasmHash) {
		t.Error("hash of fresh artifact must verify")
	}

	tampered := []byte(res.WasmHash)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	if compiler.VerifyHash(res.WasmBytes, string(tampered)) {
		t.Error("tampered hash must not verify")
	}

	mutated := append([]byte(nil), res.WasmBytes...)
	mutated[len(mutated)-1] ^= 0xFF
	if compiler.VerifyHash(mutated, res.WasmHash) {
		t.Error("mutated bytes must not verify")
	}
}
