package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moltblox/game-sandbox/compiler"
	"github.com/moltblox/game-sandbox/config"
	"github.com/moltblox/game-sandbox/sandbox"
	"github.com/moltblox/game-sandbox/wasm"
)

func main() {
	var (
		srcFile     = flag.String("src", "", "Path to game source to compile")
		wasmFile    = flag.String("wasm", "", "Path to a compiled game artifact")
		outDir      = flag.String("out", ".", "Directory for compiled artifacts")
		cfgFile     = flag.String("config", "", "Path to config file")
		gameType    = flag.String("game", "", "Game type name (default: input file base name)")
		ticks       = flag.Int("ticks", 0, "Number of update calls to drive after init")
		list        = flag.Bool("list", false, "List artifact exports and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *srcFile == "" && *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: sandbox -src <game.ts> [-out dir]")
		fmt.Fprintln(os.Stderr, "       sandbox -wasm <game.wasm> [-ticks n] [-game name]")
		fmt.Fprintln(os.Stderr, "       sandbox -wasm <game.wasm> -list")
		fmt.Fprintln(os.Stderr, "       sandbox -wasm <game.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log, *srcFile, *wasmFile, *outDir, *gameType, *ticks, *list, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func run(cfg *config.Config, log *zap.Logger, srcFile, wasmFile, outDir, gameType string, ticks int, list, interactive bool) error {
	var data []byte
	var err error

	switch {
	case srcFile != "":
		data, err = compileSource(cfg, srcFile, outDir)
		if err != nil {
			return err
		}
		if gameType == "" {
			gameType = baseName(srcFile)
		}
	default:
		data, err = os.ReadFile(wasmFile)
		if err != nil {
			return fmt.Errorf("read artifact: %w", err)
		}
		if gameType == "" {
			gameType = baseName(wasmFile)
		}
	}

	if list {
		names, err := wasm.ExportNames(data)
		if err != nil {
			return fmt.Errorf("parse artifact: %w", err)
		}
		fmt.Println("Exports:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	if interactive {
		return runInteractive(data, gameType, cfg, log)
	}

	if wasmFile != "" || ticks > 0 {
		return driveGame(cfg, log, data, gameType, ticks)
	}
	return nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func compileSource(cfg *config.Config, srcFile, outDir string) ([]byte, error) {
	source, err := os.ReadFile(srcFile)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	res := compiler.New(cfg.CompilerConfig()).Compile(string(source))

	m := res.Analysis.Metrics
	fmt.Printf("Source: %s\n", srcFile)
	fmt.Printf("  lines=%d functions=%d classes=%d complexity=%d est_memory=%d\n",
		m.LineCount, m.FunctionCount, m.ClassCount, m.Complexity, m.EstimatedMemory)
	for _, msg := range res.Analysis.WarningMessages() {
		fmt.Printf("  warning: %s\n", msg)
	}

	if !res.Success {
		for _, msg := range res.Errors {
			fmt.Fprintf(os.Stderr, "  error: %s\n", msg)
		}
		return nil, fmt.Errorf("compilation failed with %d error(s)", len(res.Errors))
	}

	artifact := filepath.Join(outDir, res.WasmHash+".wasm")
	if err := os.WriteFile(artifact, res.WasmBytes, 0o644); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	fmt.Printf("Artifact: %s (%d bytes)\n", artifact, len(res.WasmBytes))
	fmt.Printf("Hash: %s\n", res.WasmHash)

	if res.SourceMap != "" {
		mapFile := artifact + ".map"
		if err := os.WriteFile(mapFile, []byte(res.SourceMap), 0o644); err != nil {
			return nil, fmt.Errorf("write source map: %w", err)
		}
		fmt.Printf("Source map: %s\n", mapFile)
	}

	return res.WasmBytes, nil
}

func driveGame(cfg *config.Config, log *zap.Logger, data []byte, gameType string, ticks int) error {
	ctx := context.Background()

	scfg := cfg.SandboxConfig()
	scfg.Logger = log
	sb, err := sandbox.New(ctx, scfg)
	if err != nil {
		return fmt.Errorf("create sandbox: %w", err)
	}
	defer sb.Close(ctx)

	if vr := sb.Validate(ctx, data); !vr.Valid {
		return fmt.Errorf("artifact invalid: %s", strings.Join(vr.Errors, "; "))
	}

	inst, err := sb.LoadGame(ctx, data, gameType)
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}
	defer inst.Destroy(ctx)

	fmt.Printf("Instance: %s (seed=%d)\n", inst.ID, inst.Seed)

	if _, err := inst.Call(ctx, "init"); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	for i := 0; i < ticks; i++ {
		if _, err := inst.Call(ctx, "update"); err != nil {
			// A blown tick budget discards that tick only.
			fmt.Fprintf(os.Stderr, "tick %d: %v\n", i, err)
		}
	}
	if _, err := inst.Call(ctx, "getState"); err != nil {
		return fmt.Errorf("getState: %w", err)
	}

	fmt.Printf("Ran init, %d update tick(s), getState.\n", ticks)
	return nil
}
