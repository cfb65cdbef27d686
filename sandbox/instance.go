package sandbox

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/moltblox/game-sandbox/errors"
)

// requiredExports must all resolve at load time. render is consumed only by
// client runtimes and is never required server-side.
var requiredExports = []string{"init", "update", "handleInput", "getState"}

// Instance is one live loaded module. It exclusively owns one runtime, one
// linear memory, and one deterministic generator. Calls on an instance are
// expected to be serialized by the caller; the sandbox does not queue them.
type Instance struct {
	ID       string
	GameType string
	Seed     uint32

	handle  string
	sandbox *Sandbox
	rt      wazero.Runtime
	mod     api.Module
	exports map[string]api.Function
	rng     *mulberry32
	start   time.Time
	maxTick time.Duration
	log     *zap.Logger

	destroyed atomic.Bool
}

// Handle returns the opaque registry key for this instance.
func (i *Instance) Handle() string {
	return i.handle
}

// Exports returns the instance's exported function names, sorted.
func (i *Instance) Exports() []string {
	names := make([]string, 0, len(i.exports))
	for name := range i.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// instantiate wires host imports, the env bridge, and the guest module into
// the instance's private runtime.
func (i *Instance) instantiate(ctx context.Context, data []byte, maxPages uint32, debug bool) error {
	_, err := i.rt.NewHostModuleBuilder(hostModule).
		NewFunctionBuilder().
		WithFunc(func() int32 { return canvasWidth }).
		Export("canvas_width").
		NewFunctionBuilder().
		WithFunc(func() int32 { return canvasHeight }).
		Export("canvas_height").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, ptr, length int32) {
			// String decoding from guest memory is out of scope; the raw
			// pointer/length pair is enough to correlate guest output.
			if debug {
				i.log.Debug("console_log",
					zap.Int32("ptr", ptr),
					zap.Int32("len", length))
			}
		}).
		Export("console_log").
		NewFunctionBuilder().
		WithFunc(func() float64 { return i.rng.Next() }).
		Export("math_random").
		NewFunctionBuilder().
		WithFunc(func() float64 {
			return float64(time.Since(i.start).Nanoseconds()) / 1e6
		}).
		Export("performance_now").
		Instantiate(ctx)
	if err != nil {
		return errors.Instantiation(err)
	}

	envCfg := wazero.NewModuleConfig().WithName("env")
	if _, err := i.rt.InstantiateWithConfig(ctx, buildEnvModule(maxPages), envCfg); err != nil {
		return errors.Instantiation(err)
	}

	compiled, err := i.rt.CompileModule(ctx, data)
	if err != nil {
		return errors.Instantiation(err)
	}

	defs := compiled.ExportedFunctions()
	var missing []string
	for _, name := range requiredExports {
		if _, ok := defs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewMissingExportsError(missing)
	}

	modCfg := wazero.NewModuleConfig().
		WithName(i.ID).
		WithStartFunctions() // lifecycle is driven through the exports, never _start
	mod, err := i.rt.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return errors.Instantiation(err)
	}

	// Typed export table resolved once at load; calls index by a checked key
	// instead of re-resolving per call.
	i.mod = mod
	i.exports = make(map[string]api.Function, len(defs))
	for name := range defs {
		if fn := mod.ExportedFunction(name); fn != nil {
			i.exports[name] = fn
		}
	}
	return nil
}

// Call invokes an exported function, bracketing it with two monotonic clock
// reads. A call that overruns the tick budget fails after the fact and its
// result is discarded; the instance itself stays usable. This is a post-hoc
// detector, not preemption: a blocking guest still blocks the host for one
// full call.
func (i *Instance) Call(ctx context.Context, fn string, args ...uint64) ([]uint64, error) {
	if i.destroyed.Load() {
		return nil, errors.Destroyed(i.ID)
	}
	f, ok := i.exports[fn]
	if !ok {
		return nil, errors.NotFound(errors.PhaseCall, "export", fn)
	}

	begin := time.Now()
	results, err := f.Call(ctx, args...)
	elapsed := time.Since(begin)

	if err != nil {
		return nil, errors.New(errors.PhaseCall, errors.KindTrap).
			Path(fn).
			Cause(err).
			Detail("export call failed").
			Build()
	}
	if elapsed > i.maxTick {
		i.log.Warn("tick budget exceeded",
			zap.String("id", i.ID),
			zap.String("fn", fn),
			zap.Duration("elapsed", elapsed),
			zap.Duration("budget", i.maxTick))
		return nil, errors.BudgetExceeded(fn, elapsed, i.maxTick)
	}
	return results, nil
}

// Destroy removes the instance from the registry and releases its runtime.
// Idempotent; every call after Destroy fails with a destroyed error.
func (i *Instance) Destroy(ctx context.Context) error {
	if !i.destroyed.CompareAndSwap(false, true) {
		return nil
	}
	i.sandbox.remove(i.handle)
	i.exports = nil
	i.mod = nil
	return i.rt.Close(ctx)
}
