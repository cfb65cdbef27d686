package sandbox

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/moltblox/game-sandbox/errors"
	"github.com/moltblox/game-sandbox/wasm"
)

// Defaults applied by New when Config leaves a field zero.
const (
	DefaultMaxMemory   = 64 << 20 // bytes
	DefaultMaxTickTime = 16 * time.Millisecond
)

// Server-side canvas constants. There is no real display here; guests asking
// for dimensions get the fixed logical resolution.
const (
	canvasWidth  = 960
	canvasHeight = 540
)

// wazero caps linear memory at 4 GiB.
const maxMemoryPages = 65536

// Config is owned by one Sandbox value.
type Config struct {
	// MaxMemory bounds both module size and instance linear memory, in bytes.
	MaxMemory uint64

	// MaxTickTime is the per-call CPU-time budget.
	MaxTickTime time.Duration

	// Debug enables console_log forwarding from guests.
	Debug bool

	// Logger receives sandbox lifecycle events. Nil means no logging.
	Logger *zap.Logger
}

// Sandbox validates module bytes and hosts live game instances. Each loaded
// instance owns an isolated wazero runtime with capped memory and
// deterministic host imports; the sandbox owns the registry of all of them.
type Sandbox struct {
	cfg       Config
	log       *zap.Logger
	validator wazero.Runtime

	mu        sync.Mutex
	instances map[string]*Instance // keyed by opaque handle
}

// New creates a sandbox with the given configuration.
func New(ctx context.Context, cfg Config) (*Sandbox, error) {
	if cfg.MaxMemory == 0 {
		cfg.MaxMemory = DefaultMaxMemory
	}
	if cfg.MaxTickTime == 0 {
		cfg.MaxTickTime = DefaultMaxTickTime
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Sandbox{
		cfg:       cfg,
		log:       log.Named("sandbox"),
		validator: wazero.NewRuntime(ctx),
		instances: make(map[string]*Instance),
	}, nil
}

// memoryPages converts the byte budget to wazero pages, clamped to [1, 4GiB].
func (s *Sandbox) memoryPages() uint32 {
	pages := s.cfg.MaxMemory / wasm.PageSize
	if pages < 1 {
		return 1
	}
	if pages > maxMemoryPages {
		return maxMemoryPages
	}
	return uint32(pages)
}

// LoadGame validates bytes, instantiates them in a fresh isolated runtime
// with deterministic host imports, and registers the resulting instance.
// Only bytes that pass Validate are ever instantiated.
func (s *Sandbox) LoadGame(ctx context.Context, data []byte, gameType string) (*Instance, error) {
	if vr := s.Validate(ctx, data); !vr.Valid {
		return nil, errors.InvalidModule(strings.Join(vr.Errors, "; "), nil)
	}

	seed, err := NewSeed()
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindInstantiation).
			Cause(err).
			Detail("seed instance").
			Build()
	}

	pages := s.memoryPages()

	// Each instance gets its own runtime so math_random can close over its
	// private generator without host module name collisions.
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().
		WithMemoryLimitPages(pages).
		WithCloseOnContextDone(true))

	inst := &Instance{
		ID:       fmt.Sprintf("%s_%d", gameType, time.Now().UnixMilli()),
		GameType: gameType,
		Seed:     seed,
		handle:   uuid.NewString(),
		sandbox:  s,
		rt:       rt,
		rng:      newMulberry32(seed),
		start:    time.Now(),
		maxTick:  s.cfg.MaxTickTime,
		log:      s.log.With(zap.String("game_type", gameType)),
	}

	if err := inst.instantiate(ctx, data, pages, s.cfg.Debug); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	s.mu.Lock()
	s.instances[inst.handle] = inst
	s.mu.Unlock()

	s.log.Info("instance loaded",
		zap.String("id", inst.ID),
		zap.String("game_type", gameType),
		zap.Uint32("seed", seed),
		zap.Uint32("memory_pages", pages))

	return inst, nil
}

// Lookup returns the live instance registered under handle.
func (s *Sandbox) Lookup(handle string) (*Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[handle]
	return inst, ok
}

// InstanceCount reports the number of live instances.
func (s *Sandbox) InstanceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

func (s *Sandbox) remove(handle string) {
	s.mu.Lock()
	delete(s.instances, handle)
	s.mu.Unlock()
}

// DestroyAll destroys every live instance and clears the registry.
func (s *Sandbox) DestroyAll(ctx context.Context) error {
	s.mu.Lock()
	live := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		live = append(live, inst)
	}
	s.mu.Unlock()

	var err error
	for _, inst := range live {
		err = multierr.Append(err, inst.Destroy(ctx))
	}
	return err
}

// Close destroys all instances and releases the validation runtime.
// The sandbox must not be used after Close.
func (s *Sandbox) Close(ctx context.Context) error {
	return multierr.Append(s.DestroyAll(ctx), s.validator.Close(ctx))
}
