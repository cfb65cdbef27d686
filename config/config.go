// Package config loads sandbox and compiler settings from an optional
// config file, with defaults matching the shipped limits.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/moltblox/game-sandbox/compiler"
	"github.com/moltblox/game-sandbox/sandbox"
)

type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Compiler CompilerConfig `mapstructure:"compiler"`
	Sandbox  SandboxConfig  `mapstructure:"sandbox"`
}

// CompilerConfig mirrors compiler.Config in file form.
type CompilerConfig struct {
	Optimize    bool `mapstructure:"optimize"`
	SourceMap   bool `mapstructure:"source_map"`
	MaxCodeSize int  `mapstructure:"max_code_size"`
	Strict      bool `mapstructure:"strict"`
}

// SandboxConfig mirrors sandbox.Config in file form.
type SandboxConfig struct {
	// MaxMemory bounds module size and instance linear memory, in bytes.
	MaxMemory uint64 `mapstructure:"max_memory"`
	// MaxTickTimeMs is the per-call CPU budget in milliseconds.
	MaxTickTimeMs int `mapstructure:"max_tick_time_ms"`
	// Debug enables console_log forwarding from guests.
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from path, or returns defaults when path is empty.
// Any key can be overridden through the environment, e.g.
// MOLTBLOX_SANDBOX_MAX_TICK_TIME_MS=50.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("MOLTBLOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")

	v.SetDefault("compiler.optimize", false)
	v.SetDefault("compiler.source_map", true)
	v.SetDefault("compiler.max_code_size", 1<<20)
	v.SetDefault("compiler.strict", false)

	v.SetDefault("sandbox.max_memory", sandbox.DefaultMaxMemory)
	v.SetDefault("sandbox.max_tick_time_ms", 16)
	v.SetDefault("sandbox.debug", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CompilerConfig converts the file form to the compiler's runtime config.
func (c *Config) CompilerConfig() compiler.Config {
	return compiler.Config{
		Optimize:    c.Compiler.Optimize,
		SourceMap:   c.Compiler.SourceMap,
		MaxCodeSize: c.Compiler.MaxCodeSize,
		Strict:      c.Compiler.Strict,
	}
}

// SandboxConfig converts the file form to the sandbox's runtime config.
// Logger wiring stays with the caller.
func (c *Config) SandboxConfig() sandbox.Config {
	return sandbox.Config{
		MaxMemory:   c.Sandbox.MaxMemory,
		MaxTickTime: time.Duration(c.Sandbox.MaxTickTimeMs) * time.Millisecond,
		Debug:       c.Sandbox.Debug,
	}
}
