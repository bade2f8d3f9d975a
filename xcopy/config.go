// config.go - immutable copy configuration (spec §3)
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package xcopy

import (
	"fmt"
	"runtime"

	"github.com/xcpkit/xcp/fsx"
	"github.com/xcpkit/xcp/ignore"
)

// ReflinkMode controls when CopyHandle attempts a copy-on-write clone.
type ReflinkMode int

const (
	// ReflinkAuto attempts a reflink and falls back silently when the
	// filesystem declines.
	ReflinkAuto ReflinkMode = iota
	// ReflinkAlways requires a successful reflink; a decline is a
	// hard failure.
	ReflinkAlways
	// ReflinkNever never issues the reflink syscall.
	ReflinkNever
)

func (m ReflinkMode) String() string {
	switch m {
	case ReflinkAlways:
		return "always"
	case ReflinkNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseReflinkMode parses the CLI/config string form of ReflinkMode,
// restoring the Rust original's FromStr<Reflink> behavior.
func ParseReflinkMode(s string) (ReflinkMode, error) {
	switch s {
	case "always":
		return ReflinkAlways, nil
	case "auto", "":
		return ReflinkAuto, nil
	case "never":
		return ReflinkNever, nil
	default:
		return ReflinkAuto, fmt.Errorf("xcp: invalid reflink mode %q", s)
	}
}

// Config is immutable after construction and shared read-only by the
// walker and every worker.
type Config struct {
	NumWorkers      int
	BlockSize       int64
	ReflinkMode     ReflinkMode
	NoClobber       bool
	NoTargetDir     bool
	NoPerms         bool
	Fsync           bool
	ExcludePatterns []string
	IgnoreFactory   ignore.Factory
	Facade          fsx.Facade
}

// DefaultConfig returns a Config with the same defaults the CLI binds
// its flags to when the user doesn't override them.
func DefaultConfig() Config {
	return Config{
		NumWorkers:    runtime.NumCPU(),
		BlockSize:     1 << 20,
		ReflinkMode:   ReflinkAuto,
		Facade:        fsx.Default{},
		IgnoreFactory: ignore.Default,
	}
}

func (c *Config) facade() fsx.Facade {
	if c.Facade != nil {
		return c.Facade
	}
	return fsx.Default{}
}

func (c *Config) ignoreFactory() ignore.Factory {
	if c.IgnoreFactory != nil {
		return c.IgnoreFactory
	}
	return ignore.Default
}

func (c *Config) numWorkers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	return runtime.NumCPU()
}

func (c *Config) blockSize() int64 {
	if c.BlockSize > 0 {
		return c.BlockSize
	}
	return 1 << 20
}
