// Package null registers a backend that runs the full presentation path on
// the HAL no-op device. Nothing reaches a screen; it is meant for tests,
// benchmarks of the CPU side and headless sessions.
//
// It is never auto-probed and must be requested by name:
//
//	import _ "github.com/gogpu/vo/backend/null"
//
//	s, err := output.Open(output.Config{Backend: "null"})
package null

import (
	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/vo/backend"
	"github.com/gogpu/vo/backend/native"
)

func init() {
	backend.Register(backend.Null, backend.Entry{Factory: New})
}

// New creates a no-op instance. cfg.Window may be headless.
func New(cfg backend.Config) (backend.Instance, error) {
	inst, err := native.New(native.Options{
		Name:    backend.Null,
		Variant: gputypes.BackendEmpty,
	}, cfg)
	if err != nil {
		return nil, err
	}
	return inst, nil
}
