package gl

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/vo/backend"
	"github.com/gogpu/vo/backend/native"
)

// Priority is the auto-probe priority of the OpenGL backend.
const Priority = 50

var eglLibrary = []string{"libEGL.so.1", "libEGL.so"}

func init() {
	backend.Register(backend.GL, backend.Entry{
		Priority:  Priority,
		Factory:   New,
		Available: available,
		AutoProbe: true,
	})
}

func available() bool {
	return supported && native.LibraryAvailable(eglLibrary...)
}

// New creates an OpenGL instance for the window in cfg.
func New(cfg backend.Config) (backend.Instance, error) {
	if !supported {
		return nil, backend.ErrBackendNotAvailable
	}
	inst, err := native.New(native.Options{
		Name:    backend.GL,
		Variant: gputypes.BackendGL,
		Binder:  newBinder(),
		Flipped: true,
	}, cfg)
	if err != nil {
		return nil, err
	}
	return inst, nil
}
