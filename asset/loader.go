package asset

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/vo"
)

// Loader loads and caches the custom LUT and custom shader.
//
// Each asset kind remembers the last requested path. Asking for the same
// path again returns the cached result without touching the file system,
// including when the previous attempt failed. An empty path clears the
// cached asset.
//
// A Loader is not safe for concurrent use.
type Loader struct {
	fsys fs.FS

	lut    entry[LUT]
	shader entry[Shader]
}

type entry[T any] struct {
	path  string
	value *T
	err   error
}

// NewLoader returns a loader reading from fsys. A nil fsys reads from the
// host file system, accepting absolute paths and a leading ~/.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LUT returns the table at path, or nil if none is active.
func (l *Loader) LUT(path string) *LUT {
	return load(l, &l.lut, "lut", path, ParseCube)
}

// Shader returns the hook shader at path, or nil if none is active.
func (l *Loader) Shader(path string) *Shader {
	return load(l, &l.shader, "shader", path, ParseShader)
}

// LUTError returns the error of the last LUT load, or nil.
func (l *Loader) LUTError() error { return l.lut.err }

// ShaderError returns the error of the last shader load, or nil.
func (l *Loader) ShaderError() error { return l.shader.err }

func load[T any](l *Loader, e *entry[T], kind, path string, parse func([]byte) (*T, error)) *T {
	if path == e.path {
		return e.value
	}
	e.path = path
	e.err = nil

	if path == "" {
		if e.value != nil {
			vo.Logger().Info("asset: cleared", "kind", kind)
		}
		e.value = nil
		return nil
	}

	data, err := l.read(path)
	if err == nil {
		var v *T
		if v, err = parse(data); err == nil {
			e.value = v
			vo.Logger().Info("asset: loaded", "kind", kind, "path", path)
			return v
		}
	}

	e.err = vo.Soft("asset: load "+kind, err)
	vo.Logger().Warn("asset: load failed, keeping previous", "kind", kind, "path", path, "err", err)
	return e.value
}

func (l *Loader) read(path string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, strings.TrimPrefix(filepath.ToSlash(path), "/"))
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	return os.ReadFile(path)
}
