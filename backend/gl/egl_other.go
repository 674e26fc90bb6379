//go:build !linux

package gl

import "github.com/gogpu/vo/backend/native"

const supported = false

func newBinder() native.ContextBinder { return native.NoopBinder{} }
