// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}
	if handle.AdapterInfo().Type != gpucontext.AdapterTypeUnknown {
		t.Error("NullDeviceHandle.AdapterInfo() should report an unknown adapter")
	}
}

func TestDeviceAttrs(t *testing.T) {
	if got := deviceAttrs(nil); len(got) != 2 || got[1] != "none" {
		t.Errorf("deviceAttrs(nil) = %v", got)
	}
	got := deviceAttrs(NullDeviceHandle{})
	if len(got) != 6 || got[1] != "none" || got[3] != "Unknown" {
		t.Errorf("deviceAttrs(NullDeviceHandle{}) = %v", got)
	}
}
