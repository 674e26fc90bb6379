package native

import (
	"cmp"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// adapterRank orders device types, lower is better.
func adapterRank(t gputypes.DeviceType) int {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return 0
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	case gputypes.DeviceTypeVirtualGPU:
		return 2
	case gputypes.DeviceTypeCPU:
		return 4
	}
	return 3
}

// candidate is an enumerated adapter with its capabilities for the
// session surface.
type candidate struct {
	hal.ExposedAdapter
	caps  *hal.SurfaceCapabilities
	index int
}

// pickAdapter chooses the adapter to open. Adapters that can present to
// surface come first, then discrete before integrated before anything
// else; enumeration order breaks ties.
func pickAdapter(adapters []hal.ExposedAdapter, surface hal.Surface) (candidate, bool) {
	cands := make([]candidate, 0, len(adapters))
	for k, a := range adapters {
		if a.Adapter == nil {
			continue
		}
		caps := a.Adapter.SurfaceCapabilities(surface)
		if caps != nil && len(caps.Formats) == 0 {
			caps = nil
		}
		cands = append(cands, candidate{ExposedAdapter: a, caps: caps, index: k})
	}
	if len(cands) == 0 {
		return candidate{}, false
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		if (a.caps == nil) != (b.caps == nil) {
			if a.caps != nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(adapterRank(a.Info.DeviceType), adapterRank(b.Info.DeviceType))
	})
	return cands[0], true
}

// releaseUnused destroys every enumerated adapter except adapters[keep].
func releaseUnused(adapters []hal.ExposedAdapter, keep int) {
	for k, a := range adapters {
		if k != keep && a.Adapter != nil {
			a.Adapter.Destroy()
		}
	}
}

// adapterType maps a HAL device type to the gpucontext classification.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterTypeUnknown
}
