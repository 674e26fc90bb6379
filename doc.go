// Package vo is the GPU video output pipeline of a media player.
//
// # Overview
//
// vo takes decoded video frames plus optional overlay (subtitle) regions and
// presents them, color-correctly, on a native window through a replaceable
// GPU backend. The backends are built on the gogpu/wgpu HAL: Vulkan and
// OpenGL for real windows, and a null backend for headless use.
//
// The root package holds the data model shared by every layer: decoded
// frames and their planes, colorimetry and HDR metadata, orientation,
// overlays, the error taxonomy and the package logger.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vo"
//	    "github.com/gogpu/vo/output"
//	    "github.com/gogpu/vo/pipeline"
//	    "github.com/gogpu/vo/platform"
//	    _ "github.com/gogpu/vo/backend/vulkan"
//	    _ "github.com/gogpu/vo/backend/gl"
//	)
//
//	s, err := output.Open(output.Config{
//	    Backend:  "auto",
//	    Window:   platform.Window{Kind: platform.X11, Handle: xid},
//	    Pipeline: pipeline.DefaultOptions(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	for frame := range decoded {
//	    s.Draw(frame, overlays)
//	}
//
// # Packages
//
//   - platform: windowing-system specific surface creation (X11, Wayland, headless)
//   - backend: backend instance and swapchain interfaces, registry and auto-probe
//   - backend/native: wgpu HAL implementation shared by all backends
//   - backend/vulkan, backend/gl, backend/null: backend variants
//   - pool: per-session GPU texture pool for planes and overlays
//   - pipeline: color pipeline configuration and scaler presets
//   - asset: custom LUT and hook-shader loading
//   - render: the per-frame renderer state machine
//   - output: the output session tying everything together
//
// # Logging
//
// vo is silent by default. Use [SetLogger] to route diagnostics to a
// [log/slog] logger.
package vo
