// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform creates presentation surfaces for native windows.
//
// A Platform hides the windowing-system specific part of surface creation
// from the GPU backends. One implementation exists per windowing system:
//
//   - X11: validates the window over an xgb connection, queries its
//     geometry and opens an Xlib display for Vulkan surface creation
//   - Wayland: passes the wl_display and wl_surface pointers through
//   - Headless: creates a surface without any window, for offscreen use
//
// Platforms are selected by [WindowKind] through a small registry, and are
// injected into the backend instance when it is created:
//
//	p, err := platform.New(w.Kind)
//	if err != nil {
//	    return err
//	}
//	if err := p.Init(w); err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	surface, err := p.CreateSurface(halInstance)
//
// The window handle itself is owned by the caller. A platform never
// destroys the window; Close only releases connections it opened.
package platform
