// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render draws decoded video frames into swapchain images.
//
// A Renderer runs one state machine per frame:
//
//	acquire -> build source -> build target -> overlays -> clear
//	        -> render -> flush -> submit -> present
//
// The source descriptor is built from the decoded frame: colorimetry with
// untagged fields inferred and HDR metadata sanity-checked, plane textures
// uploaded through the session pool, chroma siting applied to chroma
// planes only, and the intrinsic orientation folded into the crop and a
// rotation. The target descriptor is built from the acquired swapchain
// image with the user overrides from the pipeline parameters applied.
//
// Nothing that goes wrong inside a frame is returned to the caller. A
// missing swapchain image skips the frame; a failed upload or render
// clears the image to ErrorColor and still presents it so the display
// stays responsive.
//
// # Backends
//
// Backends plug in through three small interfaces: Context brackets GPU
// work on the calling thread, Swapchain hands out presentable images, and
// Painter records the actual GPU commands.
//
// # Thread Safety
//
// A Renderer is NOT thread-safe. It must be driven from the single render
// thread of its output session.
package render
