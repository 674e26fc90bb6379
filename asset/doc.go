// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package asset loads the optional custom color lookup table and custom
// hook shaders used by the color pipeline.
//
// LUTs use the textual .cube format (1D or 3D). Hook shaders are text files
// made of passes, each introduced by //! directives and followed by a WGSL
// module with a fragment entry point named hook:
//
//	//!HOOK MAIN
//	//!DESC invert
//	//!BIND HOOKED
//	@fragment
//	fn hook(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
//	    return vec4<f32>(1.0 - color.rgb, color.a);
//	}
//
// Each pass is compiled to SPIR-V with naga when loaded.
//
// A Loader caches the last requested path per asset kind and parses a file
// again only when the path changes. Load failures never propagate: they are
// logged, recorded, and leave the previously loaded asset in place.
package asset
