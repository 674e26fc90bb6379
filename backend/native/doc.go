// Package native implements backend instances on top of the gogpu/wgpu
// hardware abstraction layer.
//
// An [Instance] opens a HAL backend variant (Vulkan, GLES or the noop
// backend), creates a surface for the session window through the platform
// layer, picks an adapter able to present to it and opens a device. It
// then provides the three objects the renderer works with:
//
//   - [Swapchain] negotiates the surface format from the colorspace hint
//     and hands out one presentable image at a time
//   - [Painter] converts the uploaded planes to the output colorspace
//     with the shaders in shaders/, applying deband, sigmoidal upscaling
//     and the custom LUT, runs custom hook passes and composites overlays
//   - [Allocator] creates the sampled plane and overlay textures
//
// The variant packages under backend/ are thin wrappers that register a
// factory calling [New] with their HAL variant and context binder.
package native
