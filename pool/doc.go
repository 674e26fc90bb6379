// Package pool keeps the GPU textures that back the planes of the current
// decoded frame and the current overlay regions.
//
// Plane textures are keyed by plane index and reallocated only when the
// plane's texture format or size changes, so steady-state playback does no
// allocations. The overlay array grows to the largest region count seen in
// a session and never shrinks.
//
// A Pool is owned by exactly one renderer and is not safe for concurrent use.
package pool
