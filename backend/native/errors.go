package native

import "errors"

// Package errors for the native backend.
var (
	// ErrHALBackendMissing is returned when the requested HAL backend is not
	// compiled in or not registered.
	ErrHALBackendMissing = errors.New("native: HAL backend not registered")

	// ErrNoGPU is returned when no adapter can present to the surface.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrNoSurfaceFormat is returned when the surface advertises no formats.
	ErrNoSurfaceFormat = errors.New("native: surface has no supported format")

	// ErrFrameInFlight is returned when acquiring, resizing or destroying
	// while a frame is acquired but not yet presented.
	ErrFrameInFlight = errors.New("native: frame in flight")

	// ErrNotAcquired is returned when submitting a frame that was not
	// acquired from this swapchain.
	ErrNotAcquired = errors.New("native: frame not acquired")

	// ErrForeignTexture is returned when a texture from another allocator
	// is passed in.
	ErrForeignTexture = errors.New("native: texture not created by this device")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("native: texture has been destroyed")
)
