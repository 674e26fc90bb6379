// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import "strings"

// Kernel identifies a scaling filter function.
type Kernel uint8

// Filter kernels.
const (
	KernelNone Kernel = iota
	KernelBox
	KernelTriangle
	KernelCubic
	KernelHermite
	KernelCatmullRom
	KernelMitchell
	KernelRobidoux
	KernelSpline16
	KernelSpline36
	KernelSpline64
	KernelSinc
	KernelJinc
	KernelGaussian
	KernelOversample
)

var kernelNames = [...]string{
	KernelNone:       "",
	KernelBox:        "box",
	KernelTriangle:   "triangle",
	KernelCubic:      "bicubic",
	KernelHermite:    "hermite",
	KernelCatmullRom: "catmull_rom",
	KernelMitchell:   "mitchell",
	KernelRobidoux:   "robidoux",
	KernelSpline16:   "spline16",
	KernelSpline36:   "spline36",
	KernelSpline64:   "spline64",
	KernelSinc:       "sinc",
	KernelJinc:       "jinc",
	KernelGaussian:   "gaussian",
	KernelOversample: "oversample",
}

func (k Kernel) String() string {
	if int(k) < len(kernelNames) && k != KernelNone {
		return kernelNames[k]
	}
	return "none"
}

// ParseKernel looks up a kernel by name. It returns KernelNone for
// empty or unknown names.
func ParseKernel(name string) Kernel {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kernelNames {
		if n != "" && n == name {
			return Kernel(i)
		}
	}
	return KernelNone
}

// Window identifies the window function applied to a kernel.
type Window uint8

// Window functions.
const (
	WindowNone Window = iota
	WindowBox
	WindowTriangle
	WindowSinc
	WindowJinc
	WindowHann
	WindowHamming
	WindowBlackman
	WindowKaiser
	WindowWelch
	WindowGaussian
)

var windowNames = [...]string{
	WindowNone:     "",
	WindowBox:      "box",
	WindowTriangle: "triangle",
	WindowSinc:     "sinc",
	WindowJinc:     "jinc",
	WindowHann:     "hann",
	WindowHamming:  "hamming",
	WindowBlackman: "blackman",
	WindowKaiser:   "kaiser",
	WindowWelch:    "welch",
	WindowGaussian: "gaussian",
}

func (w Window) String() string {
	if int(w) < len(windowNames) && w != WindowNone {
		return windowNames[w]
	}
	return "none"
}

// ParseWindow looks up a window by name. It returns WindowNone for
// empty or unknown names.
func ParseWindow(name string) Window {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range windowNames {
		if n != "" && n == name {
			return Window(i)
		}
	}
	return WindowNone
}

// Scaler is a fully resolved scaling filter.
type Scaler struct {
	Name   string
	Kernel Kernel
	Window Window
	Clamp  float64
	Blur   float64
	Taper  float64
	Polar  bool
}

// PresetCustom is the preset name that reads the filter from the
// individual custom options.
const PresetCustom = "custom"

// Presets is the table of named scaler presets.
var Presets = [...]Scaler{
	{Name: "nearest", Kernel: KernelBox},
	{Name: "bilinear", Kernel: KernelTriangle},
	{Name: "bicubic", Kernel: KernelCubic},
	{Name: "hermite", Kernel: KernelHermite},
	{Name: "catmull_rom", Kernel: KernelCatmullRom},
	{Name: "mitchell", Kernel: KernelMitchell},
	{Name: "mitchell_clamp", Kernel: KernelMitchell, Clamp: 1},
	{Name: "robidoux", Kernel: KernelRobidoux},
	{Name: "spline16", Kernel: KernelSpline16},
	{Name: "spline36", Kernel: KernelSpline36},
	{Name: "spline64", Kernel: KernelSpline64},
	{Name: "lanczos", Kernel: KernelSinc, Window: WindowSinc},
	{Name: "ewa_lanczos", Kernel: KernelJinc, Window: WindowJinc, Polar: true},
	{Name: "ewa_lanczossharp", Kernel: KernelJinc, Window: WindowJinc, Blur: 0.98125058372237073562493, Polar: true},
	{Name: "ewa_lanczos4sharpest", Kernel: KernelJinc, Window: WindowJinc, Blur: 0.88451209326050047745788, Polar: true},
	{Name: "ewa_robidoux", Kernel: KernelRobidoux, Polar: true},
	{Name: "gaussian", Kernel: KernelGaussian},
	{Name: "oversample", Kernel: KernelOversample},
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Scaler, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Scaler{}, false
}

// PresetNames returns the names accepted as scaler presets, including
// PresetCustom.
func PresetNames() []string {
	names := make([]string, 0, len(Presets)+1)
	for _, p := range Presets {
		names = append(names, p.Name)
	}
	return append(names, PresetCustom)
}
