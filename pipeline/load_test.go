package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/gogpu/vo"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	return v
}

func TestLoadMergesDefaults(t *testing.T) {
	v := newViper(t, `
output_mode: HDR10
upscaler:
  preset: ewa_lanczossharp
deband:
  enable: true
  iterations: 2
target:
  primaries: bt.2020
  transfer: pq
hdr_bounds:
  peak_max: 50
lut: ~/luts/film.cube
`)
	opts, err := Load(v, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if opts.OutputMode != vo.OutputHDR10 {
		t.Errorf("OutputMode = %v", opts.OutputMode)
	}
	if opts.Upscaler.Preset != "ewa_lanczossharp" {
		t.Errorf("Upscaler.Preset = %q", opts.Upscaler.Preset)
	}
	if !opts.Deband.Enable || opts.Deband.Iterations != 2 {
		t.Errorf("Deband = %+v", opts.Deband)
	}
	if opts.Deband.Threshold != DefaultOptions().Deband.Threshold {
		t.Errorf("unset deband threshold lost its default: %g", opts.Deband.Threshold)
	}
	if opts.Target.Primaries != vo.PrimariesBT2020 || opts.Target.Transfer != vo.TransferPQ {
		t.Errorf("Target = %+v", opts.Target)
	}
	if opts.HDRBounds.PeakMax != 50 || opts.HDRBounds.PeakMin != 1 {
		t.Errorf("HDRBounds = %+v", opts.HDRBounds)
	}
	if opts.LUT != "~/luts/film.cube" {
		t.Errorf("LUT = %q", opts.LUT)
	}
}

func TestLoadUnderKey(t *testing.T) {
	v := newViper(t, "pipeline:\n  dither:\n    method: ordered\n")
	opts, err := Load(v, "pipeline")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Dither.Method != "ordered" {
		t.Errorf("Dither.Method = %q", opts.Dither.Method)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad enum", "output_mode: hdr12\n"},
		{"out of range", "deband:\n  iterations: 99\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(newViper(t, tt.yaml), ""); err == nil {
				t.Error("Load() should fail")
			}
		})
	}

	_, err := Load(newViper(t, "deband:\n  iterations: 99\n"), "")
	if !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("range error = %v, want ErrInvalidOptions", err)
	}
}
