package asset

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// identityCube returns a 3D identity table of the given size.
func identityCube(size int) string {
	var b strings.Builder
	b.WriteString("# generated\nTITLE \"identity\"\n")
	fmt.Fprintf(&b, "LUT_3D_SIZE %d\n\n", size)
	d := float64(size - 1)
	for bl := range size {
		for g := range size {
			for r := range size {
				fmt.Fprintf(&b, "%.6f %.6f %.6f\n", float64(r)/d, float64(g)/d, float64(bl)/d)
			}
		}
	}
	return b.String()
}

func TestParseCube3D(t *testing.T) {
	lut, err := ParseCube([]byte(identityCube(4)))
	if err != nil {
		t.Fatalf("ParseCube() error = %v", err)
	}
	if lut.Kind != LUT3D || lut.Size != 4 {
		t.Errorf("Kind/Size = %v/%d, want 3d/4", lut.Kind, lut.Size)
	}
	if lut.Entries() != 64 {
		t.Errorf("Entries() = %d, want 64", lut.Entries())
	}
	if lut.Title != "identity" {
		t.Errorf("Title = %q", lut.Title)
	}
	if lut.DomainMin != [3]float32{0, 0, 0} || lut.DomainMax != [3]float32{1, 1, 1} {
		t.Errorf("domain = %v..%v", lut.DomainMin, lut.DomainMax)
	}
	if got := lut.At(3, 0, 0); got[0] != 1 || got[1] != 0 || got[2] != 0 {
		t.Errorf("At(3,0,0) = %v, red must vary fastest", got)
	}
	if got := lut.At(0, 0, 3); got[2] != 1 {
		t.Errorf("At(0,0,3) = %v", got)
	}
}

func TestParseCube1D(t *testing.T) {
	src := "LUT_1D_SIZE 3\nDOMAIN_MIN 0 0 0\nDOMAIN_MAX 2 2 2\n0 0 0\n1 1 1\n2 2 2\n"
	lut, err := ParseCube([]byte(src))
	if err != nil {
		t.Fatalf("ParseCube() error = %v", err)
	}
	if lut.Kind != LUT1D || lut.Entries() != 3 {
		t.Errorf("Kind/Entries = %v/%d", lut.Kind, lut.Entries())
	}
	if lut.DomainMax != [3]float32{2, 2, 2} {
		t.Errorf("DomainMax = %v", lut.DomainMax)
	}
}

func TestParseCubeInputRange(t *testing.T) {
	lut, err := ParseCube([]byte("LUT_1D_SIZE 2\nLUT_1D_INPUT_RANGE -0.5 1.5\n0 0 0\n1 1 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if lut.DomainMin[0] != -0.5 || lut.DomainMax[2] != 1.5 {
		t.Errorf("domain = %v..%v", lut.DomainMin, lut.DomainMax)
	}
}

func TestParseCubeLatin1Title(t *testing.T) {
	src := "TITLE \"caf\xe9\"\nLUT_1D_SIZE 2\n0 0 0\n1 1 1\n"
	lut, err := ParseCube([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if lut.Title != "café" {
		t.Errorf("Title = %q, want café", lut.Title)
	}
}

func TestParseCubeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"no size", "TITLE \"x\"\n"},
		{"data before size", "0 0 0\nLUT_1D_SIZE 2\n"},
		{"too few entries", "LUT_1D_SIZE 3\n0 0 0\n1 1 1\n"},
		{"too many entries", "LUT_1D_SIZE 2\n0 0 0\n1 1 1\n1 1 1\n"},
		{"two values", "LUT_1D_SIZE 2\n0 0\n1 1 1\n"},
		{"bad number", "LUT_1D_SIZE 2\n0 x 0\n1 1 1\n"},
		{"size too small", "LUT_3D_SIZE 1\n0 0 0\n"},
		{"size too large", "LUT_3D_SIZE 257\n"},
		{"duplicate size", "LUT_1D_SIZE 2\nLUT_3D_SIZE 2\n"},
		{"unknown keyword", "LUT_1D_SIZE 2\nFOO 1\n0 0 0\n1 1 1\n"},
		{"keyword after data", "LUT_1D_SIZE 2\n0 0 0\nDOMAIN_MIN 0 0 0\n1 1 1\n"},
		{"empty domain", "LUT_1D_SIZE 2\nDOMAIN_MIN 1 0 0\nDOMAIN_MAX 1 1 1\n0 0 0\n1 1 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCube([]byte(tt.src)); !errors.Is(err, ErrInvalidCube) {
				t.Errorf("ParseCube() error = %v, want ErrInvalidCube", err)
			}
		})
	}
}
