package asset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrInvalidCube is returned for malformed .cube data.
var ErrInvalidCube = errors.New("asset: invalid cube file")

// Size limits for .cube tables.
const (
	MinLUTSize   = 2
	MaxLUT1DSize = 65536
	MaxLUT3DSize = 256
)

// LUTKind tells 1D and 3D tables apart.
type LUTKind uint8

// LUT kinds.
const (
	LUT1D LUTKind = iota + 1
	LUT3D
)

func (k LUTKind) String() string {
	switch k {
	case LUT1D:
		return "1d"
	case LUT3D:
		return "3d"
	}
	return "none"
}

// LUT is a parsed color lookup table. Data holds RGB triples; for 3D
// tables red varies fastest, then green, then blue.
type LUT struct {
	Title     string
	Kind      LUTKind
	Size      int
	DomainMin [3]float32
	DomainMax [3]float32
	Data      []float32
}

// Entries returns the number of RGB triples in the table.
func (l *LUT) Entries() int { return len(l.Data) / 3 }

// At returns the entry at grid position (r, g, b). For 1D tables only r
// is used and the channels index independent curves.
func (l *LUT) At(r, g, b int) [3]float32 {
	i := r
	if l.Kind == LUT3D {
		i = r + l.Size*(g+l.Size*b)
	}
	return [3]float32{l.Data[3*i], l.Data[3*i+1], l.Data[3*i+2]}
}

func cubeErr(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidCube, line, fmt.Sprintf(format, args...))
}

// ParseCube parses .cube data.
func ParseCube(data []byte) (*LUT, error) {
	lut := &LUT{DomainMax: [3]float32{1, 1, 1}}
	want := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		if c := text[0]; c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9') {
			if want == 0 {
				return nil, cubeErr(line, "data before LUT size")
			}
			rgb, err := parseTriple(strings.Fields(text))
			if err != nil {
				return nil, cubeErr(line, "%v", err)
			}
			if lut.Entries() >= want {
				return nil, cubeErr(line, "more than %d entries", want)
			}
			lut.Data = append(lut.Data, rgb[0], rgb[1], rgb[2])
			continue
		}

		if len(lut.Data) > 0 {
			return nil, cubeErr(line, "keyword after table data")
		}
		key, rest, _ := strings.Cut(text, " ")
		rest = strings.TrimSpace(rest)
		switch key {
		case "TITLE":
			lut.Title = decodeTitle(strings.Trim(rest, `"`))
		case "LUT_1D_SIZE", "LUT_3D_SIZE":
			if lut.Kind != 0 {
				return nil, cubeErr(line, "duplicate size keyword")
			}
			n, err := strconv.Atoi(rest)
			if err != nil {
				return nil, cubeErr(line, "bad size %q", rest)
			}
			if key == "LUT_1D_SIZE" {
				if n < MinLUTSize || n > MaxLUT1DSize {
					return nil, cubeErr(line, "1D size %d out of range", n)
				}
				lut.Kind, want = LUT1D, n
			} else {
				if n < MinLUTSize || n > MaxLUT3DSize {
					return nil, cubeErr(line, "3D size %d out of range", n)
				}
				lut.Kind, want = LUT3D, n*n*n
			}
			lut.Size = n
			lut.Data = make([]float32, 0, 3*want)
		case "DOMAIN_MIN", "DOMAIN_MAX":
			rgb, err := parseTriple(strings.Fields(rest))
			if err != nil {
				return nil, cubeErr(line, "%s: %v", key, err)
			}
			if key == "DOMAIN_MIN" {
				lut.DomainMin = rgb
			} else {
				lut.DomainMax = rgb
			}
		case "LUT_1D_INPUT_RANGE", "LUT_3D_INPUT_RANGE":
			f := strings.Fields(rest)
			if len(f) != 2 {
				return nil, cubeErr(line, "%s needs two values", key)
			}
			lo, err1 := strconv.ParseFloat(f[0], 32)
			hi, err2 := strconv.ParseFloat(f[1], 32)
			if err1 != nil || err2 != nil {
				return nil, cubeErr(line, "bad %s", key)
			}
			lut.DomainMin = [3]float32{float32(lo), float32(lo), float32(lo)}
			lut.DomainMax = [3]float32{float32(hi), float32(hi), float32(hi)}
		default:
			return nil, cubeErr(line, "unknown keyword %q", key)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCube, err)
	}

	if lut.Kind == 0 {
		return nil, fmt.Errorf("%w: missing LUT_1D_SIZE or LUT_3D_SIZE", ErrInvalidCube)
	}
	if got := lut.Entries(); got != want {
		return nil, fmt.Errorf("%w: %d entries, want %d", ErrInvalidCube, got, want)
	}
	for c := range 3 {
		if lut.DomainMin[c] >= lut.DomainMax[c] {
			return nil, fmt.Errorf("%w: empty domain in channel %d", ErrInvalidCube, c)
		}
	}
	return lut, nil
}

func parseTriple(f []string) ([3]float32, error) {
	var v [3]float32
	if len(f) != 3 {
		return v, fmt.Errorf("want 3 values, got %d", len(f))
	}
	for i, s := range f {
		x, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return v, fmt.Errorf("bad number %q", s)
		}
		v[i] = float32(x)
	}
	return v, nil
}

// decodeTitle returns s unchanged if it is UTF-8 and decodes it as
// Latin-1 otherwise; older grading tools write titles in Latin-1.
func decodeTitle(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "?")
	}
	return out
}
