package vo

// Orientation is the intrinsic display orientation of a frame, as
// signaled by container or bitstream metadata. The operations are
// applied in order: Transpose, FlipH, FlipV, then a clockwise rotation
// by Rotate degrees (0, 90, 180 or 270).
type Orientation struct {
	Rotate    int
	FlipH     bool
	FlipV     bool
	Transpose bool
}

// mat2 is an integer 2x2 matrix acting on (x, y) in a y-down space.
type mat2 [4]int

func (a mat2) mul(b mat2) mat2 {
	return mat2{
		a[0]*b[0] + a[1]*b[2], a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2], a[2]*b[1] + a[3]*b[3],
	}
}

var (
	matIdentity  = mat2{1, 0, 0, 1}
	matFlipH     = mat2{-1, 0, 0, 1}
	matFlipV     = mat2{1, 0, 0, -1}
	matTranspose = mat2{0, 1, 1, 0}
	matRot90     = mat2{0, -1, 1, 0}
)

func rotation(deg int) mat2 {
	m := matIdentity
	for range ((deg%360 + 360) % 360) / 90 {
		m = matRot90.mul(m)
	}
	return m
}

func (o Orientation) matrix() mat2 {
	m := matIdentity
	if o.Transpose {
		m = matTranspose.mul(m)
	}
	if o.FlipH {
		m = matFlipH.mul(m)
	}
	if o.FlipV {
		m = matFlipV.mul(m)
	}
	return rotation(o.Rotate).mul(m)
}

// Normalize reduces o to the canonical form of at most a horizontal flip
// followed by a clockwise rotation. Rotate is snapped down to a multiple
// of 90 degrees.
func (o Orientation) Normalize() Orientation {
	target := o.matrix()
	for _, flip := range []bool{false, true} {
		for rot := 0; rot < 360; rot += 90 {
			c := Orientation{Rotate: rot, FlipH: flip}
			if c.matrix() == target {
				return c
			}
		}
	}
	return Orientation{}
}

// SwapsAxes reports whether the orientation exchanges width and height.
func (o Orientation) SwapsAxes() bool {
	r := o.Normalize().Rotate
	return r == 90 || r == 270
}

// IsIdentity reports whether the orientation leaves the image unchanged.
func (o Orientation) IsIdentity() bool {
	return o.Normalize() == Orientation{}
}
