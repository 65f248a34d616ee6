package geom

// Affine is a 2x3 affine transform:
//
//	| A  C  E |
//	| B  D  F |
//
// mapping (x, y) to (A*x + C*y + E, B*x + D*y + F).
type Affine struct {
	A, B, C, D, E, F float32
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Apply transforms the point p.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Mul returns the composition m * other (other applied first).
func (m Affine) Mul(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

// ReflectAcross returns the reflection across the line through point with
// the given direction. Applied twice it returns any point to itself.
// A near-zero direction yields the identity.
func ReflectAcross(point, dir Vec2) Affine {
	u := dir.Normalize()
	if u == (Vec2{}) {
		return Identity()
	}

	// Reflection about a line through the origin along unit (ux, uy).
	a := 2*u.X*u.X - 1
	b := 2 * u.X * u.Y
	d := 2*u.Y*u.Y - 1

	// Conjugate with the translation moving the line through point.
	return Affine{
		A: a, B: b,
		C: b, D: d,
		E: point.X - a*point.X - b*point.Y,
		F: point.Y - b*point.X - d*point.Y,
	}
}
