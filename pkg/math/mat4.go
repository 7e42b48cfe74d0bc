package math

import "math"

// Mat4 is a column-major 4x4 matrix, laid out the way glUniformMatrix4fv
// expects it with transpose=false. Element (row r, col c) is m[c*4+r].
type Mat4 [16]float32

func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Perspective builds a right-handed projection mapping depth to [-1, 1].
// fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// LookAt builds a view matrix for an eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	side := fwd.Cross(up).Normalize()
	upv := side.Cross(fwd)

	m := Identity()
	for i, axis := range [3]Vec3{side, upv, fwd.Scale(-1)} {
		m[0*4+i] = axis.X
		m[1*4+i] = axis.Y
		m[2*4+i] = axis.Z
		m[3*4+i] = -axis.Dot(eye)
	}
	return m
}

func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// rotation returns the plane rotation of the axes a and b (row/column
// indices) by angle radians.
func rotation(a, b int, angle float32) Mat4 {
	sin, cos := math.Sincos(float64(angle))
	c, s := float32(cos), float32(sin)

	m := Identity()
	m[a*4+a] = c
	m[a*4+b] = s
	m[b*4+a] = -s
	m[b*4+b] = c
	return m
}

// RotateX rotates about +X by angle radians.
func RotateX(angle float32) Mat4 { return rotation(1, 2, angle) }

// RotateY rotates about +Y by angle radians.
func RotateY(angle float32) Mat4 { return rotation(2, 0, angle) }

// RotateZ rotates about +Z by angle radians.
func RotateZ(angle float32) Mat4 { return rotation(0, 1, angle) }

// Mul returns m * o.
// SwapYZ exchanges the y and z axes.
func SwapYZ() Mat4 {
	var m Mat4
	m[0], m[6], m[9], m[15] = 1, 1, 1, 1
	return m
}

func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// TransformPoint applies m to p with w = 1 and divides by the resulting w.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Ptr returns a pointer to the first element for uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
