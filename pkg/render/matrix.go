package render

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in column-major order, matching what the graphics
// API expects for a non-transposed upload.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Ortho2D builds the projection for a top-left origin screen space with Y
// pointing down. Z is flattened; the renderer has no depth.
func Ortho2D(width, height int) Mat4 {
	r := float32(width)
	b := float32(height)
	var m Mat4
	m[0] = 2 / r
	m[5] = -2 / b
	m[10] = -1
	m[12] = -1
	m[13] = 1
	m[15] = 1
	return m
}

// rotationMatrix composes translate-to-pivot, rotate, translate-back into
// one model matrix. The pivot is a fraction of the object's bounds; angle
// is in degrees.
func rotationMatrix(angle float32, pivot Vec2, bounds Rect) Mat4 {
	rad := angle * math32.Pi / 180
	cosA := math32.Cos(rad)
	sinA := math32.Sin(rad)

	cx := bounds.X + bounds.W*pivot.X
	cy := bounds.Y + bounds.H*pivot.Y

	var m Mat4
	m[0] = cosA
	m[1] = sinA
	m[4] = -sinA
	m[5] = cosA
	m[10] = 1
	m[12] = cx - cosA*cx + sinA*cy
	m[13] = cy - sinA*cx - cosA*cy
	m[15] = 1
	return m
}
