package render

import "github.com/chewxy/math32"

// Samples taken per Catmull-Rom interval when tessellating curved lines.
const curveSamplesPerSegment = 20

// appendShapeQuad emits the two triangles covering an object's bounds.
// Rounding and circle masking happen entirely in the fragment shader via
// the geometry-space coordinate, so every shape is the same quad.
func appendShapeQuad(verts []Vertex, bounds, uv Rect) []Vertex {
	x1, y1 := bounds.X, bounds.Y
	x2, y2 := bounds.X+bounds.W, bounds.Y+bounds.H
	u1, v1 := uv.X, uv.Y
	u2, v2 := uv.W, uv.H

	return append(verts,
		Vertex{Vec2{x1, y1}, Vec2{u1, v1}, Vec2{0, 0}},
		Vertex{Vec2{x1, y2}, Vec2{u1, v2}, Vec2{0, 1}},
		Vertex{Vec2{x2, y1}, Vec2{u2, v1}, Vec2{1, 0}},

		Vertex{Vec2{x2, y1}, Vec2{u2, v1}, Vec2{1, 0}},
		Vertex{Vec2{x1, y2}, Vec2{u1, v2}, Vec2{0, 1}},
		Vertex{Vec2{x2, y2}, Vec2{u2, v2}, Vec2{1, 1}},
	)
}

// appendGlyphQuad emits a glyph quad from the four pre-rotated world-space
// corners stored in the object's uniform map, with the glyph's atlas
// sub-rectangle as texture coordinates.
func appendGlyphQuad(verts []Vertex, o *Object) []Vertex {
	c0, ok0 := o.uniform("v0")
	c1, ok1 := o.uniform("v1")
	c2, ok2 := o.uniform("v2")
	c3, ok3 := o.uniform("v3")
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return verts
	}
	v0 := Vec2{c0.Vec[0], c0.Vec[1]}
	v1 := Vec2{c1.Vec[0], c1.Vec[1]}
	v2 := Vec2{c2.Vec[0], c2.Vec[1]}
	v3 := Vec2{c3.Vec[0], c3.Vec[1]}

	u1, t1 := o.UVRect.X, o.UVRect.Y
	u2, t2 := o.UVRect.W, o.UVRect.H

	return append(verts,
		Vertex{v0, Vec2{u1, t1}, Vec2{0, 0}},
		Vertex{v3, Vec2{u1, t2}, Vec2{0, 1}},
		Vertex{v1, Vec2{u2, t1}, Vec2{1, 0}},

		Vertex{v1, Vec2{u2, t1}, Vec2{1, 0}},
		Vertex{v2, Vec2{u2, t2}, Vec2{1, 1}},
		Vertex{v3, Vec2{u1, t2}, Vec2{0, 1}},
	)
}

// linePolyline produces the point sequence a line is stroked along. For
// straight lines that is start, controls, end verbatim. Curved lines are
// tessellated with a Catmull-Rom cubic clamped at the sequence ends; when
// no controls were supplied, a single control is synthesized at the
// midpoint, offset perpendicular to the segment by a quarter of its
// length, giving a gentle single-arc curve. The last sample is forced to
// the exact end point so floating-point drift cannot detach the stroke.
func linePolyline(o *Object) []Vec2 {
	all := make([]Vec2, 0, len(o.Controls)+2)
	all = append(all, o.Start)
	all = append(all, o.Controls...)
	all = append(all, o.End)

	if o.Mode == LineStraight {
		return all
	}
	if len(all) < 2 {
		return nil
	}

	if len(o.Controls) == 0 {
		dir := Vec2{o.End.X - o.Start.X, o.End.Y - o.Start.Y}
		length := math32.Sqrt(dir.X*dir.X + dir.Y*dir.Y)
		if length > 1e-6 {
			perp := Vec2{-dir.Y / length, dir.X / length}
			mid := Vec2{
				(o.Start.X+o.End.X)/2 + perp.X*(length/4),
				(o.Start.Y+o.End.Y)/2 + perp.Y*(length/4),
			}
			all = []Vec2{o.Start, mid, o.End}
		}
	}

	points := make([]Vec2, 0, (len(all)-1)*curveSamplesPerSegment)
	for i := 0; i < len(all)-1; i++ {
		p0 := all[maxInt(i-1, 0)]
		p1 := all[i]
		p2 := all[i+1]
		p3 := all[minInt(i+2, len(all)-1)]

		for k := 0; k < curveSamplesPerSegment; k++ {
			t := float32(k) / float32(curveSamplesPerSegment-1)
			points = append(points, catmullRom(p0, p1, p2, p3, t))
		}
	}
	if len(points) > 0 {
		points[len(points)-1] = o.End
	}
	return points
}

func catmullRom(p0, p1, p2, p3 Vec2, t float32) Vec2 {
	t2 := t * t
	t3 := t2 * t
	return Vec2{
		0.5 * ((-t3+2*t2-t)*p0.X + (3*t3-5*t2+2)*p1.X + (-3*t3+4*t2+t)*p2.X + (t3-t2)*p3.X),
		0.5 * ((-t3+2*t2-t)*p0.Y + (3*t3-5*t2+2)*p1.Y + (-3*t3+4*t2+t)*p2.Y + (t3-t2)*p3.Y),
	}
}

// appendLineQuads strokes the polyline: one quad per consecutive pair,
// long edges offset by half the stroke width along the segment's
// perpendicular. Near-zero segments, including the duplicate samples at
// Catmull-Rom interval boundaries, are skipped.
func appendLineQuads(verts []Vertex, points []Vec2, width float32) []Vertex {
	for seg := 0; seg+1 < len(points); seg++ {
		p1 := points[seg]
		p2 := points[seg+1]
		dir := Vec2{p2.X - p1.X, p2.Y - p1.Y}

		length := math32.Sqrt(dir.X*dir.X + dir.Y*dir.Y)
		if length < 0.001 {
			continue
		}

		dir = Vec2{dir.X / length, dir.Y / length}
		perp := Vec2{-dir.Y * width / 2, dir.X * width / 2}

		v0 := Vec2{p1.X + perp.X, p1.Y + perp.Y}
		v1 := Vec2{p1.X - perp.X, p1.Y - perp.Y}
		v2 := Vec2{p2.X - perp.X, p2.Y - perp.Y}
		v3 := Vec2{p2.X + perp.X, p2.Y + perp.Y}

		verts = append(verts,
			Vertex{v0, Vec2{0, 0}, Vec2{0, 1}},
			Vertex{v1, Vec2{0, 1}, Vec2{0, 0}},
			Vertex{v3, Vec2{1, 0}, Vec2{1, 1}},

			Vertex{v1, Vec2{0, 1}, Vec2{0, 0}},
			Vertex{v2, Vec2{1, 1}, Vec2{1, 0}},
			Vertex{v3, Vec2{1, 0}, Vec2{1, 1}},
		)
	}
	return verts
}

// lineBounds computes the tight axis-aligned box of the stroked geometry,
// inflated by half the stroke width, plus the triangle count the draw pass
// will emit. Both are fixed whenever endpoints, controls or width change.
func lineBounds(o *Object) (Rect, int) {
	points := linePolyline(o)
	if len(points) == 0 {
		return Rect{o.Start.X, o.Start.Y, 0, 0}, 0
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = min32(minX, p.X)
		maxX = max32(maxX, p.X)
		minY = min32(minY, p.Y)
		maxY = max32(maxY, p.Y)
	}

	half := o.StrokeWidth / 2
	bounds := Rect{minX - half, minY - half, maxX - minX + o.StrokeWidth, maxY - minY + o.StrokeWidth}

	triCount := 0
	if len(points) > 1 {
		triCount = (len(points) - 1) * 2
	}
	return bounds, triCount
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
