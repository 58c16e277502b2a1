package render

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestStraightLineBounds(t *testing.T) {
	tests := []struct {
		name  string
		start Vec2
		end   Vec2
		width float32
		want  Rect
		tris  int
	}{
		{
			name:  "horizontal",
			start: Vec2{0, 0}, end: Vec2{10, 0}, width: 2,
			want: Rect{-1, -1, 12, 2}, tris: 2,
		},
		{
			name:  "vertical",
			start: Vec2{5, 5}, end: Vec2{5, 25}, width: 4,
			want: Rect{3, 3, 4, 24}, tris: 2,
		},
		{
			name:  "degenerate",
			start: Vec2{3, 3}, end: Vec2{3, 3}, width: 2,
			want: Rect{2, 2, 2, 2}, tris: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Object{Kind: KindLine, Start: tt.start, End: tt.end,
				StrokeWidth: tt.width, Mode: LineStraight}
			bounds, tris := lineBounds(&o)
			if bounds != tt.want {
				t.Fatalf("bounds = %+v, want %+v", bounds, tt.want)
			}
			if tris != tt.tris {
				t.Fatalf("tris = %d, want %d", tris, tt.tris)
			}
		})
	}
}

func TestDegenerateSegmentsEmitNothing(t *testing.T) {
	o := Object{Kind: KindLine, Start: Vec2{3, 3}, End: Vec2{3, 3},
		StrokeWidth: 2, Mode: LineStraight}
	verts := appendLineQuads(nil, linePolyline(&o), o.StrokeWidth)
	if len(verts) != 0 {
		t.Fatalf("zero-length segment emitted %d vertices", len(verts))
	}
}

func TestCurvedLineSynthesizesControl(t *testing.T) {
	o := Object{Kind: KindLine, Start: Vec2{0, 0}, End: Vec2{100, 0},
		StrokeWidth: 2, Mode: LineCurved}
	points := linePolyline(&o)
	if len(points) != 2*curveSamplesPerSegment {
		t.Fatalf("got %d samples, want %d", len(points), 2*curveSamplesPerSegment)
	}

	// Without explicit controls, a single control appears at the segment
	// midpoint offset by a quarter length along the perpendicular. The
	// curve interpolates its controls, so one sample lands on it exactly.
	found := false
	for _, p := range points {
		if p == (Vec2{50, 25}) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("curve misses the synthesized control, samples %v", points)
	}
}

func TestCurvedLineEndsExactly(t *testing.T) {
	o := Object{Kind: KindLine, Start: Vec2{1, 2}, End: Vec2{73.3, 41.7},
		StrokeWidth: 2, Mode: LineCurved, Controls: []Vec2{{20, 60}}}
	points := linePolyline(&o)

	if points[0] != o.Start {
		t.Fatalf("first sample %+v, want start %+v", points[0], o.Start)
	}
	if points[len(points)-1] != o.End {
		t.Fatalf("last sample %+v, want end %+v", points[len(points)-1], o.End)
	}
}

func TestCurvedLineTriCount(t *testing.T) {
	o := Object{Kind: KindLine, Start: Vec2{0, 0}, End: Vec2{100, 0},
		StrokeWidth: 2, Mode: LineCurved, Controls: []Vec2{{50, 40}}}
	_, tris := lineBounds(&o)

	// Two intervals at curveSamplesPerSegment each; the duplicated sample
	// at the interval boundary drops one quad.
	samples := 2 * curveSamplesPerSegment
	if want := (samples - 1) * 2; tris != want {
		t.Fatalf("tris = %d, want %d", tris, want)
	}

	verts := appendLineQuads(nil, linePolyline(&o), o.StrokeWidth)
	// The boundary duplicate is skipped at emit time as a zero-length
	// segment, so the actual vertex count is one quad short.
	if want := (samples - 2) * 6; len(verts) != want {
		t.Fatalf("emitted %d vertices, want %d", len(verts), want)
	}
}

func TestCurvedBoundsCoverTheArc(t *testing.T) {
	o := Object{Kind: KindLine, Start: Vec2{0, 0}, End: Vec2{100, 0},
		StrokeWidth: 2, Mode: LineCurved}
	bounds, _ := lineBounds(&o)

	// The arc reaches y=25 at its control; the box must cover it plus
	// half the stroke width on every side.
	if bounds.X > -1 || bounds.Y > -1 {
		t.Fatalf("bounds origin %+v does not include the stroke", bounds)
	}
	if bounds.Y+bounds.H < 26 {
		t.Fatalf("bounds %+v do not cover the arc apex", bounds)
	}
	if bounds.X+bounds.W < 101 {
		t.Fatalf("bounds %+v do not cover the end point", bounds)
	}
}

func TestShapeQuadWinding(t *testing.T) {
	verts := appendShapeQuad(nil, Rect{10, 20, 30, 40}, Rect{0, 0, 1, 1})
	if len(verts) != 6 {
		t.Fatalf("quad emitted %d vertices, want 6", len(verts))
	}
	if verts[0].Pos != (Vec2{10, 20}) {
		t.Fatalf("first vertex %+v, want top-left", verts[0].Pos)
	}
	if verts[5].Pos != (Vec2{40, 60}) {
		t.Fatalf("last vertex %+v, want bottom-right", verts[5].Pos)
	}
	if verts[0].GeomUV != (Vec2{0, 0}) || verts[5].GeomUV != (Vec2{1, 1}) {
		t.Fatal("geometry coordinates do not span the unit square")
	}
}

func TestRotationMatrixKeepsPivotFixed(t *testing.T) {
	bounds := Rect{10, 10, 20, 20}
	m := rotationMatrix(90, Vec2{0.5, 0.5}, bounds)

	// The pivot (20,20) must map to itself.
	px := m[0]*20 + m[4]*20 + m[12]
	py := m[1]*20 + m[5]*20 + m[13]
	if math32.Abs(px-20) > 1e-4 || math32.Abs(py-20) > 1e-4 {
		t.Fatalf("pivot moved to %.4f,%.4f", px, py)
	}

	// A corner rotates a quarter turn around it.
	cx := m[0]*10 + m[4]*10 + m[12]
	cy := m[1]*10 + m[5]*10 + m[13]
	if math32.Abs(cx-30) > 1e-4 || math32.Abs(cy-10) > 1e-4 {
		t.Fatalf("corner mapped to %.4f,%.4f, want 30,10", cx, cy)
	}
}

func TestOrtho2DCorners(t *testing.T) {
	m := Ortho2D(800, 600)

	check := func(x, y, wantX, wantY float32) {
		t.Helper()
		ndcX := m[0]*x + m[12]
		ndcY := m[5]*y + m[13]
		if math32.Abs(ndcX-wantX) > 1e-6 || math32.Abs(ndcY-wantY) > 1e-6 {
			t.Fatalf("(%g,%g) mapped to %g,%g, want %g,%g", x, y, ndcX, ndcY, wantX, wantY)
		}
	}
	check(0, 0, -1, 1)
	check(800, 600, 1, -1)
	check(400, 300, 0, 0)
}
