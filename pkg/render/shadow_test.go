package render

import "testing"

func TestShadowBucketsGroupByRadius(t *testing.T) {
	c, _ := newTestContext(t)

	id := addTestRect(c, 0)
	c.SetObjectElevation(id, 1)

	buckets, radii := c.shadowBuckets()

	// Elevation 1: two layers blur at radius 1, one at radius 3.
	if len(radii) != 2 || radii[0] != 1 || radii[1] != 3 {
		t.Fatalf("radii = %v, want [1 3]", radii)
	}
	if len(buckets[1]) != 2 || len(buckets[3]) != 1 {
		t.Fatalf("bucket sizes %d/%d, want 2/1", len(buckets[1]), len(buckets[3]))
	}
}

func TestShadowRadiiAscendAcrossElevations(t *testing.T) {
	c, _ := newTestContext(t)

	for lvl := 1; lvl <= 5; lvl++ {
		id := addTestRect(c, 0)
		c.SetObjectElevation(id, lvl)
	}

	_, radii := c.shadowBuckets()
	for i := 1; i < len(radii); i++ {
		if radii[i-1] >= radii[i] {
			t.Fatalf("radii not strictly ascending: %v", radii)
		}
	}
}

func TestNonCastersProduceNoShadow(t *testing.T) {
	c, _ := newTestContext(t)

	line := c.AddLine(Vec2{0, 0}, Vec2{10, 0}, Vec4{1, 1, 1, 1}, 2, LineStraight, nil, 0)
	c.SetObjectElevation(line, 3)

	hidden := addTestRect(c, 0)
	c.SetObjectElevation(hidden, 3)
	c.SetObjectVisible(hidden, false)

	flat := addTestRect(c, 0) // elevation zero
	_ = flat

	bogus := addTestRect(c, 0)
	c.SetObjectElevation(bogus, 42) // no preset

	if buckets, _ := c.shadowBuckets(); len(buckets) != 0 {
		t.Fatalf("got %d shadow buckets, want none", len(buckets))
	}
}

func TestShadowCloneShape(t *testing.T) {
	c, _ := newTestContext(t)

	id := c.AddRoundedRect(Rect{100, 100, 50, 40}, Vec2{50, 40}, Vec4{0.2, 0.4, 0.6, 1},
		8, 0, false, 2, 7, Rect{0, 0, 1, 1}, 3, Vec4{1, 1, 1, 1})
	o := c.Find(id)

	layer := ShadowLayer{Opacity: 0.2, YOffset: 2, BlurRadius: 1, Spread: -1}
	shadow := c.shadowClone(o, layer)

	if shadow.Color != (Vec4{0, 0, 0, 0.2}) {
		t.Fatalf("shadow color = %+v", shadow.Color)
	}
	// Offset down 2, then deflated 1 on every side by the negative
	// spread.
	if want := (Rect{101, 103, 48, 38}); shadow.Bounds != want {
		t.Fatalf("shadow bounds = %+v, want %+v", shadow.Bounds, want)
	}
	if shadow.Texture != 0 || shadow.BorderWidth != 0 || shadow.Shader != 0 {
		t.Fatalf("shadow kept surface state: tex=%d border=%g shader=%d",
			shadow.Texture, shadow.BorderWidth, shadow.Shader)
	}
	if shadow.Clip != c.fullScreen() {
		t.Fatalf("shadow clip = %+v, want full screen", shadow.Clip)
	}

	size, _ := shadow.uniform("shapeSize")
	if size.Vec[0] != 48 || size.Vec[1] != 38 {
		t.Fatalf("shadow shapeSize = %v, want 48x38", size.Vec)
	}
	radius, _ := shadow.uniform("cornerRadius")
	if radius.Vec[0] != 7 {
		t.Fatalf("shadow cornerRadius = %g, want 7", radius.Vec[0])
	}

	// The source object is untouched.
	if o.Color != (Vec4{0.2, 0.4, 0.6, 1}) || o.Bounds != (Rect{100, 100, 50, 40}) {
		t.Fatalf("clone mutated the source: %+v", o)
	}
	if v, _ := o.uniform("cornerRadius"); v.Vec[0] != 8 {
		t.Fatalf("clone mutated the source uniforms: %v", v)
	}
}

func TestShadowCloneClampsAtZero(t *testing.T) {
	c, _ := newTestContext(t)

	id := c.AddRoundedRect(Rect{0, 0, 10, 10}, Vec2{4, 4}, Vec4{1, 1, 1, 1},
		2, 0, false, 0, 0, Rect{}, 0, Vec4{})
	o := c.Find(id)

	layer := ShadowLayer{Opacity: 0.2, YOffset: 0, BlurRadius: 1, Spread: -5}
	shadow := c.shadowClone(o, layer)

	size, _ := shadow.uniform("shapeSize")
	if size.Vec[0] != 0 || size.Vec[1] != 0 {
		t.Fatalf("shapeSize = %v, want clamped to zero", size.Vec)
	}
	radius, _ := shadow.uniform("cornerRadius")
	if radius.Vec[0] != 0 {
		t.Fatalf("cornerRadius = %g, want clamped to zero", radius.Vec[0])
	}
}

func TestShadowCloneCircleRadius(t *testing.T) {
	c, _ := newTestContext(t)

	id := c.AddCircle(Rect{0, 0, 40, 40}, Vec4{1, 1, 1, 1}, 20, 0, false, 0, 0, 0, Vec4{})
	o := c.Find(id)

	shadow := c.shadowClone(o, ShadowLayer{Opacity: 0.14, YOffset: 1, BlurRadius: 1, Spread: 2})
	radius, _ := shadow.uniform("shapeRadius")
	if radius.Vec[0] != 22 {
		t.Fatalf("shapeRadius = %g, want 22", radius.Vec[0])
	}
}

func TestShadowsDisabledSkipsPasses(t *testing.T) {
	c, d := newTestContext(t)

	id := addTestRect(c, 0)
	c.SetObjectElevation(id, 3)
	c.SetShadowsEnabled(false)

	c.Render()

	for _, target := range d.targets {
		if target == TargetShadow {
			t.Fatal("shadow target bound with shadows disabled")
		}
	}
	if d.quads != 0 {
		t.Fatalf("blur ran %d quads with shadows disabled", d.quads)
	}
}

func TestShadowPassesRenderBeforeMainPass(t *testing.T) {
	c, d := newTestContext(t)

	id := addTestRect(c, 0)
	c.SetObjectElevation(id, 1)

	c.Render()

	// Two shadow buckets, each rasterized offscreen and blurred onto the
	// screen, then the main pass.
	var shadowBinds, screenBinds int
	for _, target := range d.targets {
		switch target {
		case TargetShadow:
			shadowBinds++
		case TargetScreen:
			screenBinds++
		}
	}
	if shadowBinds != 2 {
		t.Fatalf("shadow target bound %d times, want one per radius", shadowBinds)
	}
	if screenBinds < 3 {
		t.Fatalf("screen bound %d times, want 2 blur composites plus main pass", screenBinds)
	}
	if d.targets[len(d.targets)-1] != TargetScreen {
		t.Fatal("main pass is not the last target bound")
	}

	// Both radii are small enough that each blur runs two passes over
	// the full-surface quad.
	if d.quads != 4 {
		t.Fatalf("DrawQuad called %d times, want 2 per blur", d.quads)
	}
}
