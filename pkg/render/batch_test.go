package render

import "testing"

func TestRunSharesProgramAndScissor(t *testing.T) {
	c, d := newTestContext(t)

	const n = 8
	for i := 0; i < n; i++ {
		addTestRect(c, 0)
	}

	c.Render()

	if len(d.programs) != 1 {
		t.Fatalf("UseProgram called %d times, want 1 for one run", len(d.programs))
	}
	if len(d.scissors) != 1 {
		t.Fatalf("Scissor called %d times, want 1 for one run", len(d.scissors))
	}
	if len(d.draws) != n {
		t.Fatalf("Draw called %d times, want one per object", len(d.draws))
	}
	for i, dc := range d.draws {
		if dc.first != i*6 || dc.count != 6 {
			t.Fatalf("draw %d = %+v, want {%d 6}", i, dc, i*6)
		}
	}
}

func TestDifferentTexturesSplitRuns(t *testing.T) {
	c, d := newTestContext(t)

	c.AddRect(Rect{0, 0, 10, 10}, Vec4{1, 1, 1, 1}, 0, 1, Rect{0, 0, 1, 1}, 0, Vec4{})
	c.AddRect(Rect{0, 0, 10, 10}, Vec4{1, 1, 1, 1}, 0, 2, Rect{0, 0, 1, 1}, 0, Vec4{})
	c.AddRect(Rect{0, 0, 10, 10}, Vec4{1, 1, 1, 1}, 0, 2, Rect{0, 0, 1, 1}, 0, Vec4{})

	c.Render()

	if len(d.programs) != 2 {
		t.Fatalf("UseProgram called %d times, want 2 runs", len(d.programs))
	}
}

func TestDifferentClipsSplitRuns(t *testing.T) {
	c, d := newTestContext(t)

	c.BeginContainer(Rect{0, 0, 100, 100})
	addTestRect(c, 0)
	c.EndContainer()
	c.BeginContainer(Rect{200, 0, 100, 100})
	addTestRect(c, 0)
	c.EndContainer()

	c.Render()

	if len(d.scissors) != 2 {
		t.Fatalf("Scissor called %d times, want one per clip", len(d.scissors))
	}
}

func TestInvisibleObjectDoesNotBreakRun(t *testing.T) {
	c, d := newTestContext(t)

	addTestRect(c, 0)
	hidden := addTestRect(c, 0)
	addTestRect(c, 0)
	c.SetObjectVisible(hidden, false)

	c.Render()

	if len(d.programs) != 1 {
		t.Fatalf("hidden object split the run: %d programs", len(d.programs))
	}
	if len(d.draws) != 2 {
		t.Fatalf("Draw called %d times, want 2 visible objects", len(d.draws))
	}
	// The hidden object contributes no geometry; the survivors pack
	// tightly.
	if d.draws[0].first != 0 || d.draws[1].first != 6 {
		t.Fatalf("draw offsets %+v desynced", d.draws)
	}
}

func TestUnresolvedShaderSkipsObjectOnly(t *testing.T) {
	c, d := newTestContext(t)

	broken := addTestRect(c, 0)
	addTestRect(c, 1)
	addTestRect(c, 1)
	// A handle nothing ever compiled. The low layer keeps the broken
	// object first in draw order, ahead of the survivors.
	c.Find(broken).Shader = customShaderBase + 77
	c.needsSort = true

	c.Render()

	if len(d.draws) != 2 {
		t.Fatalf("Draw called %d times, want the 2 resolvable objects", len(d.draws))
	}
	// The skipped object still owns its slice of the vertex buffer, so
	// the survivors draw from their recorded offsets.
	firsts := map[int]bool{}
	for _, dc := range d.draws {
		firsts[dc.first] = true
	}
	if !firsts[6] || !firsts[12] {
		t.Fatalf("draw offsets %+v ignore the skipped object's range", d.draws)
	}
}

func TestLineWidthSplitsLineRuns(t *testing.T) {
	c, d := newTestContext(t)

	c.AddLine(Vec2{0, 0}, Vec2{10, 0}, Vec4{1, 1, 1, 1}, 2, LineStraight, nil, 0)
	c.AddLine(Vec2{0, 20}, Vec2{10, 20}, Vec4{1, 1, 1, 1}, 2, LineStraight, nil, 0)
	c.AddLine(Vec2{0, 40}, Vec2{10, 40}, Vec4{1, 1, 1, 1}, 5, LineStraight, nil, 0)

	c.Render()

	if len(d.programs) != 2 {
		t.Fatalf("UseProgram called %d times, want 2 width runs", len(d.programs))
	}
	if got := d.floatSets["lineWidth"]; len(got) != 3 {
		t.Fatalf("lineWidth bound %d times, want per object", len(got))
	}
}

func TestUploadHappensOncePerPass(t *testing.T) {
	c, d := newTestContext(t)

	for i := 0; i < 5; i++ {
		addTestRect(c, i)
	}

	c.Render()

	if len(d.uploaded) != 1 {
		t.Fatalf("UploadVertices called %d times, want 1 for the main pass", len(d.uploaded))
	}
	if len(d.uploaded[0]) != 5*6 {
		t.Fatalf("uploaded %d vertices, want 30", len(d.uploaded[0]))
	}
}
