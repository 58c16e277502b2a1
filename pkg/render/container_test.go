package render

import "testing"

func stampedClip(t *testing.T, c *Context, id uint32) Rect {
	t.Helper()
	o := c.Find(id)
	if o == nil {
		t.Fatalf("object %d not found", id)
	}
	return o.Clip
}

func TestObjectsOutsideContainersGetFullScreenClip(t *testing.T) {
	c, _ := newTestContext(t)

	id := addTestRect(c, 0)
	if got := stampedClip(t, c, id); got != (Rect{0, 0, 800, 600}) {
		t.Fatalf("clip = %+v, want full screen", got)
	}
}

func TestNestedContainerClips(t *testing.T) {
	tests := []struct {
		name  string
		outer Rect
		inner Rect
		want  Rect
	}{
		{
			name:  "inner overlaps outer corner",
			outer: Rect{0, 0, 100, 100},
			inner: Rect{50, 50, 100, 100},
			want:  Rect{50, 50, 50, 50},
		},
		{
			name:  "inner fully inside",
			outer: Rect{10, 10, 200, 200},
			inner: Rect{20, 20, 50, 50},
			want:  Rect{30, 30, 50, 50},
		},
		{
			name:  "inner fully outside",
			outer: Rect{0, 0, 100, 100},
			inner: Rect{150, 150, 50, 50},
			want:  Rect{150, 150, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t)

			c.BeginContainer(tt.outer)
			c.BeginContainer(tt.inner)
			id := addTestRect(c, 0)
			c.EndContainer()
			c.EndContainer()

			if got := stampedClip(t, c, id); got != tt.want {
				t.Fatalf("clip = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContainerOffsetsCompose(t *testing.T) {
	c, _ := newTestContext(t)

	c.BeginContainer(Rect{100, 100, 400, 400})
	c.BeginContainer(Rect{50, 50, 100, 100})
	id := addTestRect(c, 0)
	c.EndContainer()
	c.EndContainer()

	// The inner rectangle is expressed in the outer container's
	// coordinates, so its absolute clip starts at 150,150.
	if got := stampedClip(t, c, id); got != (Rect{150, 150, 100, 100}) {
		t.Fatalf("clip = %+v, want {150 150 100 100}", got)
	}
}

func TestClipStampIsPermanent(t *testing.T) {
	c, _ := newTestContext(t)

	c.BeginContainer(Rect{0, 0, 50, 50})
	id := addTestRect(c, 0)
	c.EndContainer()

	// Closing the container does not touch already-stamped objects.
	if got := stampedClip(t, c, id); got != (Rect{0, 0, 50, 50}) {
		t.Fatalf("clip = %+v, want {0 0 50 50}", got)
	}
}

func TestEndContainerWithoutBegin(t *testing.T) {
	c, _ := newTestContext(t)

	c.EndContainer() // must not panic or underflow

	c.BeginContainer(Rect{0, 0, 10, 10})
	c.EndContainer()
	c.EndContainer()

	id := addTestRect(c, 0)
	if got := stampedClip(t, c, id); got != (Rect{0, 0, 800, 600}) {
		t.Fatalf("clip = %+v, want full screen after unwinding", got)
	}
}
