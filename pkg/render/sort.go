package render

import "sort"

// sortObjects establishes the total draw order: layer first so visual
// stacking always wins, then shader, texture and clip so objects that can
// share a draw call end up adjacent. Line mode and stroke width refine the
// order between two lines because those are per-run state too.
//
// Runs only when the store is dirty; afterwards the identity lookup is
// rebuilt from scratch.
func (c *Context) sortObjects() {
	sort.Slice(c.objects, func(i, j int) bool {
		return drawOrderLess(&c.objects[i], &c.objects[j])
	})
	for i := range c.objects {
		c.idToIndex[c.objects[i].ID] = i
	}
	c.needsSort = false
}

func drawOrderLess(a, b *Object) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}

	sa, sb := effectiveShader(a), effectiveShader(b)
	if sa != sb {
		return sa < sb
	}

	if a.Texture != b.Texture {
		return a.Texture < b.Texture
	}

	if a.Kind == KindLine && b.Kind == KindLine {
		if a.Mode != b.Mode {
			return a.Mode < b.Mode
		}
		if a.StrokeWidth != b.StrokeWidth {
			return a.StrokeWidth < b.StrokeWidth
		}
	}

	// Arbitrary but stable tie-break so equal-key objects with
	// different clips still group into runs.
	return clipLess(a.Clip, b.Clip)
}

func clipLess(a, b Rect) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.W != b.W {
		return a.W < b.W
	}
	return a.H < b.H
}
