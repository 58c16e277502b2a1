package render

// BeginContainer opens a nested clip region. The rectangle is given in the
// parent container's coordinates; it is made absolute by adding the
// current offset, then intersected with the parent clip. Objects added
// while the container is open are stamped with the resulting clip.
//
// Containers must be balanced by the caller; there is no auto-repair.
func (c *Context) BeginContainer(bounds Rect) {
	if !c.ready() {
		c.warnDead("BeginContainer")
		return
	}

	var offset Vec2
	if n := len(c.offsetStack); n > 0 {
		offset = c.offsetStack[n-1]
	}

	clip := Rect{bounds.X + offset.X, bounds.Y + offset.Y, bounds.W, bounds.H}
	if n := len(c.clipStack); n > 0 {
		clip = clip.Intersect(c.clipStack[n-1])
	}
	clip.W = max32(clip.W, 0)
	clip.H = max32(clip.H, 0)

	c.offsetStack = append(c.offsetStack, Vec2{bounds.X + offset.X, bounds.Y + offset.Y})
	c.clipStack = append(c.clipStack, clip)
}

// EndContainer closes the innermost container. No-op when none is open.
func (c *Context) EndContainer() {
	if !c.ready() || len(c.offsetStack) == 0 {
		return
	}
	c.offsetStack = c.offsetStack[:len(c.offsetStack)-1]
	c.clipStack = c.clipStack[:len(c.clipStack)-1]
}
