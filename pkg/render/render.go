package render

// Render draws the current object set: sort if anything changed grouping,
// then the shadow passes in increasing blur-radius order, then the main
// pass. The whole call is synchronous; it is not reentrant.
func (c *Context) Render() {
	if !c.ready() {
		c.warnDead("Render")
		return
	}
	if len(c.objects) == 0 {
		return
	}

	c.driver.BeginFrame()

	if c.needsSort {
		c.sortObjects()
	}

	if c.shadowsEnabled {
		buckets, radii := c.shadowBuckets()
		for _, radius := range radii {
			c.renderList(buckets[radius], TargetShadow)
			c.blurComposite(radius)
		}
	}

	c.renderList(c.objects, TargetScreen)

	c.driver.EndFrame()
}
