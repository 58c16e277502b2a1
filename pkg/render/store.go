package render

// addObject stamps identity and clip on a new object and appends it to the
// store. Returns the identity, or zero when the context is not ready.
func (c *Context) addObject(obj Object) uint32 {
	if !c.ready() {
		c.warnDead("add")
		return 0
	}

	if n := len(c.clipStack); n > 0 {
		obj.Clip = c.clipStack[n-1]
	} else {
		obj.Clip = c.fullScreen()
	}

	obj.ID = c.nextObject
	c.nextObject++

	c.idToIndex[obj.ID] = len(c.objects)
	c.objects = append(c.objects, obj)
	c.needsSort = true
	return obj.ID
}

// AddRect adds a plain rectangle. textureID may be zero for a solid fill.
func (c *Context) AddRect(bounds Rect, color Vec4, layer int, texture TextureID, uvRect Rect, borderWidth float32, borderColor Vec4) uint32 {
	obj := Object{
		Kind:        KindRect,
		Visible:     true,
		Layer:       layer,
		Bounds:      bounds,
		Color:       color,
		Texture:     texture,
		UVRect:      uvRect,
		BorderWidth: borderWidth,
		BorderColor: borderColor,
		Pivot:       Vec2{0.5, 0.5},
	}
	obj.setUniform("borderWidth", FloatUniform(borderWidth))
	obj.setUniform("borderColor", Vec4Uniform(borderColor))
	return c.addObject(obj)
}

// AddRoundedRect adds a rectangle whose rounding, blur and inset effects
// are evaluated by the SDF fragment shader; the geometry stays two
// triangles. shapeSize is the un-rounded rectangle inside the quad.
func (c *Context) AddRoundedRect(bounds Rect, shapeSize Vec2, color Vec4, cornerRadius, blur float32, inset bool, layer int, texture TextureID, uvRect Rect, borderWidth float32, borderColor Vec4) uint32 {
	obj := Object{
		Kind:        KindRoundedRect,
		Visible:     true,
		Layer:       layer,
		Bounds:      bounds,
		Color:       color,
		Texture:     texture,
		UVRect:      uvRect,
		BorderWidth: borderWidth,
		BorderColor: borderColor,
		Pivot:       Vec2{0.5, 0.5},
	}
	obj.setUniform("quadSize", Vec2Uniform(Vec2{bounds.W, bounds.H}))
	obj.setUniform("shapeSize", Vec2Uniform(shapeSize))
	obj.setUniform("cornerRadius", FloatUniform(cornerRadius))
	obj.setUniform("blur", FloatUniform(blur))
	obj.setUniform("inset", IntUniform(boolInt(inset)))
	obj.setUniform("borderWidth", FloatUniform(borderWidth))
	obj.setUniform("borderColor", Vec4Uniform(borderColor))
	return c.addObject(obj)
}

// AddCircle adds a circle, also shader-masked rather than tessellated.
func (c *Context) AddCircle(bounds Rect, color Vec4, radius, blur float32, inset bool, layer int, texture TextureID, borderWidth float32, borderColor Vec4) uint32 {
	obj := Object{
		Kind:        KindCircle,
		Visible:     true,
		Layer:       layer,
		Bounds:      bounds,
		Color:       color,
		Texture:     texture,
		BorderWidth: borderWidth,
		BorderColor: borderColor,
		Pivot:       Vec2{0.5, 0.5},
	}
	obj.setUniform("shapeRadius", FloatUniform(radius))
	obj.setUniform("blur", FloatUniform(blur))
	obj.setUniform("inset", IntUniform(boolInt(inset)))
	obj.setUniform("borderWidth", FloatUniform(borderWidth))
	obj.setUniform("borderColor", Vec4Uniform(borderColor))
	return c.addObject(obj)
}

// AddLine adds a stroked poly-line from start to end through the given
// control points. Bounds and triangle count are fixed here, from the same
// tessellation the draw pass will use.
func (c *Context) AddLine(start, end Vec2, color Vec4, width float32, mode LineMode, controls []Vec2, layer int) uint32 {
	if !c.ready() {
		c.warnDead("AddLine")
		return 0
	}
	obj := Object{
		Kind:        KindLine,
		Visible:     true,
		Layer:       layer,
		Color:       color,
		Start:       start,
		End:         end,
		StrokeWidth: width,
		Mode:        mode,
		Controls:    append([]Vec2(nil), controls...),
		Pivot:       Vec2{0.5, 0.5},
	}
	obj.Bounds, obj.TriCount = lineBounds(&obj)
	return c.addObject(obj)
}

// Remove deletes an object by identity. The freed slot is filled by
// swapping in the last live object, so removal is O(1) and not
// order-preserving; the identity lookup is fixed up for the moved object.
func (c *Context) Remove(id uint32) {
	if !c.ready() {
		return
	}
	idx, ok := c.idToIndex[id]
	if !ok {
		return
	}
	last := len(c.objects) - 1
	if idx != last {
		c.objects[idx] = c.objects[last]
		c.idToIndex[c.objects[idx].ID] = idx
	}
	c.objects = c.objects[:last]
	delete(c.idToIndex, id)
}

// Find returns a mutable reference to a live object, or nil. The pointer
// is only valid until the next add, remove or render call.
func (c *Context) Find(id uint32) *Object {
	if !c.ready() {
		return nil
	}
	idx, ok := c.idToIndex[id]
	if !ok {
		return nil
	}
	return &c.objects[idx]
}

// SetObjectCornerRadius updates a rounded rectangle's corner radius.
// No-op for other kinds and unknown identities.
func (c *Context) SetObjectCornerRadius(id uint32, radius float32) {
	obj := c.Find(id)
	if obj == nil || obj.Kind != KindRoundedRect {
		return
	}
	obj.setUniform("cornerRadius", FloatUniform(radius))
}

// SetObjectRotation sets the rotation angle in degrees.
func (c *Context) SetObjectRotation(id uint32, rotation float32) {
	if obj := c.Find(id); obj != nil {
		obj.Rotation = rotation
	}
}

// SetObjectRotationOrigin sets the rotation pivot as a fraction of bounds.
func (c *Context) SetObjectRotationOrigin(id uint32, origin Vec2) {
	if obj := c.Find(id); obj != nil {
		obj.Pivot = origin
	}
}

// SetObjectRotationAndOrigin sets angle and pivot together.
func (c *Context) SetObjectRotationAndOrigin(id uint32, rotation float32, origin Vec2) {
	if obj := c.Find(id); obj != nil {
		obj.Rotation = rotation
		obj.Pivot = origin
	}
}

// SetObjectElevation sets the shadow level. Elevation participates in
// draw-order grouping, so the store is marked for re-sort.
func (c *Context) SetObjectElevation(id uint32, elevation int) {
	if obj := c.Find(id); obj != nil {
		obj.Elevation = elevation
		c.needsSort = true
	}
}

// SetObjectShader binds a custom shader handle; zero restores the kind's
// default. A change forces a re-sort since batching groups by shader.
func (c *Context) SetObjectShader(id uint32, shader uint32) {
	obj := c.Find(id)
	if obj == nil || obj.Shader == shader {
		return
	}
	obj.Shader = shader
	c.needsSort = true
}

// SetObjectColor updates the fill color. Color does not affect grouping,
// so no re-sort happens.
func (c *Context) SetObjectColor(id uint32, color Vec4) {
	if obj := c.Find(id); obj != nil {
		obj.Color = color
	}
}

// SetObjectVisible toggles an object without removing it.
func (c *Context) SetObjectVisible(id uint32, visible bool) {
	if obj := c.Find(id); obj != nil {
		obj.Visible = visible
	}
}

// SetObjectBorder sets border width and color, mirrored into the uniform
// map the shaders read.
func (c *Context) SetObjectBorder(id uint32, width float32, color Vec4) {
	obj := c.Find(id)
	if obj == nil {
		return
	}
	obj.BorderWidth = width
	obj.BorderColor = color
	obj.setUniform("borderWidth", FloatUniform(width))
	obj.setUniform("borderColor", Vec4Uniform(color))
}

// SetObjectUniform writes a typed shader parameter by name.
func (c *Context) SetObjectUniform(id uint32, name string, value UniformValue) {
	if obj := c.Find(id); obj != nil {
		obj.setUniform(name, value)
	}
}

// SetObjectUniformBytes writes a raw little-endian payload after checking
// its length against the declared type tag. A mismatch is a recoverable
// error, never undefined behavior.
func (c *Context) SetObjectUniformBytes(id uint32, name string, tag UniformType, raw []byte) error {
	obj := c.Find(id)
	if obj == nil {
		return nil
	}
	val, err := uniformFromBytes(tag, raw)
	if err != nil {
		return err
	}
	obj.setUniform(name, val)
	return nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
