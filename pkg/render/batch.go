package render

// vertexRange records where an object's geometry landed in the shared
// per-pass vertex buffer.
type vertexRange struct {
	first int
	count int
}

// sameBatch reports whether b can extend a run started by a: same
// resolved shader, texture and clip rectangle, and for two lines also the
// same mode and stroke width, since those are bound per run.
func sameBatch(a, b *Object) bool {
	if effectiveShader(a) != effectiveShader(b) {
		return false
	}
	if a.Texture != b.Texture {
		return false
	}
	if a.Clip != b.Clip {
		return false
	}
	if a.Kind == KindLine && b.Kind == KindLine {
		if a.Mode != b.Mode || a.StrokeWidth != b.StrokeWidth {
			return false
		}
	}
	return true
}

// renderList rasterizes an already-ordered object sequence into target.
// One combined vertex buffer is built and uploaded for the whole pass;
// the sequence is then walked as maximal runs, binding shader, projection
// and scissor once per run and only per-object state inside it.
func (c *Context) renderList(objects []Object, target Target) {
	d := c.driver
	d.BindTarget(target)

	// Geometry pass. Invisible objects contribute nothing; every other
	// object's vertex range is recorded so draws stay aligned even when
	// an object is later skipped for an unresolved shader.
	verts := c.verts[:0]
	if cap(c.ranges) < len(objects) {
		c.ranges = make([]vertexRange, len(objects))
	}
	ranges := c.ranges[:len(objects)]

	for i := range objects {
		o := &objects[i]
		if !o.Visible {
			ranges[i] = vertexRange{}
			continue
		}
		first := len(verts)
		switch o.Kind {
		case KindGlyph:
			verts = appendGlyphQuad(verts, o)
		case KindLine:
			verts = appendLineQuads(verts, linePolyline(o), o.StrokeWidth)
		default:
			verts = appendShapeQuad(verts, o.Bounds, o.UVRect)
		}
		ranges[i] = vertexRange{first: first, count: len(verts) - first}
	}
	c.verts = verts

	d.UploadVertices(verts)

	for i := 0; i < len(objects); {
		first := &objects[i]
		if !first.Visible {
			i++
			continue
		}

		prog := c.program(effectiveShader(first))
		if prog == 0 {
			// Unresolved shader: recoverable, the frame goes on
			// without this object.
			i++
			continue
		}

		d.UseProgram(prog)
		d.SetMat4("projection", c.projection)
		d.Scissor(first.Clip)

		// Extend the run as far as the batch key allows. Invisible
		// objects are not part of the key and do not end a run.
		end := i + 1
		for end < len(objects) {
			o := &objects[end]
			if !o.Visible {
				end++
				continue
			}
			if !sameBatch(first, o) {
				break
			}
			end++
		}

		for j := i; j < end; j++ {
			o := &objects[j]
			if !o.Visible {
				continue
			}
			c.drawObject(o, ranges[j])
		}
		i = end
	}
}

// drawObject binds everything that varies inside a run and issues the
// object's draw call over its recorded vertex range.
func (c *Context) drawObject(o *Object, r vertexRange) {
	d := c.driver

	d.SetMat4("model", rotationMatrix(o.Rotation, o.Pivot, o.Bounds))

	d.BindTexture(o.Texture)
	d.SetInt("objectTexture", 0)
	d.SetInt("useTexture", boolInt(o.Texture != 0))

	d.SetVec4("objectColor", o.Color)
	d.SetVec2("quadSize", Vec2{o.Bounds.W, o.Bounds.H})
	d.SetFloat("borderWidth", o.BorderWidth)
	d.SetVec4("borderColor", o.BorderColor)

	if o.Kind == KindLine {
		d.SetFloat("lineWidth", o.StrokeWidth)
	}

	for name, val := range o.Uniforms {
		switch val.Type {
		case UniformFloat:
			d.SetFloat(name, val.Vec[0])
		case UniformVec2:
			d.SetVec2(name, Vec2{val.Vec[0], val.Vec[1]})
		case UniformVec3:
			d.SetVec3(name, val.Vec[0], val.Vec[1], val.Vec[2])
		case UniformVec4:
			d.SetVec4(name, Vec4{val.Vec[0], val.Vec[1], val.Vec[2], val.Vec[3]})
		case UniformInt:
			d.SetInt(name, val.Int)
		}
	}

	if r.count > 0 {
		d.Draw(r.first, r.count)
	}
}
