package render

// Object is one drawable entry in the scene store. Its ID is unique among
// live objects and never reused while the object holding it is live; the
// object's position in the backing slice is not stable across removals.
type Object struct {
	ID      uint32
	Kind    Kind
	Visible bool

	// Layer is the z-order key. Lower layers draw first and are
	// covered by higher ones. It is not a spatial coordinate.
	Layer int

	Bounds Rect
	Color  Vec4

	Texture TextureID
	// Shader is an explicit shader handle; zero falls back to the
	// kind's built-in program.
	Shader uint32

	// Clip is stamped from the container stack when the object is
	// added and is not re-resolved when the stack changes later.
	Clip Rect
	// UVRect selects the texture sub-rectangle, for atlasing.
	UVRect Rect

	BorderWidth float32
	BorderColor Vec4

	// Uniforms carries shader-specific parameters by name, so shape
	// details never grow the fixed schema.
	Uniforms map[string]UniformValue

	// Elevation indexes the shadow preset table; zero means no shadow.
	Elevation int

	Rotation float32
	// Pivot is the rotation origin as a fraction of Bounds.
	Pivot Vec2

	// Line-only fields.
	Start       Vec2
	End         Vec2
	Controls    []Vec2
	StrokeWidth float32
	Mode        LineMode
	// TriCount is fixed when the line's endpoints, controls or width
	// are set and trusted at draw time.
	TriCount int
}

func (o *Object) setUniform(name string, v UniformValue) {
	if o.Uniforms == nil {
		o.Uniforms = make(map[string]UniformValue)
	}
	o.Uniforms[name] = v
}

func (o *Object) uniform(name string) (UniformValue, bool) {
	v, ok := o.Uniforms[name]
	return v, ok
}

// cloneUniforms deep-copies the uniform map so shadow clones can inflate
// shape parameters without touching the source object.
func (o *Object) cloneUniforms() map[string]UniformValue {
	if o.Uniforms == nil {
		return nil
	}
	out := make(map[string]UniformValue, len(o.Uniforms))
	for k, v := range o.Uniforms {
		out[k] = v
	}
	return out
}

// effectiveShader resolves the handle an object actually draws with: the
// explicit handle when set, otherwise the kind's built-in. Both the sorter
// and the batcher go through here so they can never disagree.
func effectiveShader(o *Object) uint32 {
	if o.Shader != 0 {
		return o.Shader
	}
	if o.Kind == KindLine {
		return handleLine
	}
	return uint32(o.Kind) + 1
}
