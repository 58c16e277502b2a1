package render

import "sort"

// ShadowLayer is one pass of a Material-style elevation shadow: a black
// silhouette at Opacity, shifted down by YOffset, inflated by Spread and
// blurred by BlurRadius. Spread may be negative to shrink the umbra.
type ShadowLayer struct {
	Opacity    float32
	YOffset    float32
	BlurRadius float32
	Spread     float32
}

// shadowPresetTable maps elevation levels to their layer stacks:
// umbra, penumbra and ambient, in that order.
func shadowPresetTable() map[int][]ShadowLayer {
	return map[int][]ShadowLayer{
		1: {
			{Opacity: 0.20, YOffset: 2, BlurRadius: 1, Spread: -1},
			{Opacity: 0.14, YOffset: 1, BlurRadius: 1, Spread: 0},
			{Opacity: 0.12, YOffset: 1, BlurRadius: 3, Spread: 0},
		},
		2: {
			{Opacity: 0.20, YOffset: 3, BlurRadius: 1, Spread: -2},
			{Opacity: 0.14, YOffset: 2, BlurRadius: 2, Spread: 0},
			{Opacity: 0.12, YOffset: 1, BlurRadius: 5, Spread: 0},
		},
		3: {
			{Opacity: 0.20, YOffset: 3, BlurRadius: 3, Spread: -2},
			{Opacity: 0.14, YOffset: 3, BlurRadius: 4, Spread: 0},
			{Opacity: 0.12, YOffset: 1, BlurRadius: 8, Spread: 0},
		},
		4: {
			{Opacity: 0.20, YOffset: 2, BlurRadius: 4, Spread: -1},
			{Opacity: 0.14, YOffset: 4, BlurRadius: 5, Spread: 0},
			{Opacity: 0.12, YOffset: 1, BlurRadius: 10, Spread: 0},
		},
		5: {
			{Opacity: 0.20, YOffset: 3, BlurRadius: 5, Spread: -1},
			{Opacity: 0.14, YOffset: 5, BlurRadius: 8, Spread: 0},
			{Opacity: 0.12, YOffset: 1, BlurRadius: 14, Spread: 0},
		},
	}
}

// shadowCaster reports whether an object participates in the shadow pass.
// Glyphs and lines never cast.
func shadowCaster(o *Object) bool {
	if !o.Visible || o.Elevation <= 0 {
		return false
	}
	switch o.Kind {
	case KindRect, KindRoundedRect, KindCircle:
		return true
	}
	return false
}

// shadowBuckets derives the synthetic shadow objects for every elevated
// shape and groups them by blur radius, returning the buckets plus the
// radii in increasing order. Shadow objects never enter the main draw
// sort; they only exist for the shadow passes of this frame.
func (c *Context) shadowBuckets() (map[float32][]Object, []float32) {
	buckets := make(map[float32][]Object)

	for i := range c.objects {
		o := &c.objects[i]
		if !shadowCaster(o) {
			continue
		}
		preset, ok := c.shadowPresets[o.Elevation]
		if !ok || len(preset) == 0 {
			continue
		}

		for _, layer := range preset {
			buckets[layer.BlurRadius] = append(buckets[layer.BlurRadius], c.shadowClone(o, layer))
		}
	}

	radii := make([]float32, 0, len(buckets))
	for r := range buckets {
		radii = append(radii, r)
	}
	sort.Slice(radii, func(i, j int) bool { return radii[i] < radii[j] })
	return buckets, radii
}

// shadowClone builds one shadow layer's silhouette: opaque black scaled by
// the layer opacity, offset vertically, inflated by the spread, with
// texture, border, custom shader and clipping stripped. The SDF shape
// uniforms are inflated to match the larger quad and clamped at zero so a
// negative spread can never drive a radius or size below nothing.
func (c *Context) shadowClone(o *Object, layer ShadowLayer) Object {
	shadow := *o
	shadow.Uniforms = o.cloneUniforms()
	shadow.Controls = nil

	shadow.Color = Vec4{0, 0, 0, layer.Opacity}
	shadow.Bounds.Y += layer.YOffset

	s := layer.Spread
	shadow.Bounds.X -= s
	shadow.Bounds.Y -= s
	shadow.Bounds.W += 2 * s
	shadow.Bounds.H += 2 * s

	shadow.setUniform("quadSize", Vec2Uniform(Vec2{shadow.Bounds.W, shadow.Bounds.H}))

	switch shadow.Kind {
	case KindRoundedRect:
		if v, ok := shadow.uniform("shapeSize"); ok {
			size := Vec2{max32(v.Vec[0]+2*s, 0), max32(v.Vec[1]+2*s, 0)}
			shadow.setUniform("shapeSize", Vec2Uniform(size))
		}
		if v, ok := shadow.uniform("cornerRadius"); ok {
			shadow.setUniform("cornerRadius", FloatUniform(max32(v.Vec[0]+s, 0)))
		}
	case KindCircle:
		if v, ok := shadow.uniform("shapeRadius"); ok {
			shadow.setUniform("shapeRadius", FloatUniform(max32(v.Vec[0]+s, 0)))
		}
	}

	shadow.Texture = 0
	shadow.BorderWidth = 0
	shadow.Shader = 0
	shadow.Clip = c.fullScreen()
	return shadow
}
