package render

import (
	"os"

	"github.com/chewxy/math32"

	"ducker/pkg/fontatlas"
)

// Font is a loaded glyph atlas plus placement metrics, owned by the
// context and destroyed by DeleteFont or Shutdown.
type Font struct {
	Size        float32
	Texture     TextureID
	AtlasWidth  int
	AtlasHeight int
	Glyphs      map[rune]fontatlas.Glyph
	Ascent      float32
	LineHeight  float32
}

// LoadFont reads a TrueType/OpenType file, packs its atlas and uploads it.
// Returns the font identity, or zero on any failure with nothing left
// behind.
func (c *Context) LoadFont(path string, size float32) uint32 {
	if !c.ready() {
		c.warnDead("LoadFont")
		return 0
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Errorf("render: reading font %s: %v", path, err)
		return 0
	}
	atlas, err := fontatlas.Pack(data, size)
	if err != nil {
		c.log.Errorf("render: packing font %s: %v", path, err)
		return 0
	}
	tex, err := c.driver.CreateAlphaTexture(atlas.Pix, atlas.Width, atlas.Height)
	if err != nil {
		c.log.Errorf("render: uploading font atlas for %s: %v", path, err)
		return 0
	}

	id := c.nextFont
	c.nextFont++
	c.fonts[id] = &Font{
		Size:        size,
		Texture:     tex,
		AtlasWidth:  atlas.Width,
		AtlasHeight: atlas.Height,
		Glyphs:      atlas.Glyphs,
		Ascent:      atlas.Ascent,
		LineHeight:  atlas.LineHeight,
	}
	return id
}

// DeleteFont releases a font's atlas texture. Unknown identities no-op.
func (c *Context) DeleteFont(id uint32) {
	if !c.ready() {
		return
	}
	if f, ok := c.fonts[id]; ok {
		c.driver.DeleteTexture(f.Texture)
		delete(c.fonts, id)
	}
}

// DrawText adds one glyph object per covered codepoint, positioned on the
// baseline at pos. Rotation is applied around pos+origin by pre-rotating
// the glyph corners, so rotated text batches exactly like unrotated text.
// Codepoints outside the packed ranges are skipped.
func (c *Context) DrawText(fontID uint32, text string, pos Vec2, color Vec4, layer int, rotation float32, origin Vec2) {
	if !c.ready() {
		c.warnDead("DrawText")
		return
	}
	f, ok := c.fonts[fontID]
	if !ok {
		return
	}

	rad := rotation * math32.Pi / 180
	cosA := math32.Cos(rad)
	sinA := math32.Sin(rad)

	pivot := Vec2{pos.X + origin.X, pos.Y + origin.Y}
	rotate := func(x, y float32) Vec2 {
		rx, ry := x-pivot.X, y-pivot.Y
		return Vec2{rx*cosA - ry*sinA + pivot.X, rx*sinA + ry*cosA + pivot.Y}
	}

	x, y := pos.X, pos.Y
	for _, r := range text {
		if !fontatlas.Covered(r) {
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			continue
		}

		x0, y0 := x+g.XOff, y+g.YOff
		x1, y1 := x+g.XOff2, y+g.YOff2
		x += g.XAdvance

		v0 := rotate(x0, y0)
		v1 := rotate(x1, y0)
		v2 := rotate(x1, y1)
		v3 := rotate(x0, y1)

		aw := float32(f.AtlasWidth)
		ah := float32(f.AtlasHeight)

		obj := Object{
			Kind:    KindGlyph,
			Visible: true,
			Layer:   layer,
			Color:   color,
			Texture: f.Texture,
			Bounds:  Rect{v0.X, v0.Y, v1.X - v0.X, v3.Y - v0.Y},
			UVRect: Rect{
				float32(g.X0) / aw, float32(g.Y0) / ah,
				float32(g.X1) / aw, float32(g.Y1) / ah,
			},
			Pivot: Vec2{0.5, 0.5},
		}
		obj.setUniform("v0", Vec2Uniform(v0))
		obj.setUniform("v1", Vec2Uniform(v1))
		obj.setUniform("v2", Vec2Uniform(v2))
		obj.setUniform("v3", Vec2Uniform(v3))

		c.addObject(obj)
	}
}

// MeasureText returns the advance width and glyph-box height of a string
// without adding anything to the scene.
func (c *Context) MeasureText(fontID uint32, text string) Vec2 {
	if !c.ready() {
		return Vec2{}
	}
	f, ok := c.fonts[fontID]
	if !ok {
		return Vec2{}
	}

	var x, minY, maxY float32
	for _, r := range text {
		if !fontatlas.Covered(r) {
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			continue
		}
		minY = min32(minY, g.YOff)
		maxY = max32(maxY, g.YOff2)
		x += g.XAdvance
	}
	return Vec2{x, maxY - minY}
}
