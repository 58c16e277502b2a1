// Package fontatlas rasterizes a TrueType/OpenType font into a
// single-channel glyph atlas with per-codepoint placement metrics. It
// covers Basic Latin plus the Cyrillic block; codepoints the font does not
// provide are simply absent from the result.
package fontatlas

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph places one codepoint: its pixel rectangle inside the atlas and
// its offsets and advance relative to the text pen, which sits on the
// baseline.
type Glyph struct {
	X0, Y0, X1, Y1 int

	XOff, YOff   float32
	XOff2, YOff2 float32
	XAdvance     float32
}

// Atlas is a packed coverage bitmap, one byte per pixel.
type Atlas struct {
	Size   float32
	Width  int
	Height int
	Pix    []uint8
	Glyphs map[rune]Glyph

	Ascent     float32
	LineHeight float32
}

// Covered reports whether a codepoint belongs to the packed ranges:
// Basic Latin (32..126) or Cyrillic (U+0400..U+04FF).
func Covered(r rune) bool {
	return (r >= 32 && r < 127) || (r >= 0x0400 && r <= 0x04FF)
}

// Pack parses font bytes and rasterizes the covered ranges at the given
// pixel size. The atlas starts small and doubles until everything fits.
func Pack(ttf []byte, size float32) (*Atlas, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	defer face.Close()

	for dim := 256; dim <= 4096; dim *= 2 {
		if atlas, ok := packInto(face, size, dim); ok {
			return atlas, nil
		}
	}
	return nil, fmt.Errorf("glyphs at size %g do not fit a 4096x4096 atlas", size)
}

// packInto lays the glyphs out shelf by shelf into a dim x dim bitmap.
// Returns ok=false when the font does not fit at this size.
func packInto(face font.Face, size float32, dim int) (*Atlas, bool) {
	const pad = 1

	metrics := face.Metrics()
	atlas := &Atlas{
		Size:       size,
		Width:      dim,
		Height:     dim,
		Pix:        make([]uint8, dim*dim),
		Glyphs:     make(map[rune]Glyph),
		Ascent:     fixedToFloat(metrics.Ascent),
		LineHeight: fixedToFloat(metrics.Height),
	}

	penX, penY, rowH := pad, pad, 0
	origin := fixed.P(0, 0)

	for _, r := range coveredRunes() {
		dr, mask, maskp, advance, ok := face.Glyph(origin, r)
		if !ok {
			continue
		}
		w, h := dr.Dx(), dr.Dy()

		if penX+w+pad > dim {
			penX = pad
			penY += rowH + pad
			rowH = 0
		}
		if penY+h+pad > dim {
			return nil, false
		}

		// The face reuses its mask buffer between Glyph calls, so
		// the pixels are copied out immediately.
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				a := color.AlphaModel.Convert(mask.At(maskp.X+x, maskp.Y+y)).(color.Alpha).A
				atlas.Pix[(penY+y)*dim+penX+x] = a
			}
		}

		atlas.Glyphs[r] = Glyph{
			X0:       penX,
			Y0:       penY,
			X1:       penX + w,
			Y1:       penY + h,
			XOff:     float32(dr.Min.X),
			YOff:     float32(dr.Min.Y),
			XOff2:    float32(dr.Max.X),
			YOff2:    float32(dr.Max.Y),
			XAdvance: fixedToFloat(advance),
		}

		penX += w + pad
		if h > rowH {
			rowH = h
		}
	}

	return atlas, true
}

func coveredRunes() []rune {
	runes := make([]rune, 0, 95+256)
	for r := rune(32); r < 127; r++ {
		runes = append(runes, r)
	}
	for r := rune(0x0400); r <= 0x04FF; r++ {
		runes = append(runes, r)
	}
	return runes
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
