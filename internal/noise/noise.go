// Package noise generates procedural grayscale textures from gradient
// noise, used for demo surfaces that need texture without asset files.
package noise

import (
	"image"
	"image/color"
	"math"
)

// hash combines the coordinates and seed to create a unique hash
func hash(x, y, seed int) int {
	h := seed + x*374761393 + y*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// gradient2D picks one of eight unit-ish gradients from a hash
func gradient2D(hash int) (float64, float64) {
	switch hash & 7 {
	case 0:
		return 1, 0
	case 1:
		return -1, 0
	case 2:
		return 0, 1
	case 3:
		return 0, -1
	case 4:
		return 1, 1
	case 5:
		return -1, 1
	case 6:
		return 1, -1
	default:
		return -1, -1
	}
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Perlin2D evaluates 2D gradient noise at x,y. The result is roughly in
// [-1, 1].
func Perlin2D(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)

	sx := smoothstep(x - x0)
	sy := smoothstep(y - y0)

	ix0, iy0 := int(x0), int(y0)
	s := int(seed)

	g00x, g00y := gradient2D(hash(ix0, iy0, s))
	g10x, g10y := gradient2D(hash(ix0+1, iy0, s))
	g01x, g01y := gradient2D(hash(ix0, iy0+1, s))
	g11x, g11y := gradient2D(hash(ix0+1, iy0+1, s))

	dp00 := g00x*(x-x0) + g00y*(y-y0)
	dp10 := g10x*(x-x0-1) + g10y*(y-y0)
	dp01 := g01x*(x-x0) + g01y*(y-y0-1)
	dp11 := g11x*(x-x0-1) + g11y*(y-y0-1)

	v0 := lerp(dp00, dp10, sx)
	v1 := lerp(dp01, dp11, sx)
	return lerp(v0, v1, sy)
}

// FBM2D layers octaves of Perlin2D with the given lacunarity and gain,
// normalized back to roughly [-1, 1].
func FBM2D(x, y float64, octaves int, lacunarity, gain float64, seed int64) float64 {
	result := 0.0
	amplitude := 1.0
	frequency := 1.0
	max := 0.0

	for i := 0; i < octaves; i++ {
		result += Perlin2D(x*frequency, y*frequency, seed+int64(i)) * amplitude
		max += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}

	return result / max
}

// Texture rasterizes fractal noise into a grayscale RGBA image. Scale is
// the feature size in pixels; bigger means smoother.
func Texture(width, height int, scale float64, octaves int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := FBM2D(float64(x)/scale, float64(y)/scale, octaves, 2.0, 0.5, seed)
			v := uint8(math.Min(math.Max((n+1)/2, 0), 1) * 255)
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}
