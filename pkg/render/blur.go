package render

import "github.com/chewxy/math32"

// maxHalfKernel bounds the separable blur to at most 16 taps per axis,
// matching the weight array in the blur shaders.
const maxHalfKernel = 15

// gaussianKernel derives the normalized 1D weight table for a blur radius.
// Sigma is radius/3 and the half-kernel spans 3 sigma, which keeps the
// truncation error below the visible threshold. The center weight counts
// once and every other tap twice during normalization, since the shader
// samples both sides symmetrically.
func gaussianKernel(radius float32) ([]float32, int) {
	sigma := radius / 3
	half := int(math32.Round(3 * sigma))
	if half < 1 {
		half = 1
	}
	if half > maxHalfKernel {
		half = maxHalfKernel
	}

	weights := make([]float32, half+1)
	var sum float32
	for i := 0; i <= half; i++ {
		x := float32(i)
		weights[i] = math32.Exp(-x*x/(2*sigma*sigma)) / (math32.Sqrt(2*math32.Pi) * sigma)
		if i == 0 {
			sum += weights[i]
		} else {
			sum += 2 * weights[i]
		}
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights, half
}

// blurComposite blurs the shadow target with a two-pass separable
// Gaussian and blends the result onto the screen. A non-positive radius
// skips the blur entirely and composites the shadow target straight
// through a textured quad.
func (c *Context) blurComposite(radius float32) {
	d := c.driver

	if radius <= 0 {
		if c.composite == 0 {
			return
		}
		d.BindTarget(TargetScreen)
		d.UseProgram(c.composite)
		d.BindTexture(d.TargetTexture(TargetShadow))
		d.SetInt("tex", 0)
		d.DrawQuad()
		return
	}

	if c.blurHorizontal == 0 || c.blurVertical == 0 {
		return
	}

	weights, half := gaussianKernel(radius)

	// Horizontal pass into the intermediate target.
	d.BindTarget(TargetIntermediate)
	d.UseProgram(c.blurHorizontal)
	d.BindTexture(d.TargetTexture(TargetShadow))
	d.SetInt("tex", 0)
	d.SetFloats("weights", weights)
	d.SetInt("halfKernel", int32(half))
	d.SetFloat("pixelSize", 1/float32(c.width))
	d.DrawQuad()

	// Vertical pass, blended onto the screen.
	d.BindTarget(TargetScreen)
	d.UseProgram(c.blurVertical)
	d.BindTexture(d.TargetTexture(TargetIntermediate))
	d.SetInt("tex", 0)
	d.SetFloats("weights", weights)
	d.SetInt("halfKernel", int32(half))
	d.SetFloat("pixelSize", 1/float32(c.height))
	d.DrawQuad()
}
