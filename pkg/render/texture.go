package render

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LoadTexture decodes an image file and uploads it to the driver. Returns
// the texture identity plus pixel dimensions, or zero on failure.
func (c *Context) LoadTexture(path string) (TextureID, int, int) {
	if !c.ready() {
		c.warnDead("LoadTexture")
		return 0, 0, 0
	}

	f, err := os.Open(path)
	if err != nil {
		c.log.Errorf("render: opening texture %s: %v", path, err)
		return 0, 0, 0
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		c.log.Errorf("render: decoding texture %s: %v", path, err)
		return 0, 0, 0
	}

	tex, err := c.driver.CreateTexture(img)
	if err != nil {
		c.log.Errorf("render: uploading texture %s: %v", path, err)
		return 0, 0, 0
	}
	b := img.Bounds()
	return tex, b.Dx(), b.Dy()
}

// CreateTexture uploads an already-decoded image, for textures generated
// at runtime.
func (c *Context) CreateTexture(img image.Image) (TextureID, int, int) {
	if !c.ready() {
		c.warnDead("CreateTexture")
		return 0, 0, 0
	}
	tex, err := c.driver.CreateTexture(img)
	if err != nil {
		c.log.Errorf("render: uploading texture: %v", err)
		return 0, 0, 0
	}
	b := img.Bounds()
	return tex, b.Dx(), b.Dy()
}

// DeleteTexture releases a texture created with LoadTexture.
func (c *Context) DeleteTexture(tex TextureID) {
	if !c.ready() || tex == 0 {
		return
	}
	c.driver.DeleteTexture(tex)
}
