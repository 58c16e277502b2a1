// Package gldriver implements the render.Driver boundary on OpenGL 4.1
// core via go-gl. A current GL context is required on the calling thread
// before Init, and every method must be called from that same thread.
package gldriver

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"ducker/pkg/render"
)

const vertexStride = 6 * 4 // Pos, TexUV, GeomUV, float32 each

// framebuffer is one offscreen color target.
type framebuffer struct {
	fbo     uint32
	texture uint32
}

// Driver is the OpenGL implementation of render.Driver.
type Driver struct {
	width  int
	height int

	vao uint32
	vbo uint32

	quadVAO uint32
	quadVBO uint32

	shadow       framebuffer
	intermediate framebuffer

	// Program bound by the latest UseProgram, for uniform lookups.
	currentProgram uint32

	clear [4]float32

	// Scratch buffer reused by UploadVertices to flatten vertices.
	flat []float32
}

// New returns an uninitialized driver. Call Init with a current GL
// context before anything else.
func New() *Driver {
	return &Driver{clear: [4]float32{0, 0, 0, 1}}
}

// SetClearColor sets the screen background used by BeginFrame.
func (d *Driver) SetClearColor(r, g, b, a float32) {
	d.clear = [4]float32{r, g, b, a}
}

// Init loads the GL function pointers, sets the fixed pipeline state and
// creates the vertex buffers and offscreen targets.
func (d *Driver) Init(width, height int) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}

	d.width = width
	d.height = height

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	// Streaming vertex buffer for scene geometry.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(4*4))
	gl.EnableVertexAttribArray(2)

	// Static full-surface quad for the blur and composite passes.
	quad := []float32{
		// Position  // Texture coordinates
		-1.0, -1.0, 0.0, 0.0,
		1.0, -1.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 1.0,

		-1.0, 1.0, 0.0, 1.0,
		1.0, -1.0, 1.0, 0.0,
		1.0, 1.0, 1.0, 1.0,
	}
	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	if err := d.setupFramebuffer(&d.shadow); err != nil {
		return fmt.Errorf("shadow framebuffer: %w", err)
	}
	if err := d.setupFramebuffer(&d.intermediate); err != nil {
		return fmt.Errorf("intermediate framebuffer: %w", err)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// setupFramebuffer creates one offscreen color target at the surface size.
func (d *Driver) setupFramebuffer(fb *framebuffer) error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.texture)
	gl.BindTexture(gl.TEXTURE_2D, fb.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(d.width), int32(d.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.texture, 0)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer not complete")
	}
	return nil
}

// Shutdown releases every GL object the driver created.
func (d *Driver) Shutdown() {
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteBuffers(1, &d.quadVBO)
	gl.DeleteVertexArrays(1, &d.quadVAO)

	for _, fb := range []*framebuffer{&d.shadow, &d.intermediate} {
		gl.DeleteTextures(1, &fb.texture)
		gl.DeleteFramebuffers(1, &fb.fbo)
	}
}

// Resize reallocates the offscreen targets for a new surface size.
func (d *Driver) Resize(width, height int) {
	if d.width == width && d.height == height {
		return
	}
	d.width = width
	d.height = height

	for _, fb := range []*framebuffer{&d.shadow, &d.intermediate} {
		gl.BindTexture(gl.TEXTURE_2D, fb.texture)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.Viewport(0, 0, int32(width), int32(height))
}

// CompileProgram compiles and links a vertex/fragment pair.
func (d *Driver) CompileProgram(vertexSrc, fragmentSrc string) (render.ProgramID, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return render.ProgramID(program), nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}

func (d *Driver) DeleteProgram(p render.ProgramID) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

// CreateTexture uploads a decoded image as an RGBA texture.
func (d *Driver) CreateTexture(img image.Image) (render.TextureID, error) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	b := rgba.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(b.Dx()),
		int32(b.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	return render.TextureID(tex), nil
}

// CreateAlphaTexture uploads a single-channel bitmap as a RED texture.
// The glyph shader reads coverage from the red channel.
func (d *Driver) CreateAlphaTexture(pix []byte, width, height int) (render.TextureID, error) {
	if len(pix) < width*height {
		return 0, fmt.Errorf("alpha texture %dx%d: have %d bytes", width, height, len(pix))
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RED,
		int32(width),
		int32(height),
		0,
		gl.RED,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pix),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	return render.TextureID(tex), nil
}

func (d *Driver) DeleteTexture(t render.TextureID) {
	if t != 0 {
		tex := uint32(t)
		gl.DeleteTextures(1, &tex)
	}
}

// BeginFrame sets per-frame state and clears the screen.
func (d *Driver) BeginFrame() {
	gl.Viewport(0, 0, int32(d.width), int32(d.height))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(0, 0, int32(d.width), int32(d.height))

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ClearColor(d.clear[0], d.clear[1], d.clear[2], d.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EndFrame resets scissor state. Buffer swap belongs to the windowing
// layer.
func (d *Driver) EndFrame() {
	gl.Disable(gl.SCISSOR_TEST)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	d.currentProgram = 0
}

// BindTarget directs draws to a surface, clearing offscreen targets to
// transparent black on bind.
func (d *Driver) BindTarget(t render.Target) {
	switch t {
	case render.TargetShadow:
		gl.BindFramebuffer(gl.FRAMEBUFFER, d.shadow.fbo)
	case render.TargetIntermediate:
		gl.BindFramebuffer(gl.FRAMEBUFFER, d.intermediate.fbo)
	default:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(0.0, 0.0, 0.0, 0.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.SCISSOR_TEST)
}

func (d *Driver) TargetTexture(t render.Target) render.TextureID {
	switch t {
	case render.TargetShadow:
		return render.TextureID(d.shadow.texture)
	case render.TargetIntermediate:
		return render.TextureID(d.intermediate.texture)
	}
	return 0
}

// UploadVertices streams the frame's geometry into the scene buffer.
func (d *Driver) UploadVertices(verts []render.Vertex) {
	d.flat = d.flat[:0]
	for _, v := range verts {
		d.flat = append(d.flat,
			v.Pos.X, v.Pos.Y,
			v.TexUV.X, v.TexUV.Y,
			v.GeomUV.X, v.GeomUV.Y,
		)
	}

	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	if len(d.flat) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(d.flat)*4, gl.Ptr(d.flat), gl.STREAM_DRAW)
	}
}

func (d *Driver) UseProgram(p render.ProgramID) {
	d.currentProgram = uint32(p)
	gl.UseProgram(d.currentProgram)
}

func (d *Driver) BindTexture(t render.TextureID) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

// Scissor clips draws to r, converting from top-left to GL's bottom-left
// origin.
func (d *Driver) Scissor(r render.Rect) {
	x := int32(r.X)
	w := int32(r.W)
	h := int32(r.H)
	y := int32(d.height) - int32(r.Y) - h
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	gl.Scissor(x, y, w, h)
}

func (d *Driver) location(name string) int32 {
	return gl.GetUniformLocation(d.currentProgram, gl.Str(name+"\x00"))
}

func (d *Driver) SetMat4(name string, m render.Mat4) {
	if loc := d.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (d *Driver) SetFloat(name string, v float32) {
	if loc := d.location(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func (d *Driver) SetFloats(name string, v []float32) {
	if loc := d.location(name); loc >= 0 && len(v) > 0 {
		gl.Uniform1fv(loc, int32(len(v)), &v[0])
	}
}

func (d *Driver) SetVec2(name string, v render.Vec2) {
	if loc := d.location(name); loc >= 0 {
		gl.Uniform2f(loc, v.X, v.Y)
	}
}

func (d *Driver) SetVec3(name string, x, y, z float32) {
	if loc := d.location(name); loc >= 0 {
		gl.Uniform3f(loc, x, y, z)
	}
}

func (d *Driver) SetVec4(name string, v render.Vec4) {
	if loc := d.location(name); loc >= 0 {
		gl.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	}
}

func (d *Driver) SetInt(name string, v int32) {
	if loc := d.location(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// Draw issues count vertices from the scene buffer as triangles.
func (d *Driver) Draw(first, count int) {
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

// DrawQuad draws the full-surface quad used by blur and composite passes.
func (d *Driver) DrawQuad() {
	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(d.vao)
}
