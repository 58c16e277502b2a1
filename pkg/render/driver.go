package render

import "image"

// ProgramID identifies a compiled and linked shader program inside the
// driver. Zero means "no program".
type ProgramID uint32

// TextureID identifies a GPU texture inside the driver. Zero means
// "no texture bound".
type TextureID uint32

// Target selects the surface a draw writes to.
type Target int

const (
	// TargetScreen is the default framebuffer.
	TargetScreen Target = iota
	// TargetShadow is the offscreen surface shadow geometry is
	// rasterized into before blurring.
	TargetShadow
	// TargetIntermediate holds the horizontally blurred image between
	// the two blur passes.
	TargetIntermediate
)

// Vertex is the interleaved layout shared by every object. GeomUV is the
// normalized shape coordinate the SDF fragment shaders evaluate, distinct
// from the texture coordinate.
type Vertex struct {
	Pos    Vec2
	TexUV  Vec2
	GeomUV Vec2
}

// Driver is the boundary to the graphics API. The core generates geometry,
// picks programs and uniform values; everything touching the GPU crosses
// this interface. Implementations are not required to be safe for
// concurrent use; the renderer is single threaded.
//
// Uniform setters apply to the program bound by the latest UseProgram call
// and silently ignore names the program does not declare.
type Driver interface {
	Init(width, height int) error
	Shutdown()
	// Resize adjusts the offscreen targets to a new surface size.
	Resize(width, height int)

	CompileProgram(vertexSrc, fragmentSrc string) (ProgramID, error)
	DeleteProgram(p ProgramID)

	// CreateTexture uploads a decoded image as an RGBA texture.
	CreateTexture(img image.Image) (TextureID, error)
	// CreateAlphaTexture uploads a single-channel bitmap, used for
	// glyph atlases.
	CreateAlphaTexture(pix []byte, width, height int) (TextureID, error)
	DeleteTexture(t TextureID)

	BeginFrame()
	EndFrame()

	// BindTarget directs subsequent draws to the given surface.
	// Offscreen targets are cleared to transparent black on bind.
	BindTarget(t Target)
	// TargetTexture returns the color texture backing an offscreen
	// target, for sampling in a later pass.
	TargetTexture(t Target) TextureID

	UploadVertices(verts []Vertex)
	UseProgram(p ProgramID)
	BindTexture(t TextureID)
	// Scissor clips subsequent draws to r, given in top-left screen
	// coordinates.
	Scissor(r Rect)

	SetMat4(name string, m Mat4)
	SetFloat(name string, v float32)
	SetFloats(name string, v []float32)
	SetVec2(name string, v Vec2)
	SetVec3(name string, x, y, z float32)
	SetVec4(name string, v Vec4)
	SetInt(name string, v int32)

	// Draw issues count vertices starting at first from the uploaded
	// vertex buffer, as triangles.
	Draw(first, count int)
	// DrawQuad draws a full-surface quad sampling whatever texture is
	// currently bound, used by the blur and composite passes.
	DrawQuad()
}
