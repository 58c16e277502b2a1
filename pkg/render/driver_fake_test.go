package render

import (
	"errors"
	"image"
	"testing"

	"ducker/internal/logger"
)

var errCompileFailed = errors.New("compile failed")

// newTestContext builds a context on a fake driver at 800x600.
func newTestContext(t *testing.T) (*Context, *fakeDriver) {
	t.Helper()
	d := newFakeDriver()
	c, err := New(d, logger.NewLogger("error"), 800, 600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, d
}

// newBrokenContext builds a context whose shader compiles all failed,
// with compile-error logging suppressed.
func newBrokenContext(d *fakeDriver) (*Context, error) {
	return New(d, logger.NewLogger("fatal"), 800, 600)
}

// drawCall is one recorded Draw invocation.
type drawCall struct {
	first int
	count int
}

// fakeDriver records every call crossing the driver boundary so tests can
// assert on batching behavior without a GPU.
type fakeDriver struct {
	nextProgram ProgramID
	nextTexture TextureID

	compiled  int
	deleted   []ProgramID
	texFreed  []TextureID
	initW     int
	initH     int
	resizes   []int
	shutdown  bool
	frames    int
	framesEnd int

	targets     []Target
	programs    []ProgramID
	textures    []TextureID
	scissors    []Rect
	draws       []drawCall
	quads       int
	uploaded    [][]Vertex
	floatSets   map[string][]float32
	intSets     map[string][]int32
	failCompile bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		nextProgram: 1,
		nextTexture: 1,
		floatSets:   make(map[string][]float32),
		intSets:     make(map[string][]int32),
	}
}

func (d *fakeDriver) Init(width, height int) error {
	d.initW, d.initH = width, height
	return nil
}

func (d *fakeDriver) Shutdown() { d.shutdown = true }

func (d *fakeDriver) Resize(width, height int) {
	d.resizes = append(d.resizes, width, height)
}

func (d *fakeDriver) CompileProgram(vertexSrc, fragmentSrc string) (ProgramID, error) {
	if d.failCompile {
		return 0, errCompileFailed
	}
	d.compiled++
	p := d.nextProgram
	d.nextProgram++
	return p, nil
}

func (d *fakeDriver) DeleteProgram(p ProgramID) { d.deleted = append(d.deleted, p) }

func (d *fakeDriver) CreateTexture(img image.Image) (TextureID, error) {
	t := d.nextTexture
	d.nextTexture++
	return t, nil
}

func (d *fakeDriver) CreateAlphaTexture(pix []byte, width, height int) (TextureID, error) {
	t := d.nextTexture
	d.nextTexture++
	return t, nil
}

func (d *fakeDriver) DeleteTexture(t TextureID) { d.texFreed = append(d.texFreed, t) }

func (d *fakeDriver) BeginFrame() { d.frames++ }
func (d *fakeDriver) EndFrame()   { d.framesEnd++ }

func (d *fakeDriver) BindTarget(t Target) { d.targets = append(d.targets, t) }

func (d *fakeDriver) TargetTexture(t Target) TextureID { return TextureID(1000 + int(t)) }

func (d *fakeDriver) UploadVertices(verts []Vertex) {
	d.uploaded = append(d.uploaded, append([]Vertex(nil), verts...))
}

func (d *fakeDriver) UseProgram(p ProgramID)  { d.programs = append(d.programs, p) }
func (d *fakeDriver) BindTexture(t TextureID) { d.textures = append(d.textures, t) }
func (d *fakeDriver) Scissor(r Rect)          { d.scissors = append(d.scissors, r) }

func (d *fakeDriver) SetMat4(name string, m Mat4)   {}
func (d *fakeDriver) SetFloat(name string, v float32) {
	d.floatSets[name] = append(d.floatSets[name], v)
}
func (d *fakeDriver) SetFloats(name string, v []float32) {}
func (d *fakeDriver) SetVec2(name string, v Vec2)        {}
func (d *fakeDriver) SetVec3(name string, x, y, z float32) {}
func (d *fakeDriver) SetVec4(name string, v Vec4)        {}
func (d *fakeDriver) SetInt(name string, v int32) {
	d.intSets[name] = append(d.intSets[name], v)
}

func (d *fakeDriver) Draw(first, count int) {
	d.draws = append(d.draws, drawCall{first: first, count: count})
}

func (d *fakeDriver) DrawQuad() { d.quads++ }
