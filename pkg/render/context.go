package render

import (
	"ducker/internal/logger"
)

// Built-in shader handles, one per shape kind plus the line program.
// Custom shader handles start at customShaderBase and never collide.
const (
	handleRect        = 1
	handleRoundedRect = 2
	handleCircle      = 3
	handleGlyph       = 4
	handleLine        = 5

	customShaderBase = 100
)

// Context owns the whole renderer state: the object store, shader and font
// tables, the container stack and the projection. One context serves one
// calling thread; callers sharing a context across goroutines must wrap
// every entry point in their own mutex.
type Context struct {
	driver Driver
	log    *logger.Logger

	width  int
	height int
	alive  bool

	projection Mat4

	shaders    map[uint32]ProgramID
	nextShader uint32

	blurHorizontal ProgramID
	blurVertical   ProgramID
	composite      ProgramID

	fonts    map[uint32]*Font
	nextFont uint32

	objects    []Object
	idToIndex  map[uint32]int
	nextObject uint32
	needsSort  bool

	clipStack   []Rect
	offsetStack []Vec2

	shadowPresets  map[int][]ShadowLayer
	shadowsEnabled bool

	// Scratch buffers reused across render passes.
	verts  []Vertex
	ranges []vertexRange
}

// New initializes a context on the given driver. The driver must already
// have a current graphics context on the calling thread. Built-in programs
// that fail to compile are logged and left unresolved; objects bound to
// them are skipped at draw time rather than failing the whole context.
func New(d Driver, log *logger.Logger, width, height int) (*Context, error) {
	if err := d.Init(width, height); err != nil {
		return nil, err
	}

	c := &Context{
		driver:         d,
		log:            log,
		width:          width,
		height:         height,
		alive:          true,
		shaders:        make(map[uint32]ProgramID),
		nextShader:     customShaderBase,
		fonts:          make(map[uint32]*Font),
		nextFont:       1,
		idToIndex:      make(map[uint32]int),
		nextObject:     1,
		shadowPresets:  shadowPresetTable(),
		shadowsEnabled: true,
	}

	builtins := []struct {
		handle uint32
		frag   string
	}{
		{handleRect, rectFragmentSrc},
		{handleRoundedRect, roundedRectFragmentSrc},
		{handleCircle, circleFragmentSrc},
		{handleGlyph, glyphFragmentSrc},
		{handleLine, lineFragmentSrc},
	}
	for _, b := range builtins {
		prog, err := d.CompileProgram(universalVertexSrc, b.frag)
		if err != nil {
			c.log.Errorf("render: built-in shader %d failed to compile: %v", b.handle, err)
			continue
		}
		c.shaders[b.handle] = prog
	}

	c.blurHorizontal = c.compileAux("horizontal blur", quadVertexSrc, horizontalBlurFragmentSrc)
	c.blurVertical = c.compileAux("vertical blur", quadVertexSrc, verticalBlurFragmentSrc)
	c.composite = c.compileAux("composite", quadVertexSrc, compositeFragmentSrc)

	c.projection = Ortho2D(width, height)
	return c, nil
}

func (c *Context) compileAux(what, vs, fs string) ProgramID {
	prog, err := c.driver.CompileProgram(vs, fs)
	if err != nil {
		c.log.Errorf("render: %s shader failed to compile: %v", what, err)
		return 0
	}
	return prog
}

// ready reports whether the context can serve operations. Every public
// entry point checks this so calls after Shutdown degrade to neutral
// no-ops instead of crashing.
func (c *Context) ready() bool {
	if c == nil || !c.alive {
		return false
	}
	return true
}

// Shutdown releases every object, shader, font and driver resource. The
// context is unusable afterwards; all further operations are no-ops.
func (c *Context) Shutdown() {
	if !c.ready() {
		return
	}
	c.Clear()

	for id, f := range c.fonts {
		c.driver.DeleteTexture(f.Texture)
		delete(c.fonts, id)
	}
	for handle, prog := range c.shaders {
		if prog != 0 {
			c.driver.DeleteProgram(prog)
		}
		delete(c.shaders, handle)
	}
	for _, prog := range []ProgramID{c.blurHorizontal, c.blurVertical, c.composite} {
		if prog != 0 {
			c.driver.DeleteProgram(prog)
		}
	}

	c.driver.Shutdown()
	c.alive = false
}

// Clear removes every object and resets the container stack. Shaders,
// fonts and textures survive.
func (c *Context) Clear() {
	if !c.ready() {
		c.warnDead("Clear")
		return
	}
	c.objects = c.objects[:0]
	c.idToIndex = make(map[uint32]int)
	c.clipStack = c.clipStack[:0]
	c.offsetStack = c.offsetStack[:0]
}

// SetScreenSize updates the projection and resizes the offscreen targets.
func (c *Context) SetScreenSize(width, height int) {
	if !c.ready() {
		c.warnDead("SetScreenSize")
		return
	}
	c.width = width
	c.height = height
	c.projection = Ortho2D(width, height)
	c.driver.Resize(width, height)
}

// SetShadowsEnabled toggles the elevation shadow passes. Elevation values
// on objects are kept either way.
func (c *Context) SetShadowsEnabled(enabled bool) {
	if !c.ready() {
		return
	}
	c.shadowsEnabled = enabled
}

// ScreenSize returns the current surface size.
func (c *Context) ScreenSize() (int, int) {
	if !c.ready() {
		return 0, 0
	}
	return c.width, c.height
}

// CreateShader compiles a custom fragment shader against the universal
// vertex stage and returns its handle, or zero on failure. Custom handles
// come from their own counter and never collide with built-ins.
func (c *Context) CreateShader(fragmentSrc string) uint32 {
	if !c.ready() {
		c.warnDead("CreateShader")
		return 0
	}
	prog, err := c.driver.CompileProgram(universalVertexSrc, fragmentSrc)
	if err != nil {
		c.log.Errorf("render: custom shader failed to compile: %v", err)
		return 0
	}
	handle := c.nextShader
	c.nextShader++
	c.shaders[handle] = prog
	return handle
}

// DeleteShader removes a custom shader. Built-in handles are refused.
func (c *Context) DeleteShader(handle uint32) {
	if !c.ready() || handle < customShaderBase {
		return
	}
	if prog, ok := c.shaders[handle]; ok {
		c.driver.DeleteProgram(prog)
		delete(c.shaders, handle)
	}
}

// program resolves a shader handle to a driver program, or zero.
func (c *Context) program(handle uint32) ProgramID {
	return c.shaders[handle]
}

func (c *Context) warnDead(op string) {
	if c != nil && c.log != nil {
		c.log.Warnf("render: %s called on a context that is not initialized", op)
	}
}

func (c *Context) fullScreen() Rect {
	return Rect{0, 0, float32(c.width), float32(c.height)}
}
