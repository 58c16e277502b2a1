package main

import (
	"flag"
	"log"
	"path/filepath"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"ducker/internal/logger"
	"ducker/internal/noise"
	"ducker/pkg/config"
	"ducker/pkg/gldriver"
	"ducker/pkg/render"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	logg := logger.NewLogger("debug")
	logg.Info("Starting ducker scene demo...")

	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logg.Warnf("%v", err)
	}
	if cfg.Log.File != "" {
		if fileLog, err := logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File); err == nil {
			logg = fileLog
			defer logg.Close()
		}
	} else {
		logg.SetLevel(cfg.Log.Level)
	}
	logg.EnableColors(cfg.Log.Colors)

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Window.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	}

	driver := gldriver.New()
	cc := cfg.Render.ClearColor
	driver.SetClearColor(cc[0], cc[1], cc[2], cc[3])

	fbWidth, fbHeight := window.GetFramebufferSize()
	ctx, err := render.New(driver, logg, fbWidth, fbHeight)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}
	defer ctx.Shutdown()

	ctx.SetShadowsEnabled(cfg.Render.Shadows)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		ctx.SetScreenSize(w, h)
	})

	scene := buildScene(ctx, cfg, logg)

	logg.Info("Renderer initialized, entering frame loop...")
	for !window.ShouldClose() {
		scene.animate(ctx, glfw.GetTime())
		ctx.Render()
		window.SwapBuffers()
		glfw.PollEvents()
	}
}

// scene holds the object identities the frame loop animates.
type scene struct {
	spinner uint32
}

func buildScene(ctx *render.Context, cfg *config.Config, logg *logger.Logger) *scene {
	white := render.Vec4{1, 1, 1, 1}
	noBorder := render.Vec4{}

	// Background panel.
	ctx.AddRect(
		render.Rect{0, 0, float32(cfg.Window.Width), float32(cfg.Window.Height)},
		render.Vec4{0.12, 0.12, 0.14, 1}, 0, 0, render.Rect{}, 0, noBorder,
	)

	// Elevated cards.
	for i := 0; i < 5; i++ {
		card := ctx.AddRoundedRect(
			render.Rect{40 + float32(i)*180, 60, 150, 110},
			render.Vec2{150, 110},
			render.Vec4{0.92, 0.92, 0.95, 1},
			12, 0, false, 2, 0, render.Rect{}, 0, noBorder,
		)
		ctx.SetObjectElevation(card, i+1)
	}

	// A bordered circle.
	ctx.AddCircle(
		render.Rect{60, 240, 120, 120},
		render.Vec4{0.30, 0.62, 0.92, 1},
		60, 0, false, 2, 0, 4, render.Vec4{1, 1, 1, 0.8},
	)

	// Straight and curved strokes.
	ctx.AddLine(render.Vec2{240, 300}, render.Vec2{480, 260}, render.Vec4{0.95, 0.55, 0.25, 1},
		4, render.LineStraight, nil, 3)
	ctx.AddLine(render.Vec2{240, 340}, render.Vec2{480, 340}, render.Vec4{0.45, 0.85, 0.45, 1},
		3, render.LineCurved, nil, 3)
	ctx.AddLine(render.Vec2{240, 420}, render.Vec2{480, 380}, render.Vec4{0.85, 0.40, 0.75, 1},
		3, render.LineCurved, []render.Vec2{{320, 470}, {420, 330}}, 3)

	// Clipped content inside a container.
	ctx.BeginContainer(render.Rect{540, 240, 200, 160})
	ctx.AddRect(render.Rect{0, 0, 200, 160}, render.Vec4{0.18, 0.20, 0.24, 1},
		2, 0, render.Rect{}, 0, noBorder)
	// Deliberately oversized; the container clips it.
	ctx.AddCircle(render.Rect{120, 80, 160, 160}, render.Vec4{0.95, 0.75, 0.20, 1},
		80, 0, false, 3, 0, 0, noBorder)
	ctx.EndContainer()

	// Procedural noise surface, no asset files needed.
	if tex, _, _ := ctx.CreateTexture(noise.Texture(256, 256, 48, 4, 7)); tex != 0 {
		ctx.AddRect(render.Rect{780, 60, 150, 150}, white, 2,
			tex, render.Rect{0, 0, 1, 1}, 2, render.Vec4{0, 0, 0, 0.6})
	}

	s := &scene{}
	s.spinner = ctx.AddRoundedRect(
		render.Rect{820, 280, 90, 90},
		render.Vec2{90, 90},
		render.Vec4{0.85, 0.30, 0.30, 1},
		16, 0, false, 3, 0, render.Rect{}, 0, noBorder,
	)
	ctx.SetObjectElevation(s.spinner, 3)

	if font := ctx.LoadFont(filepath.Join(cfg.Assets.FontsDir, "demo.ttf"), cfg.Render.FontSize); font != 0 {
		ctx.DrawText(font, "retained scene demo", render.Vec2{40, 470}, white, 4, 0, render.Vec2{})
	} else {
		logg.Warn("demo font not found, text disabled")
	}

	return s
}

func (s *scene) animate(ctx *render.Context, t float64) {
	ctx.SetObjectRotationAndOrigin(s.spinner, float32(t)*45, render.Vec2{0.5, 0.5})
}
