// Package viewer implements the interactive mesh preview loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/skorren/meshforge/internal/config"
	"github.com/skorren/meshforge/internal/logger"
	"github.com/skorren/meshforge/internal/render"
	"github.com/skorren/meshforge/internal/window"
	"github.com/skorren/meshforge/pkg/formats"
	"github.com/skorren/meshforge/pkg/math"
	"github.com/skorren/meshforge/pkg/mesh"
)

// Viewer drives the preview window for a single mesh.
type Viewer struct {
	window      *window.Window
	model       *render.Model
	bbox        *render.BBoxModel
	program     uint32
	lineProgram uint32
	bounds      camera
	running     bool
	paused      bool
	showBBox    bool
	angle       float32
}

// camera is derived from the mesh bounds so any model is framed the
// same way regardless of scale.
type camera struct {
	target   math.Vec3
	distance float32
}

// New opens the window, loads the mesh at path and uploads it to the
// GPU. Source formats are converted in place; .mfb files are read
// directly.
func New(cfg *config.Config, path string) (*Viewer, error) {
	rd, err := loadRenderData(path)
	if err != nil {
		return nil, err
	}

	v := &Viewer{}
	v.window, err = window.New(window.Config{
		Title:      "meshview - " + filepath.Base(path),
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)

	v.model, err = render.Upload(rd)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}

	v.program, err = render.NewProgram(rd.PackType)
	if err != nil {
		v.model.Delete()
		v.window.Close()
		return nil, err
	}

	b := rd.Bounds()
	v.bbox, err = render.UploadBBox(b)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.lineProgram, err = render.NewLineProgram()
	if err != nil {
		v.Close()
		return nil, err
	}

	v.bounds = camera{
		target: b.Center,
		// Back off far enough that the whole box fits the frustum.
		distance: 2.5 * maxf(b.Width(), maxf(b.Height(), b.Depth())),
	}
	if v.bounds.distance == 0 {
		v.bounds.distance = 3
	}

	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.String("packType", rd.PackType.String()),
		zap.Int("records", rd.RecordCount()),
		zap.Int("indices", len(rd.Indices)),
	)
	return v, nil
}

// loadRenderData reads a binary mesh or converts a source file on the
// fly, triangulating quads so the result is drawable.
func loadRenderData(path string) (*mesh.RenderData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mfb":
		return mesh.ReadFile(path)
	case ".obj":
		store, err := formats.ParseOBJFile(path)
		if err != nil {
			return nil, err
		}
		return mesh.New(store.Triangulate()).Build()
	case ".gltf", ".glb":
		store, err := formats.LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		return mesh.New(store.Triangulate()).Build()
	default:
		return nil, fmt.Errorf("unsupported file format %q", filepath.Ext(path))
	}
}

// Run enters the event loop. Space pauses the turntable, B toggles the
// bounding-box wireframe, ESC quits.
func (v *Viewer) Run() error {
	v.running = true
	lastTime := time.Now()

	mvpLoc := render.Uniform(v.program, "uMVP")
	modelLoc := render.Uniform(v.program, "uModel")
	lightLoc := render.Uniform(v.program, "uLightDir")
	colorLoc := render.Uniform(v.program, "uBaseColor")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				v.running = false
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch e.Keysym.Scancode {
				case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
					v.running = false
				case sdl.SCANCODE_SPACE:
					v.paused = !v.paused
				case sdl.SCANCODE_B:
					v.showBBox = !v.showBBox
				}
			}
		}

		if !v.paused {
			v.angle += dt * 0.8
		}

		width, height := v.window.Size()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		model := math.Translate(v.bounds.target.X, v.bounds.target.Y, v.bounds.target.Z).
			Mul(math.RotateY(v.angle)).
			Mul(math.Translate(-v.bounds.target.X, -v.bounds.target.Y, -v.bounds.target.Z))

		eye := math.Vec3{
			X: v.bounds.target.X,
			Y: v.bounds.target.Y + v.bounds.distance*0.3,
			Z: v.bounds.target.Z + v.bounds.distance,
		}
		view := math.LookAt(eye, v.bounds.target, math.Vec3{Y: 1})
		proj := math.Perspective(
			0.9, float32(width)/float32(height),
			v.bounds.distance*0.01, v.bounds.distance*10,
		)
		mvp := proj.Mul(view).Mul(model)

		gl.UseProgram(v.program)
		gl.UniformMatrix4fv(mvpLoc, 1, false, mvp.Ptr())
		gl.UniformMatrix4fv(modelLoc, 1, false, model.Ptr())
		gl.Uniform3f(lightLoc, -0.4, -0.8, -0.4)
		gl.Uniform3f(colorLoc, 0.75, 0.78, 0.82)

		v.model.Draw()

		if v.showBBox {
			gl.UseProgram(v.lineProgram)
			gl.UniformMatrix4fv(render.Uniform(v.lineProgram, "uMVP"), 1, false, mvp.Ptr())
			gl.Uniform3f(render.Uniform(v.lineProgram, "uColor"), 1.0, 0.85, 0.1)
			v.bbox.Draw()
		}

		v.window.SwapBuffers()
	}

	return nil
}

// Close releases GPU and window resources.
func (v *Viewer) Close() {
	if v.lineProgram != 0 {
		gl.DeleteProgram(v.lineProgram)
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
	}
	if v.bbox != nil {
		v.bbox.Delete()
	}
	if v.model != nil {
		v.model.Delete()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
