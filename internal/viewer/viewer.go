// Package viewer runs the interactive mesh viewer.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/controls"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/session"
)

// Viewer owns the window, renderer, input and session.
type Viewer struct {
	cfg         *config.Config
	running     bool
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	bindings    input.Bindings
	session     *session.Session
	screenshots *debug.ScreenshotCapture
}

// New loads the mesh and creates the window and renderer.
func New(cfg *config.Config) (*Viewer, error) {
	mode, err := transform.ParseMode(cfg.Transform.Mode)
	if err != nil {
		return nil, err
	}
	keys, err := controls.ResolveKeyNames(cfg.Controls.Keys)
	if err != nil {
		return nil, err
	}

	logger.Info("initializing viewer",
		zap.String("mesh", cfg.Mesh.Path),
		zap.Stringer("mode", mode),
	)

	v := &Viewer{
		cfg:         cfg,
		screenshots: debug.NewScreenshotCapture(cfg.Screenshots.Dir, "meshview"),
	}

	v.session, err = session.Load(cfg.Mesh.Path, session.Options{Mode: mode, Steps: cfg.Steps()})
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.bindings, err = input.NewBindings(keys)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
		MeshColor:  cfg.Graphics.MeshColor,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Upload(v.session.Buffer())

	v.input = input.New()

	logger.Info("viewer initialized successfully",
		zap.Bool("shader", v.renderer.Usable()),
		zap.Int32("vertices", v.session.VertexCount()),
	)
	return v, nil
}

// Run starts the frame loop and returns when the window is closed or the
// quit action fires.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()
	title := fmt.Sprintf("%s - %s", v.cfg.Graphics.Title, filepath.Base(v.cfg.Mesh.Path))

	logger.Info("starting frame loop")

	for v.running {
		// 1. Poll input
		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			if event.Type == input.EventWindowResize {
				v.renderer.Resize(v.window.DrawableSize())
			}
		}

		actions := v.input.Snapshot(v.bindings)
		if actions.Active(controls.Quit) {
			v.running = false
			break
		}

		// 2. Mutate state and compose the model matrix
		model := v.session.Advance(actions)

		// 3. Draw
		v.renderer.Begin()
		v.renderer.DrawMesh(model)

		if actions.Active(controls.Screenshot) {
			v.captureScreenshot()
		}

		// 4. Present
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			s := v.session.State()
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Uint64("frame", v.session.Frames()),
				zap.Float32("angle", s.Angle),
				zap.Float32("scale", s.Scale.X),
			)
			v.window.SetTitle(fmt.Sprintf("%s (%d fps)", title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("frame loop stopped", zap.Uint64("frames", v.session.Frames()))
	return nil
}

func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources, then the window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
