// daeview opens a COLLADA document in an interactive OpenGL viewer.
//
// Usage:
//
//	daeview [flags] <file.dae>
//
// Drag with the left mouse button to orbit, scroll to zoom, WASD/QE to pan,
// right-click to identify the node under the cursor,
// F to toggle wireframe, B to toggle the bounding box, R to reset the
// camera, P to save a screenshot, Esc to quit.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tinycollada/internal/config"
	"github.com/Faultbox/tinycollada/internal/engine/camera"
	"github.com/Faultbox/tinycollada/internal/engine/debug"
	"github.com/Faultbox/tinycollada/internal/engine/input"
	"github.com/Faultbox/tinycollada/internal/engine/lighting"
	"github.com/Faultbox/tinycollada/internal/engine/picking"
	"github.com/Faultbox/tinycollada/internal/engine/scene"
	"github.com/Faultbox/tinycollada/internal/engine/window"
	"github.com/Faultbox/tinycollada/internal/logger"
	"github.com/Faultbox/tinycollada/pkg/collada"
	"github.com/Faultbox/tinycollada/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	args := config.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: daeview [flags] <file.dae>")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, args[0]); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(exitCode(err))
	}
}

// exitCode maps parse failures onto the same codes daeinfo uses.
func exitCode(err error) int {
	if collada.StatusOf(err) == collada.StatusParseError {
		return 2
	}
	return 1
}

// viewer holds the state of one viewing session.
type viewer struct {
	cfg      *config.Config
	win      *window.Window
	renderer *scene.Renderer
	input    *input.Input
	cam      *camera.OrbitCamera
	batch    *scene.Batch
	path     string
	shots    *debug.Screenshots
	capture  bool // save the next frame before it is presented
	viewProj math.Mat4
	running  bool
}

func run(cfg *config.Config, path string) error {
	start := time.Now()
	scenes, err := collada.Load(path,
		collada.WithLogger(logger.Named("collada")),
		collada.WithWorkers(cfg.Parser.Workers))
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	batch := scene.Prepare(scenes)
	logger.Info("document loaded",
		zap.String("path", path),
		zap.Int("scenes", len(scenes)),
		zap.Int("meshes", len(batch.Meshes)),
		zap.Int("triangles", batch.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)))
	if len(batch.Instances) == 0 {
		return errors.New("document has nothing to draw")
	}

	win, err := window.New(window.Config{
		Title:      "daeview - " + filepath.Base(path),
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	renderer, err := scene.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Close()

	renderer.Background = cfg.Viewer.Background
	renderer.Wireframe = cfg.Viewer.Wireframe
	renderer.ShowBounds = cfg.Viewer.ShowBounds
	renderer.LightDir = lighting.Sun{
		Azimuth:   cfg.Viewer.Light.Azimuth,
		Elevation: cfg.Viewer.Light.Elevation,
	}.Direction()
	renderer.Load(batch, path)
	renderer.Resize(win.DrawableSize())

	v := &viewer{
		cfg:      cfg,
		win:      win,
		renderer: renderer,
		input:    input.New(),
		cam:      camera.NewOrbitCamera(),
		batch:    batch,
		path:     path,
		shots:    debug.NewScreenshots(cfg.Viewer.ScreenshotDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))),
	}
	v.resetCamera()
	v.loop()
	return nil
}

func (v *viewer) resetCamera() {
	b := v.batch.Bounds
	v.cam.FitToBounds(math.V3(b.Min), math.V3(b.Max), math.Radians(v.cfg.Viewer.FOV))
}

func (v *viewer) loop() {
	v.running = true
	frames := 0
	fpsTimer := time.Now()

	for v.running {
		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.handleMovement()

		near, far := v.cam.NearFar()
		proj := math.Perspective(math.Radians(v.cfg.Viewer.FOV), v.win.Aspect(), near, far)
		v.viewProj = proj.Mul(v.cam.ViewMatrix())
		v.renderer.Render(v.viewProj)
		if v.capture {
			v.screenshot()
			v.capture = false
		}
		v.win.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
	logger.Info("viewer closed")
}

func (v *viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.win.DrawableSize())
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F:
				v.renderer.Wireframe = !v.renderer.Wireframe
				logger.Debug("wireframe toggled", zap.Bool("on", v.renderer.Wireframe))
			case sdl.SCANCODE_B:
				v.renderer.ShowBounds = !v.renderer.ShowBounds
			case sdl.SCANCODE_R:
				v.resetCamera()
			case sdl.SCANCODE_P:
				v.capture = true
			}
		case input.EventMouseMove:
			if v.input.IsButtonHeld(sdl.BUTTON_LEFT) {
				v.cam.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_RIGHT {
				v.pick(e.MouseX, e.MouseY)
			}
		case input.EventMouseWheel:
			v.cam.HandleZoom(float32(e.DeltaY))
		}
	}
}

// pick logs the instance under window point (x, y) in the last frame.
func (v *viewer) pick(x, y int) {
	inv, ok := v.viewProj.Inverse()
	if !ok {
		return
	}
	w, h := v.win.Size()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), inv)
	i := v.batch.Pick(ray)
	if i < 0 {
		logger.Info("nothing under cursor")
		return
	}
	inst := v.batch.Instances[i]
	mesh := v.batch.Meshes[inst.Mesh]
	tr := inst.Transform.Translation()
	logger.Info("picked",
		zap.String("node", inst.Node),
		zap.String("mesh", mesh.Name),
		zap.Int("triangles", len(mesh.Indices)/3),
		zap.Float32s("translation", []float32{tr.X, tr.Y, tr.Z}))
	v.win.SetTitle(fmt.Sprintf("daeview - %s [%s]", filepath.Base(v.path), inst.Node))
}

// screenshot saves the frame in the back buffer.
func (v *viewer) screenshot() {
	w, h := v.win.DrawableSize()
	if w <= 0 || h <= 0 {
		return
	}
	path, err := v.shots.Save(v.renderer.Capture(w, h), w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *viewer) handleMovement() {
	var forward, right, up float32
	if input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		v.cam.HandleMovement(forward, right, up)
	}
}
