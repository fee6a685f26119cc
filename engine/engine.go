package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/qm-go/engine/frame"
	"github.com/Carmen-Shannon/qm-go/engine/profiler"
	"github.com/Carmen-Shannon/qm-go/engine/renderer"
	"github.com/Carmen-Shannon/qm-go/engine/scene"
	"github.com/Carmen-Shannon/qm-go/engine/window"
)

// engine implements the Engine interface.
// The window message loop runs on the main goroutine and frames are rendered on a second one.
type engine struct {
	wg sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback func(deltaTime float32)

	scene         scene.Scene
	sceneOptions  []scene.SceneBuilderOption
	orchestrator  *frame.Orchestrator
	asyncAssembly bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the visualizer.
// It owns the window, the renderer and the scene, and runs the render loop that draws the volume and the
// slider panel every frame.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer drawing into the window.
	Renderer() renderer.Renderer

	// Scene returns the program state: waves, slider values and camera.
	Scene() scene.Scene

	// Orchestrator returns the per-frame driver of the scene's GPU objects.
	Orchestrator() *frame.Orchestrator

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the render loop and processes window messages until the window closes, then releases the
	// GPU objects. Must be called from the main goroutine.
	Run()

	// Quit signals all engine goroutines to stop and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine with the provided options. A window and a WebGPU renderer are created when
// none are supplied. The scene is built from the scene options and the orchestrator prepares the UI layer; the
// volume program is compiled on the first frame.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the scene or the UI layer cannot be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow()
	}
	if e.renderer == nil {
		e.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, e.window)
	}

	s, err := scene.NewScene(e.sceneOptions...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	e.scene = s

	e.orchestrator, err = frame.NewOrchestrator(e.renderer, s,
		frame.WithAsyncAssembly(e.asyncAssembly),
		frame.WithProfiler(e.profiler),
	)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	e.window.SetResizeCallback(func(width, height int) {
		if width > 0 && height > 0 {
			e.renderer.Resize(width, height)
		}
	})
	e.window.SetKeyDownCallback(e.orchestrator.HandleKey)

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Orchestrator() *frame.Orchestrator {
	return e.orchestrator
}

func (e *engine) Run() {
	e.wg.Add(1)
	go e.handleRender()
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.orchestrator.Release()
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] close window: %v", err)
	}
}

// Quit signals all engine goroutines to stop and asks the window to close, which makes Run return.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	e.window.RequestClose()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Each iteration snapshots the window input and hands it to the orchestrator, which updates the scene and
// records the volume, blit and panel passes.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
			e.window.RequestClose()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if err := e.orchestrator.Frame(e.window.Input(), dt); err != nil {
				log.Printf("[Engine] frame: %v", err)
			}

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}
