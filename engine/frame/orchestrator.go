// Package frame runs one frame of the visualizer at a time: it applies input to the scene, rebuilds the volume
// program and target when they are out of date, and records the three render passes.
package frame

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/profiler"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/render_target"
	"github.com/Carmen-Shannon/qm-go/engine/scene"
	"github.com/Carmen-Shannon/qm-go/engine/ui"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

// Renderer is the renderer surface the orchestrator drives.
type Renderer interface {
	volume.ProgramRenderer
	volume.TargetFactory
	ui.LayerRenderer

	BeginFrame() error
	BeginPass(target render_target.RenderTarget, clear *wgpu.Color)
	EndPass()
	EndFrame()
	Present()
}

// keyQueueSize bounds the key presses buffered between frames; extra presses are dropped.
const keyQueueSize = 8

// Orchestrator owns the GPU side of the visualizer and advances it one frame per call to Frame. Frame must be
// called from one goroutine; HandleKey may be called from any goroutine.
type Orchestrator struct {
	r         Renderer
	scene     scene.Scene
	assembler *scene.Assembler
	profiler  *profiler.Profiler

	async      bool
	clearColor wgpu.Color

	program *volume.Program
	target  *volume.Target
	layer   *ui.Layer
	quad    bind_group_provider.BindGroupProvider

	keys chan uint32
	// lastUpdate is the scene update of the most recent frame.
	lastUpdate scene.FrameUpdate
}

// NewOrchestrator creates the UI layer, the fullscreen quad and an empty volume target. The volume program is
// built by the first Frame.
//
// Parameters:
//   - r: the renderer
//   - s: the scene to draw
//   - options: functional options to configure the orchestrator
//
// Returns:
//   - *Orchestrator: the orchestrator
//   - error: an error if the UI layer or the quad cannot be created
func NewOrchestrator(r Renderer, s scene.Scene, options ...OrchestratorBuilderOption) (*Orchestrator, error) {
	o := &Orchestrator{
		r:     r,
		scene: s,
		quad:  bind_group_provider.NewBindGroupProvider("volume quad"),
		keys:  make(chan uint32, keyQueueSize),
	}
	for _, option := range options {
		option(o)
	}
	o.assembler = scene.NewAssembler(o.async)
	o.target = volume.NewTarget(r)

	layer, err := ui.NewLayer(r, ui.NewAtlas())
	if err != nil {
		o.assembler.Close()
		return nil, err
	}
	o.layer = layer

	vertices, indices := volume.QuadBytes()
	if err := r.InitMeshBuffers(o.quad, vertices, indices, len(volume.QuadIndices)); err != nil {
		o.Release()
		return nil, fmt.Errorf("volume quad: %w", err)
	}
	return o, nil
}

// Scene returns the scene.
func (o *Orchestrator) Scene() scene.Scene {
	return o.scene
}

// Program returns the installed volume program, nil until the first successful build.
func (o *Orchestrator) Program() *volume.Program {
	return o.program
}

// Target returns the volume target.
func (o *Orchestrator) Target() *volume.Target {
	return o.target
}

// LastUpdate returns the scene update of the most recent frame.
func (o *Orchestrator) LastUpdate() scene.FrameUpdate {
	return o.lastUpdate
}

// HandleKey queues a key press for the next frame. N adds a wave and R resets the camera.
//
// Parameters:
//   - keyCode: the key code
func (o *Orchestrator) HandleKey(keyCode uint32) {
	select {
	case o.keys <- keyCode:
	default:
	}
}

// Frame advances the scene by dt and renders it.
//
// Parameters:
//   - in: the pointer snapshot for this frame
//   - dt: seconds since the previous frame
//
// Returns:
//   - error: an error if the frame could not be acquired or a draw failed; the scene has advanced either way
func (o *Orchestrator) Frame(in common.Input, dt float32) error {
	o.drainKeys()

	update := o.scene.Update(in, dt)
	o.lastUpdate = update
	if update.Recompile {
		if res := o.assembler.Request(o.scene.Waves(), o.scene.Params()); res != nil {
			o.install(res)
		}
	}
	if res := o.assembler.Poll(); res != nil {
		o.install(res)
	}

	w, h := o.scene.TargetSize(in.Width, in.Height)
	if _, err := o.target.Reconcile(w, h, o.scene.Filtering()); err != nil {
		log.Printf("[Engine] %v", err)
	}

	if err := o.r.BeginFrame(); err != nil {
		return err
	}
	var errs []error

	// Pass A: volume into the offscreen target.
	target := o.target.RenderTarget()
	if target != nil {
		o.r.BeginPass(target, &o.clearColor)
		if o.program != nil {
			o.program.SetUniforms(o.r, o.scene.Uniforms())
			if err := o.r.DrawCall(o.program.Key(), o.quad, 1, o.program.BindGroups()); err != nil {
				errs = append(errs, fmt.Errorf("volume pass: %w", err))
			}
		}
		o.r.EndPass()
	}

	// Pass B: target stretched over the window, then pass C: the slider panel on top.
	o.r.BeginPass(nil, &o.clearColor)
	if err := o.layer.DrawBlit(o.r, target); err != nil {
		errs = append(errs, fmt.Errorf("blit pass: %w", err))
	}
	if err := o.layer.DrawPanel(o.r, o.scene.Sliders(), update.Hovered, in.Width, in.Height); err != nil {
		errs = append(errs, fmt.Errorf("panel pass: %w", err))
	}
	o.r.EndPass()

	o.r.EndFrame()
	o.r.Present()
	return errors.Join(errs...)
}

func (o *Orchestrator) drainKeys() {
	for {
		select {
		case key := <-o.keys:
			o.handleKey(key)
		default:
			return
		}
	}
}

func (o *Orchestrator) handleKey(key uint32) {
	switch key {
	case common.KeyN:
		if err := o.scene.AddWave(); err != nil {
			log.Printf("[Engine] %v", err)
		}
	case common.KeyR:
		o.scene.ResetCamera()
	}
}

// install compiles a finished assembly and swaps it in. On any failure the current program stays.
func (o *Orchestrator) install(res *scene.AssemblyResult) {
	start := time.Now()
	err := res.Err
	if err == nil {
		var p *volume.Program
		p, err = volume.NewProgram(o.r, res.Assembly, res.Generation)
		if err == nil {
			if o.program != nil {
				o.program.Release(o.r)
			}
			o.program = p
		}
	}
	if o.profiler != nil {
		o.profiler.RecordRebuild(res.Duration+time.Since(start), err)
	}
	if err != nil {
		kept := "none"
		if o.program != nil {
			kept = o.program.Key()
		}
		log.Printf("[Engine] volume program %d failed, keeping %s: %v", res.Generation, kept, err)
	}
}

// Release frees every GPU object the orchestrator created and stops background assembly.
func (o *Orchestrator) Release() {
	o.assembler.Close()
	if o.program != nil {
		o.program.Release(o.r)
		o.program = nil
	}
	o.target.Release()
	if o.layer != nil {
		o.layer.Release()
	}
	o.quad.Release()
}
