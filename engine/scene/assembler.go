package scene

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

// AssemblyResult is one finished shader assembly.
type AssemblyResult struct {
	// Generation identifies the request; later requests have larger generations.
	Generation int
	// Assembly is the assembled program source, nil when Err is set.
	Assembly *volume.Assembly
	// Err is the assembly error.
	Err error
	// Duration is the time spent assembling.
	Duration time.Duration
}

// Assembler turns wave sets into shader assemblies, either on the caller's goroutine or on a worker pool. In
// background mode only the newest request's result is ever handed out; results of superseded requests are
// dropped.
type Assembler struct {
	async bool
	pool  worker.DynamicWorkerPool

	mu         sync.Mutex
	generation int
	// requested is the generation of the newest request.
	requested atomic.Int64
	// latest holds the newest finished result not yet taken.
	latest atomic.Pointer[AssemblyResult]
}

// NewAssembler creates an Assembler.
//
// Parameters:
//   - async: run assembly on a worker pool instead of the caller's goroutine
//
// Returns:
//   - *Assembler: the assembler
func NewAssembler(async bool) *Assembler {
	a := &Assembler{async: async}
	if async {
		// Slider drags request at most once per frame.
		a.pool = worker.NewDynamicWorkerPool(max(runtime.NumCPU()/2, 1), 16, 1*time.Second)
	}
	return a
}

// Async reports whether assembly runs in the background.
func (a *Assembler) Async() bool {
	return a.async
}

// Request assembles waves with params. In synchronous mode the result is returned directly. In background mode
// the work is queued, nil is returned and the result is collected later with Poll.
//
// Parameters:
//   - waves: the waves, copied before use
//   - params: the compile-time parameters
//
// Returns:
//   - *AssemblyResult: the finished result in synchronous mode, nil in background mode
func (a *Assembler) Request(waves []volume.Wave, params volume.Params) *AssemblyResult {
	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.mu.Unlock()
	a.requested.Store(int64(gen))

	snapshot := append([]volume.Wave(nil), waves...)
	if !a.async {
		return assemble(gen, snapshot, params)
	}

	a.pool.SubmitTask(worker.Task{
		ID: gen,
		Do: func() (any, error) {
			res := assemble(gen, snapshot, params)
			a.publish(res)
			return res, res.Err
		},
	})
	return nil
}

// publish stores res unless a newer result is already waiting.
func (a *Assembler) publish(res *AssemblyResult) {
	for {
		cur := a.latest.Load()
		if cur != nil && cur.Generation > res.Generation {
			return
		}
		if a.latest.CompareAndSwap(cur, res) {
			return
		}
	}
}

// Poll takes the waiting background result. Results older than the newest request are discarded.
//
// Returns:
//   - *AssemblyResult: the result for the newest request, or nil if it has not finished
func (a *Assembler) Poll() *AssemblyResult {
	res := a.latest.Swap(nil)
	if res == nil || int64(res.Generation) != a.requested.Load() {
		return nil
	}
	return res
}

// Close stops the worker pool. Queued work is abandoned.
func (a *Assembler) Close() {
	if a.pool != nil {
		a.pool.Stop()
	}
}

func assemble(gen int, waves []volume.Wave, params volume.Params) *AssemblyResult {
	start := time.Now()
	asm, err := volume.Assemble(waves, params)
	return &AssemblyResult{
		Generation: gen,
		Assembly:   asm,
		Err:        err,
		Duration:   time.Since(start),
	}
}
