package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/qm-go/common"
)

// Window owns the platform window, its WebGPU surface descriptor and the pointer state the visualizer reads once
// per frame.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration on the main thread.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press and repeat events. The quit key is never forwarded.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true until the window is asked to close.
	IsRunning() bool

	// RequestClose makes ProcessMessages return after its current iteration. The window stays alive until Close.
	// Safe to call from any goroutine.
	RequestClose()

	// Close destroys the window and releases platform resources. Must be called from the main thread after
	// ProcessMessages has returned.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is asked to close. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int

	// Input returns the pointer state accumulated since the previous call. Call it once per frame.
	//
	// Returns:
	//   - common.Input: cursor, press anchor and movement in normalized device coordinates
	Input() common.Input
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// Size limits applied to user resizes; 0 leaves a bound unset.
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	// width and height track the framebuffer, which differs from the window size on high-DPI displays.
	width  int
	height int

	quitKey uint32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)

	input *common.InputTracker
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a Window configured by the given options.
// Panics if the platform window cannot be created; there is nothing to render into without one.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window, ready for a renderer surface
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Hydrogen Orbitals",
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
		quitKey:   common.KeyEsc,
		input:     common.NewInputTracker(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Input() common.Input {
	return w.input.Snapshot(w.width, w.height)
}
