//go:build !headless

package display

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// WindowConfig controls the desktop window
type WindowConfig struct {
	Title      string
	Scene      string // Shown in the status overlay
	Scale      int    // Initial window size as a multiple of the frame size
	ShowStatus bool
	// OnResize is called when the window's logical size changes. Nil keeps
	// the frame size fixed and lets ebiten scale the image.
	OnResize func(width, height int)
}

// DefaultWindowConfig returns sensible default values
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:      "go-realtime-raytracer",
		Scale:      2,
		ShowStatus: true,
	}
}

// Window presents frames in an ebiten window. Present copies each frame into
// a staging buffer; Draw uploads the staging buffer on the ebiten goroutine.
type Window struct {
	config WindowConfig

	bufferMutex sync.RWMutex
	staging     []byte
	width       int
	height      int
	status      Status
	dirty       bool
	showStatus  bool

	image     *ebiten.Image
	lastOuter [2]int

	closed    chan struct{}
	closeOnce sync.Once
}

// NewWindow creates a window for frames of the given size. Call Run on the
// main goroutine to open it.
func NewWindow(width, height int, config WindowConfig) *Window {
	if config.Scale < 1 {
		config.Scale = 1
	}
	return &Window{
		config:     config,
		staging:    make([]byte, width*height*renderer.BytesPerPixel),
		width:      width,
		height:     height,
		showStatus: config.ShowStatus,
		status:     Status{Scene: config.Scene, Width: width, Height: height},
		closed:     make(chan struct{}),
	}
}

// Present copies the frame for the next Draw. It returns ErrSinkClosed once
// the window has been closed.
func (w *Window) Present(frame renderer.Frame) error {
	select {
	case <-w.closed:
		return renderer.ErrSinkClosed
	default:
	}

	fb := frame.Buffer
	w.bufferMutex.Lock()
	if fb.Width != w.width || fb.Height != w.height {
		w.width, w.height = fb.Width, fb.Height
		w.staging = make([]byte, len(fb.Pix))
	}
	copy(w.staging, fb.Pix)
	w.status.Frame = frame.Number
	w.status.Time = frame.Time
	w.status.Width = fb.Width
	w.status.Height = fb.Height
	w.dirty = true
	w.bufferMutex.Unlock()
	return nil
}

// Run opens the window and blocks until it is closed. ebiten requires this
// to run on the main goroutine.
func (w *Window) Run() error {
	defer w.Close()

	w.bufferMutex.RLock()
	width, height := w.width, w.height
	w.bufferMutex.RUnlock()

	ebiten.SetWindowSize(width*w.config.Scale, height*w.config.Scale)
	ebiten.SetWindowTitle(w.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	return ebiten.RunGame(w)
}

// Close makes the window exit on its next update and turns further Present
// calls into ErrSinkClosed
func (w *Window) Close() {
	w.closeOnce.Do(func() {
		close(w.closed)
	})
}

// Done is closed when the window has been closed
func (w *Window) Done() <-chan struct{} {
	return w.closed
}

func (w *Window) Update() error {
	select {
	case <-w.closed:
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		w.bufferMutex.Lock()
		w.showStatus = !w.showStatus
		w.bufferMutex.Unlock()
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.bufferMutex.Lock()
	if w.image == nil || w.image.Bounds().Dx() != w.width || w.image.Bounds().Dy() != w.height {
		if w.image != nil {
			w.image.Deallocate()
		}
		w.image = ebiten.NewImage(w.width, w.height)
		w.dirty = true
	}
	if w.dirty {
		w.image.WritePixels(w.staging)
		w.dirty = false
	}
	showStatus := w.showStatus
	status := w.status
	w.bufferMutex.Unlock()

	screen.DrawImage(w.image, nil)

	if showStatus {
		status.FPS = ebiten.ActualFPS()
		drawStatusBar(screen, status)
	}
}

// Layout keeps the logical screen equal to the frame size. When resizing is
// enabled it forwards the new window size, which takes effect a frame later.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.config.OnResize != nil && (outsideWidth != w.lastOuter[0] || outsideHeight != w.lastOuter[1]) {
		if w.lastOuter != [2]int{} {
			w.config.OnResize(max(1, outsideWidth/w.config.Scale), max(1, outsideHeight/w.config.Scale))
		}
		w.lastOuter = [2]int{outsideWidth, outsideHeight}
	}

	w.bufferMutex.RLock()
	defer w.bufferMutex.RUnlock()
	return w.width, w.height
}

func drawStatusBar(screen *ebiten.Image, status Status) {
	face := basicfont.Face7x13
	line := status.String()
	bounds := text.BoundString(face, line)

	barHeight := bounds.Dy() + 6
	ebitenutil.DrawRect(screen, 0, 0, float64(bounds.Dx()+8), float64(barHeight), color.RGBA{0, 0, 0, 160})
	text.Draw(screen, line, face, 4, barHeight-4, color.RGBA{230, 230, 230, 255})
}
