//go:build headless

package display

import (
	"errors"
	"sync"

	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// ErrNoWindow is returned by Run in builds without a windowing backend
var ErrNoWindow = errors.New("window display not available in headless builds")

// WindowConfig controls the desktop window
type WindowConfig struct {
	Title      string
	Scene      string
	Scale      int
	ShowStatus bool
	OnResize   func(width, height int)
}

// DefaultWindowConfig returns sensible default values
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{Title: "go-realtime-raytracer", Scale: 2, ShowStatus: true}
}

// Window is a stand-in that refuses to open
type Window struct {
	closed    chan struct{}
	closeOnce sync.Once
}

func NewWindow(width, height int, config WindowConfig) *Window {
	return &Window{closed: make(chan struct{})}
}

func (w *Window) Present(renderer.Frame) error {
	return renderer.ErrSinkClosed
}

func (w *Window) Run() error {
	w.Close()
	return ErrNoWindow
}

func (w *Window) Close() {
	w.closeOnce.Do(func() {
		close(w.closed)
	})
}

func (w *Window) Done() <-chan struct{} {
	return w.closed
}
