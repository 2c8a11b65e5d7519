package display

import (
	"hash/fnv"
	"sync"

	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// Headless counts frames and fingerprints the last one. It is used for
// benchmarking and in environments without a display.
type Headless struct {
	mu       sync.Mutex
	frames   int
	checksum uint64
	width    int
	height   int
	lastTime float64
}

// NewHeadless creates a headless sink
func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) Present(frame renderer.Frame) error {
	hash := fnv.New64a()
	hash.Write(frame.Buffer.Pix)

	h.mu.Lock()
	h.frames++
	h.checksum = hash.Sum64()
	h.width = frame.Buffer.Width
	h.height = frame.Buffer.Height
	h.lastTime = frame.Time
	h.mu.Unlock()
	return nil
}

// Frames returns the number of frames presented
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Checksum returns the FNV-1a hash of the last frame's pixels
func (h *Headless) Checksum() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.checksum
}

// Size returns the dimensions of the last frame
func (h *Headless) Size() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// LastTime returns the scene time of the last frame
func (h *Headless) LastTime() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastTime
}
