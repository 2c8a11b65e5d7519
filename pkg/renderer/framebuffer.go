package renderer

import (
	"bytes"
	"fmt"
	"image"
	"sync"
)

// BytesPerPixel is the size of one RGBA8 pixel
const BytesPerPixel = 4

// FrameBuffer is a Width x Height RGBA8 image stored row-major, top row first
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrameBuffer allocates a zeroed frame buffer
func NewFrameBuffer(width, height int) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}, nil
}

// Stride returns the number of bytes per row
func (fb *FrameBuffer) Stride() int {
	return fb.Width * BytesPerPixel
}

// Rows returns the pixels of rows [r.Start, r.End). The slice is capped at
// r.End so that disjoint ranges never share backing memory that an append
// could reach.
func (fb *FrameBuffer) Rows(r RowRange) []byte {
	stride := fb.Stride()
	return fb.Pix[r.Start*stride : r.End*stride : r.End*stride]
}

// SetPixel writes one pixel
func (fb *FrameBuffer) SetPixel(x, y int, c [4]byte) {
	i := y*fb.Stride() + x*BytesPerPixel
	copy(fb.Pix[i:i+BytesPerPixel], c[:])
}

// PixelAt reads one pixel
func (fb *FrameBuffer) PixelAt(x, y int) [4]byte {
	i := y*fb.Stride() + x*BytesPerPixel
	return [4]byte{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// Fill sets every pixel to c
func (fb *FrameBuffer) Fill(c [4]byte) {
	for i := 0; i < len(fb.Pix); i += BytesPerPixel {
		copy(fb.Pix[i:i+BytesPerPixel], c[:])
	}
}

// Image wraps the buffer as an *image.RGBA sharing the same pixels
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pix,
		Stride: fb.Stride(),
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// Clone returns a deep copy
func (fb *FrameBuffer) Clone() *FrameBuffer {
	pix := make([]byte, len(fb.Pix))
	copy(pix, fb.Pix)
	return &FrameBuffer{Width: fb.Width, Height: fb.Height, Pix: pix}
}

// Equal reports whether both buffers have the same size and pixels
func (fb *FrameBuffer) Equal(other *FrameBuffer) bool {
	if other == nil {
		return false
	}
	return fb.Width == other.Width && fb.Height == other.Height && bytes.Equal(fb.Pix, other.Pix)
}

// DoubleBuffer holds the buffer workers render into and the buffer readers
// see. Swap and Resize take the write lock; View holds the read lock for the
// duration of its callback, so a reader never observes a half-swapped pair.
type DoubleBuffer struct {
	mu      sync.RWMutex
	buffers [2]*FrameBuffer
	write   int // index of the write buffer
}

// NewDoubleBuffer allocates two frame buffers of the given size
func NewDoubleBuffer(width, height int) (*DoubleBuffer, error) {
	db := &DoubleBuffer{}
	if err := db.Resize(width, height); err != nil {
		return nil, err
	}
	return db, nil
}

// CurrentWrite returns the buffer the next frame is rendered into
func (db *DoubleBuffer) CurrentWrite() *FrameBuffer {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.buffers[db.write]
}

// CurrentRead returns the most recently completed frame
func (db *DoubleBuffer) CurrentRead() *FrameBuffer {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.buffers[1-db.write]
}

// Swap exchanges the read and write roles
func (db *DoubleBuffer) Swap() {
	db.mu.Lock()
	db.write = 1 - db.write
	db.mu.Unlock()
}

// Resize replaces both buffers with zeroed buffers of the new size
func (db *DoubleBuffer) Resize(width, height int) error {
	front, err := NewFrameBuffer(width, height)
	if err != nil {
		return err
	}
	back, err := NewFrameBuffer(width, height)
	if err != nil {
		return err
	}

	db.mu.Lock()
	db.buffers = [2]*FrameBuffer{front, back}
	db.write = 0
	db.mu.Unlock()
	return nil
}

// Size returns the current buffer dimensions
func (db *DoubleBuffer) Size() (width, height int) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.buffers[0].Width, db.buffers[0].Height
}

// View calls fn with the read buffer while holding the read lock.
// fn must not keep the buffer after returning.
func (db *DoubleBuffer) View(fn func(*FrameBuffer)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(db.buffers[1-db.write])
}
