package display

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

const (
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiReset      = "\x1b[0m"

	// upperHalfBlock paints the top half of a cell in the foreground color and
	// the bottom half in the background color, giving two pixels per cell
	upperHalfBlock = "▀"
)

// TerminalConfig controls the terminal preview
type TerminalConfig struct {
	// FD is checked with term.IsTerminal; when it is a terminal the preview
	// fits its current size. Use -1 for plain writers.
	FD int
	// Columns and Rows are used when FD is not a terminal
	Columns int
	Rows    int
	// Scaler resizes frames to the cell grid
	Scaler draw.Scaler
}

// DefaultTerminalConfig returns sensible default values
func DefaultTerminalConfig() TerminalConfig {
	return TerminalConfig{
		FD:      -1,
		Columns: 80,
		Rows:    24,
		Scaler:  draw.ApproxBiLinear,
	}
}

// Terminal renders frames as 24-bit ANSI half-block characters
type Terminal struct {
	out    io.Writer
	config TerminalConfig

	mu      sync.Mutex
	scaled  *image.RGBA
	buf     bytes.Buffer
	started bool
	frames  int
}

// NewTerminal creates a terminal sink writing to out
func NewTerminal(out io.Writer, config TerminalConfig) *Terminal {
	if config.Scaler == nil {
		config.Scaler = draw.ApproxBiLinear
	}
	if config.Columns < 1 {
		config.Columns = 80
	}
	if config.Rows < 2 {
		config.Rows = 24
	}
	return &Terminal{out: out, config: config}
}

// Present scales the frame to the terminal and redraws it in place
func (t *Terminal) Present(frame renderer.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	columns, rows := t.size()
	width, height := fitCells(frame.Buffer.Width, frame.Buffer.Height, columns, rows)

	if t.scaled == nil || t.scaled.Rect.Dx() != width || t.scaled.Rect.Dy() != height {
		t.scaled = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	src := frame.Buffer.Image()
	t.config.Scaler.Scale(t.scaled, t.scaled.Rect, src, src.Rect, draw.Src, nil)

	t.buf.Reset()
	if !t.started {
		t.buf.WriteString(ansiClear + ansiHideCursor)
		t.started = true
	}
	t.buf.WriteString(ansiHome)
	writeHalfBlocks(&t.buf, t.scaled)
	fmt.Fprintf(&t.buf, "frame %d  t=%.2fs%s\n", frame.Number, frame.Time, ansiReset)

	if _, err := t.out.Write(t.buf.Bytes()); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	t.frames++
	return nil
}

// Close restores the cursor
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return nil
	}
	_, err := io.WriteString(t.out, ansiReset+ansiShowCursor)
	return err
}

// Frames returns the number of frames drawn
func (t *Terminal) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

// size returns the usable cell grid, leaving one line for the status text
func (t *Terminal) size() (columns, rows int) {
	columns, rows = t.config.Columns, t.config.Rows
	if t.config.FD >= 0 && term.IsTerminal(t.config.FD) {
		if w, h, err := term.GetSize(t.config.FD); err == nil && w > 0 && h > 1 {
			columns, rows = w, h
		}
	}
	return columns, max(1, rows-1)
}

// fitCells returns the largest pixel grid with the frame's aspect ratio that
// fits in columns x rows half-block cells. Each cell holds two square pixels
// stacked vertically.
func fitCells(frameWidth, frameHeight, columns, rows int) (width, height int) {
	width = columns
	height = width * frameHeight / frameWidth
	if maxHeight := rows * 2; height > maxHeight {
		height = maxHeight
		width = height * frameWidth / frameHeight
	}
	return max(1, width), max(1, height)
}

// writeHalfBlocks emits two image rows per text line
func writeHalfBlocks(buf *bytes.Buffer, img *image.RGBA) {
	bounds := img.Rect
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.RGBAAt(x, y)
			fmt.Fprintf(buf, "\x1b[38;2;%d;%d;%dm", top.R, top.G, top.B)
			if y+1 < bounds.Max.Y {
				bottom := img.RGBAAt(x, y+1)
				fmt.Fprintf(buf, "\x1b[48;2;%d;%d;%dm", bottom.R, bottom.G, bottom.B)
			} else {
				buf.WriteString("\x1b[49m")
			}
			buf.WriteString(upperHalfBlock)
		}
		buf.WriteString(ansiReset + "\n")
	}
}
