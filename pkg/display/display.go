// Package display contains the sinks that consume rendered frames: an ebiten
// window, an ANSI terminal preview and a headless counter.
package display

import (
	"fmt"

	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

var (
	_ renderer.Sink = (*Window)(nil)
	_ renderer.Sink = (*Terminal)(nil)
	_ renderer.Sink = (*Headless)(nil)
)

// Status is what the window overlay shows about the latest frame
type Status struct {
	Scene  string
	Frame  int
	Time   float64
	Width  int
	Height int
	FPS    float64
}

// String formats the overlay line
func (s Status) String() string {
	line := fmt.Sprintf("frame %d  t=%.2fs  %dx%d", s.Frame, s.Time, s.Width, s.Height)
	if s.FPS > 0 {
		line += fmt.Sprintf("  %.1f fps", s.FPS)
	}
	if s.Scene != "" {
		line = s.Scene + "  " + line
	}
	return line
}
