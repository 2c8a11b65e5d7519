package renderer

// Frame is a completed image handed to a Sink
type Frame struct {
	Number int     // 1 for the first published frame
	Time   float64 // Scene time the frame was rendered at, in seconds
	Buffer *FrameBuffer
}

// Sink consumes completed frames. Present is called from the coordinator
// goroutine between frames; the buffer is only valid until Present returns,
// so a sink that needs the pixels later must copy them. Returning
// ErrSinkClosed stops the coordinator cleanly; any other error is fatal.
type Sink interface {
	Present(frame Frame) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(frame Frame) error

func (f SinkFunc) Present(frame Frame) error {
	return f(frame)
}
