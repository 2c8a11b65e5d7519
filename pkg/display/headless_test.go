package display

import (
	"testing"
)

func TestHeadless_Present(t *testing.T) {
	sink := NewHeadless()

	red := solidFrame(t, 1, 3, 2, [4]byte{255, 0, 0, 255})
	if err := sink.Present(red); err != nil {
		t.Fatal(err)
	}
	redSum := sink.Checksum()

	if err := sink.Present(solidFrame(t, 2, 3, 2, [4]byte{0, 255, 0, 255})); err != nil {
		t.Fatal(err)
	}
	if sink.Checksum() == redSum {
		t.Error("Different frames should have different checksums")
	}

	if err := sink.Present(solidFrame(t, 3, 3, 2, [4]byte{255, 0, 0, 255})); err != nil {
		t.Fatal(err)
	}
	if sink.Checksum() != redSum {
		t.Error("Identical frames should have identical checksums")
	}

	if sink.Frames() != 3 {
		t.Errorf("Expected 3 frames, got %d", sink.Frames())
	}
	if w, h := sink.Size(); w != 3 || h != 2 {
		t.Errorf("Expected 3x2, got %dx%d", w, h)
	}
	if sink.LastTime() != 1.5 {
		t.Errorf("Expected last time 1.5, got %f", sink.LastTime())
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected string
	}{
		{"minimal", Status{Frame: 3, Time: 1.5, Width: 40, Height: 20}, "frame 3  t=1.50s  40x20"},
		{"with fps and scene", Status{Scene: "default", Frame: 10, Time: 0.25, Width: 400, Height: 225, FPS: 59.94},
			"default  frame 10  t=0.25s  400x225  59.9 fps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
