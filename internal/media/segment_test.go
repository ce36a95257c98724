package media

import "testing"

func TestStartOffset(t *testing.T) {
	// Full range: rnd() == 1 lands at the latest valid start.
	if got := startOffset(60, 10, func() float64 { return 1 }); got != 50 {
		t.Errorf("got %g, want 50", got)
	}
	if got := startOffset(60, 10, func() float64 { return 0 }); got != 0 {
		t.Errorf("got %g, want 0", got)
	}
	// Source shorter than target clamps to 0.
	if got := startOffset(5, 10, func() float64 { return 1 }); got != 0 {
		t.Errorf("short source: got %g, want 0", got)
	}
	if got := startOffset(10, 10, func() float64 { return 0.7 }); got != 0 {
		t.Errorf("equal durations: got %g, want 0", got)
	}
}

func TestLoopCount(t *testing.T) {
	tests := []struct {
		source, target float64
		want           int
	}{
		{2.5, 7, 3},
		{7, 7, 1},
		{3.5, 7, 2},
		{6.9, 7, 2},
	}
	for _, tt := range tests {
		if got := loopCount(tt.source, tt.target); got != tt.want {
			t.Errorf("loopCount(%g, %g) = %d, want %d", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestConcatEntry(t *testing.T) {
	if got := concatEntry("/tmp/full.mp4"); got != "file '/tmp/full.mp4'" {
		t.Errorf("got %q", got)
	}
	if got := concatEntry("/tmp/it's.mp4"); got != `file '/tmp/it'\''s.mp4'` {
		t.Errorf("quoted path: got %q", got)
	}
}

func TestFillScaleCrop(t *testing.T) {
	want := "scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920"
	if got := fillScaleCrop(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFFSeconds(t *testing.T) {
	if got := ffSeconds(10); got != "10" {
		t.Errorf("got %q, want 10", got)
	}
	if got := ffSeconds(7.5); got != "7.5" {
		t.Errorf("got %q, want 7.5", got)
	}
}
