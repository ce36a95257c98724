package media

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     []string
	}{
		{
			name:     "fits on one line",
			text:     "short hook",
			maxChars: 30,
			want:     []string{"short hook"},
		},
		{
			name:     "wraps at word boundary",
			text:     "this hook is long enough to wrap",
			maxChars: 15,
			want:     []string{"this hook is", "long enough to", "wrap"},
		},
		{
			name:     "overlong word alone on its line",
			text:     "a supercalifragilistic b",
			maxChars: 10,
			want:     []string{"a", "supercalifragilistic", "b"},
		},
		{
			name:     "exact fit",
			text:     "ab cd",
			maxChars: 5,
			want:     []string{"ab cd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.maxChars)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapTextPreservesWords(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog near the riverbank"
	lines := WrapText(text, 18)

	for i, line := range lines {
		if len(line) > 18 && strings.Contains(line, " ") {
			t.Errorf("line %d exceeds limit despite holding multiple words: %q", i, line)
		}
	}

	if joined := strings.Join(lines, " "); joined != text {
		t.Errorf("wrapping changed word sequence:\n got %q\nwant %q", joined, text)
	}
}

func TestEscapeDrawtext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain text`, `plain text`},
		{`it's here`, `it\\'s here`},
		{`ratio 3:1`, `ratio 3\:1`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := EscapeDrawtext(tt.in); got != tt.want {
			t.Errorf("EscapeDrawtext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDrawTextFilter(t *testing.T) {
	d := DrawText{
		Text:        "LEVEL: Medium",
		FontFile:    "/fonts/Arial Bold.ttf",
		Size:        42,
		Color:       "#818cf8",
		BorderW:     2,
		BorderColor: "black",
		Y:           840,
		AppearAt:    2,
		FadeDur:     0.3,
	}
	got := d.filter()

	for _, want := range []string{
		"drawtext=fontfile='/fonts/Arial Bold.ttf'",
		"text='LEVEL\\: Medium'",
		"fontcolor=#818cf8",
		"fontsize=42",
		"x=(w-text_w)/2",
		"y=840",
		"borderw=2",
		"bordercolor=black",
		"enable='gte(t,2)'",
		"alpha='if(lt(t,2),0,if(lt(t,2.3),(t-2)/0.3,1))'",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("filter missing %q:\n%s", want, got)
		}
	}
}

func TestDrawTextAlwaysVisible(t *testing.T) {
	d := DrawText{Text: "hook", FontFile: "f.ttf", Size: 60, Color: "white", BorderColor: "black", AppearAt: -1}
	got := d.filter()
	if strings.Contains(got, "enable=") || strings.Contains(got, "alpha=") {
		t.Errorf("AppearAt < 0 must not gate visibility: %s", got)
	}
}

func TestDrawTextEscapesFontFile(t *testing.T) {
	d := DrawText{
		Text:        "hook",
		FontFile:    "/fonts/it's bold:v2.ttf",
		Size:        60,
		Color:       "white",
		BorderColor: "black",
		AppearAt:    -1,
	}
	got := d.filter()
	if !strings.Contains(got, `fontfile='/fonts/it\\'s bold\:v2.ttf'`) {
		t.Errorf("font path not escaped: %s", got)
	}
}

func TestDrawTextHardGate(t *testing.T) {
	d := DrawText{Text: "(Read caption)", FontFile: "f.ttf", Size: 40, Color: "white", BorderColor: "black", AppearAt: 4}
	got := d.filter()
	if !strings.Contains(got, "enable='gte(t,4)'") {
		t.Errorf("expected visibility gate at 4s: %s", got)
	}
	if strings.Contains(got, "alpha=") {
		t.Errorf("FadeDur 0 must not add an alpha ramp: %s", got)
	}
}

func TestScaleFilter(t *testing.T) {
	if got := (Scale{W: 1080, H: 1920, Fill: true}).filter(); got != "scale=1080:1920:force_original_aspect_ratio=increase" {
		t.Errorf("fill scale: got %q", got)
	}
	if got := (Scale{W: 1080, H: 1920}).filter(); got != "scale=1080:1920" {
		t.Errorf("plain scale: got %q", got)
	}
}

func TestAudioFilters(t *testing.T) {
	if got := (ATrim{Duration: 10}).filter(); got != "atrim=0:10,asetpts=PTS-STARTPTS" {
		t.Errorf("atrim: got %q", got)
	}
	if got := (AMix{Inputs: 2, DropoutTransition: 2}).filter(); got != "amix=inputs=2:duration=shortest:dropout_transition=2" {
		t.Errorf("amix: got %q", got)
	}
}

func TestGraph(t *testing.T) {
	var g Graph
	g.Add([]string{"1:v"}, "overlay", Scale{W: 1080, H: 1920})
	g.Add([]string{"0:v", "overlay"}, "video", Overlay{X: 0, Y: 0})

	want := "[1:v]scale=1080:1920[overlay];[0:v][overlay]overlay=0:0[video]"
	if got := g.String(); got != want {
		t.Errorf("graph:\n got %s\nwant %s", got, want)
	}
}

func TestChain(t *testing.T) {
	got := Chain(Scale{W: 1080, H: 1920, Fill: true}, Crop{W: 1080, H: 1920})
	want := "scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920"
	if got != want {
		t.Errorf("chain: got %q, want %q", got, want)
	}
}
