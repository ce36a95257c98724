package media

import (
	"fmt"
	"strings"
)

// The compositing request is described as a list of typed operations and
// rendered to ffmpeg filter syntax in one place, so parameter
// substitution and text escaping live in a single well-tested path
// instead of ad-hoc string building at each call site.

// Op is one operation in a filter chain.
type Op interface {
	filter() string
}

// Scale resizes a stream. Fill scales to cover the target box while
// keeping the source aspect ratio (pair it with Crop).
type Scale struct {
	W, H int
	Fill bool
}

func (s Scale) filter() string {
	if s.Fill {
		return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", s.W, s.H)
	}
	return fmt.Sprintf("scale=%d:%d", s.W, s.H)
}

// Crop center-crops a stream to exactly W×H.
type Crop struct {
	W, H int
}

func (c Crop) filter() string {
	return fmt.Sprintf("crop=%d:%d", c.W, c.H)
}

// Overlay composites the second chain input on top of the first at a
// fixed position.
type Overlay struct {
	X, Y int
}

func (o Overlay) filter() string {
	return fmt.Sprintf("overlay=%d:%d", o.X, o.Y)
}

// DrawText burns a single horizontally centered text line into the
// video at a fixed vertical position. AppearAt < 0 means always
// visible; AppearAt >= 0 with FadeDur == 0 is a hard visibility gate,
// and FadeDur > 0 adds an alpha ramp completing over FadeDur seconds.
type DrawText struct {
	Text        string
	FontFile    string
	Size        int
	Color       string
	BorderW     int
	BorderColor string
	Y           int
	AppearAt    float64
	FadeDur     float64
}

func (d DrawText) filter() string {
	parts := []string{
		"fontfile='" + EscapeDrawtext(d.FontFile) + "'",
		"text='" + EscapeDrawtext(d.Text) + "'",
		"fontcolor=" + d.Color,
		fmt.Sprintf("fontsize=%d", d.Size),
		"x=(w-text_w)/2",
		fmt.Sprintf("y=%d", d.Y),
		fmt.Sprintf("borderw=%d", d.BorderW),
		"bordercolor=" + d.BorderColor,
	}
	if d.AppearAt >= 0 {
		parts = append(parts, fmt.Sprintf("enable='gte(t,%g)'", d.AppearAt))
		if d.FadeDur > 0 {
			parts = append(parts, fmt.Sprintf(
				"alpha='if(lt(t,%g),0,if(lt(t,%g),(t-%g)/%g,1))'",
				d.AppearAt, d.AppearAt+d.FadeDur, d.AppearAt, d.FadeDur))
		}
	}
	return "drawtext=" + strings.Join(parts, ":")
}

// ATrim cuts an audio stream to [0, Duration] and resets timestamps to
// start at zero.
type ATrim struct {
	Duration float64
}

func (a ATrim) filter() string {
	return fmt.Sprintf("atrim=0:%g,asetpts=PTS-STARTPTS", a.Duration)
}

// AMix blends audio inputs evenly, stopping at the shortest input.
type AMix struct {
	Inputs            int
	DropoutTransition int
}

func (a AMix) filter() string {
	return fmt.Sprintf("amix=inputs=%d:duration=shortest:dropout_transition=%d", a.Inputs, a.DropoutTransition)
}

// Chain renders ops as a simple -vf filter chain.
func Chain(ops ...Op) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.filter()
	}
	return strings.Join(parts, ",")
}

// Graph accumulates labeled chains for a -filter_complex expression.
type Graph struct {
	chains []string
}

// Add appends one chain reading from the given input labels and writing
// the output label.
func (g *Graph) Add(inputs []string, output string, ops ...Op) {
	var b strings.Builder
	for _, in := range inputs {
		b.WriteString("[" + in + "]")
	}
	b.WriteString(Chain(ops...))
	b.WriteString("[" + output + "]")
	g.chains = append(g.chains, b.String())
}

func (g *Graph) String() string {
	return strings.Join(g.chains, ";")
}

var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\\'`,
	`:`, `\:`,
)

// EscapeDrawtext escapes backslash, single-quote and colon so
// model-generated text cannot corrupt the drawtext filter expression.
func EscapeDrawtext(s string) string {
	return drawtextEscaper.Replace(s)
}

// WrapText greedily packs words onto lines of at most maxChars
// characters (counting a single interstitial space). A single word
// longer than the limit is placed alone on its own line, never split.
func WrapText(text string, maxChars int) []string {
	words := strings.Split(text, " ")
	var lines []string
	current := ""

	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if len(test) <= maxChars {
			current = test
		} else {
			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
