package media

import (
	"context"
	"log"

	"github.com/reelsmith/api/internal/model"
)

// Vertical position of the difficulty label, between the card title and
// the code frame.
const levelTextY = 840

// Difficulty label fade-in ramp length in seconds.
const levelFadeDur = 0.3

// Time at which the "(Read caption)" subtext becomes visible.
const subAppearTime = 4.0

// Read-caption burn-in layout.
const (
	hookFontSize    = 60
	hookLineGap     = 20
	hookWrapChars   = 30
	subFontSize     = 40
	subLineGap      = 15
	subWrapChars    = 25
	hookGroupOffset = -100 // shift the text block up from true center
	hookSubSpacing  = 80
)

// CodeReel describes the coding-challenge composition: card overlay,
// fading difficulty label, and a trimmed audio track.
type CodeReel struct {
	Segment    string
	CardImage  string
	Audio      string
	Output     string
	Duration   float64
	Difficulty string
	AppearAt   float64
	FontFile   string
}

// codeReelArgs builds the full ffmpeg invocation for a coding-challenge
// composition.
func codeReelArgs(o CodeReel) []string {
	var g Graph
	g.Add([]string{"1:v"}, "overlay", Scale{W: TargetWidth, H: TargetHeight})
	g.Add([]string{"0:v", "overlay"}, "video_base", Overlay{X: 0, Y: 0})
	g.Add([]string{"video_base"}, "video", DrawText{
		Text:        "LEVEL: " + o.Difficulty,
		FontFile:    o.FontFile,
		Size:        42,
		Color:       "#818cf8",
		BorderW:     2,
		BorderColor: "black",
		Y:           levelTextY,
		AppearAt:    o.AppearAt,
		FadeDur:     levelFadeDur,
	})
	g.Add([]string{"2:a"}, "audio", ATrim{Duration: o.Duration})

	return []string{
		"-i", o.Segment,
		"-i", o.CardImage,
		"-i", o.Audio,
		"-filter_complex", g.String(),
		"-map", "[video]",
		"-map", "[audio]",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-b:a", "192k",
		"-t", ffSeconds(o.Duration),
		"-pix_fmt", "yuv420p",
		"-preset", "medium",
		"-crf", "23",
		"-shortest",
		o.Output,
	}
}

// ComposeCodeReel overlays the rendered card on every frame, burns in
// the difficulty label with an alpha ramp, and mixes in the selected
// audio trimmed to the reel duration.
func (f *FFmpeg) ComposeCodeReel(ctx context.Context, o CodeReel) error {
	if err := f.run(ctx, "compose", o.Duration, codeReelArgs(o)...); err != nil {
		return &model.ComposeError{Msg: "failed to overlay code card on video", Err: err}
	}
	return nil
}

// CaptionReel describes the read-caption composition: wrapped hook
// text, a gated subtext, and an optional background-audio mix. Audio
// may be empty, in which case the segment's own audio passes through.
type CaptionReel struct {
	Segment  string
	Audio    string
	Output   string
	Duration float64
	Hook     string
	FontFile string
}

// captionReelArgs builds the full ffmpeg invocation for a read-caption
// composition. With no background track the segment's own audio passes
// through untouched; with one, the two audio streams are mixed.
func captionReelArgs(o CaptionReel) []string {
	hookLines := WrapText(o.Hook, hookWrapChars)
	subLines := WrapText("(Read caption)", subWrapChars)

	hookHeight := len(hookLines)*hookFontSize + (len(hookLines)-1)*hookLineGap
	hookStartY := TargetHeight/2 - hookHeight/2 + hookGroupOffset
	subStartY := hookStartY + hookHeight + hookSubSpacing

	var ops []Op
	for i, line := range hookLines {
		ops = append(ops, DrawText{
			Text:        line,
			FontFile:    o.FontFile,
			Size:        hookFontSize,
			Color:       "white",
			BorderW:     3,
			BorderColor: "black",
			Y:           hookStartY + i*(hookFontSize+hookLineGap),
			AppearAt:    -1,
		})
	}
	for i, line := range subLines {
		ops = append(ops, DrawText{
			Text:        line,
			FontFile:    o.FontFile,
			Size:        subFontSize,
			Color:       "white",
			BorderW:     2,
			BorderColor: "black",
			Y:           subStartY + i*(subFontSize+subLineGap),
			AppearAt:    subAppearTime,
		})
	}

	args := []string{"-i", o.Segment}
	if o.Audio != "" {
		args = append(args, "-i", o.Audio)
	}
	args = append(args,
		"-vf", Chain(ops...),
		"-c:v", "libx264",
		"-preset", "medium",
		"-b:v", "8000k",
		"-r", "24",
	)
	if o.Audio != "" {
		var g Graph
		g.Add([]string{"0:a", "1:a"}, "aout", AMix{Inputs: 2, DropoutTransition: 2})
		args = append(args,
			"-filter_complex", g.String(),
			"-map", "0:v",
			"-map", "[aout]",
			"-c:a", "aac",
			"-b:a", "192k",
		)
	} else {
		args = append(args, "-c:a", "aac")
	}
	return append(args, o.Output)
}

// ComposeCaptionReel burns the wrapped hook headline and the
// "(Read caption)" subtext into the segment and optionally mixes a
// background track with the segment's audio.
func (f *FFmpeg) ComposeCaptionReel(ctx context.Context, o CaptionReel) error {
	for i, line := range WrapText(o.Hook, hookWrapChars) {
		log.Printf("[compose] hook line %d: %s", i+1, line)
	}

	if err := f.run(ctx, "compose", o.Duration, captionReelArgs(o)...); err != nil {
		return &model.ComposeError{Msg: "failed to burn captions into video", Err: err}
	}
	return nil
}
