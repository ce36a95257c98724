package media

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/reelsmith/api/internal/model"
)

// Reel output resolution, 9:16 portrait.
const (
	TargetWidth  = 1080
	TargetHeight = 1920
)

// startOffset picks a uniform random start in [0, total-target]. A
// source shorter than the target clamps to 0 rather than failing.
func startOffset(total, target float64, rnd func() float64) float64 {
	max := total - target
	if max < 0 {
		max = 0
	}
	return rnd() * max
}

// loopCount is the number of whole source repeats needed to cover the
// target duration.
func loopCount(source, target float64) int {
	return int(math.Ceil(target / source))
}

// concatEntry formats one line of an ffmpeg concat list, escaping
// single quotes in the path.
func concatEntry(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// fillScaleCrop scales to cover 1080×1920 and center-crops, regardless
// of the source aspect ratio.
func fillScaleCrop() string {
	return Chain(Scale{W: TargetWidth, H: TargetHeight, Fill: true}, Crop{W: TargetWidth, H: TargetHeight})
}

// ExtractRandomSegment cuts exactly target seconds from a random offset
// of the source and re-encodes to 1080×1920 in a single pass. Used by
// the coding-challenge pipeline, which never loops short sources.
func (f *FFmpeg) ExtractRandomSegment(ctx context.Context, input, output string, target float64) error {
	total, err := f.Duration(ctx, input)
	if err != nil {
		return err
	}

	start := startOffset(total, target, rand.Float64)
	log.Printf("[extract] b-roll duration: %.2fs, extracting %gs from %.2fs", total, target, start)

	args := []string{
		"-ss", fmt.Sprintf("%.3f", start),
		"-i", input,
		"-t", ffSeconds(target),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-vf", fillScaleCrop(),
		"-preset", "medium",
		"-crf", "23",
		output,
	}
	if err := f.run(ctx, "extract", target, args...); err != nil {
		return &model.ExtractError{Msg: "failed to extract video segment", Err: err}
	}
	return nil
}

// ExtractSegment cuts [start, start+duration) from the source without
// resizing.
func (f *FFmpeg) ExtractSegment(ctx context.Context, input string, start, duration float64, output string) error {
	args := []string{
		"-ss", fmt.Sprintf("%.3f", start),
		"-i", input,
		"-t", ffSeconds(duration),
		"-c:v", "libx264",
		"-c:a", "aac",
		output,
	}
	if err := f.run(ctx, "extract", duration, args...); err != nil {
		return &model.ExtractError{Msg: "failed to extract segment", Err: err}
	}
	return nil
}

// LoopSegment repeats the source via concat until it covers target
// seconds, then hard-trims to exactly target. The concat list file is
// written into scratchDir.
func (f *FFmpeg) LoopSegment(ctx context.Context, input string, target float64, output, scratchDir string) error {
	source, err := f.Duration(ctx, input)
	if err != nil {
		return err
	}

	n := loopCount(source, target)
	lines := make([]string, n)
	entry := concatEntry(input)
	for i := range lines {
		lines[i] = entry
	}

	concatFile := filepath.Join(scratchDir, "concat.txt")
	if err := os.WriteFile(concatFile, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return &model.ExtractError{Msg: "failed to write concat list", Err: err}
	}

	log.Printf("[loop] source %.2fs < target %gs, looping %d times", source, target, n)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", concatFile,
		"-t", ffSeconds(target),
		"-c:v", "libx264",
		"-c:a", "aac",
		output,
	}
	if err := f.run(ctx, "loop", target, args...); err != nil {
		return &model.ExtractError{Msg: "failed to loop video", Err: err}
	}
	return nil
}

// ResizePortrait re-encodes the input to exactly 1080×1920 using
// scale-then-center-crop.
func (f *FFmpeg) ResizePortrait(ctx context.Context, input, output string) error {
	args := []string{
		"-i", input,
		"-vf", fillScaleCrop(),
		"-c:v", "libx264",
		"-c:a", "aac",
		output,
	}
	if err := f.run(ctx, "resize", 0, args...); err != nil {
		return &model.ExtractError{Msg: "failed to resize segment", Err: err}
	}
	return nil
}
