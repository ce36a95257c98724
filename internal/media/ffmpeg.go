package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/model"
)

// FFmpeg shells out to the ffmpeg/ffprobe binaries. Every invocation is
// a single awaited process; progress output is parsed for operator
// logging only and never drives control flow.
type FFmpeg struct {
	binPath   string
	probePath string
}

func New(cfg *config.MediaConfig) *FFmpeg {
	return &FFmpeg{
		binPath:   cfg.FFmpegPath,
		probePath: cfg.FFprobePath,
	}
}

// Duration returns the container duration of a media file in seconds.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, f.probePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return 0, &model.ProbeError{Path: path, Err: toolError(err, stderr.String())}
	}

	s := strings.TrimSpace(string(out))
	if s == "" || s == "N/A" {
		return 0, &model.ProbeError{Path: path}
	}

	dur, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &model.ProbeError{Path: path, Err: err}
	}
	return dur, nil
}

// run executes ffmpeg with the given args. When expectSeconds > 0 a
// progress pipe is attached and percentages are logged under label.
func (f *FFmpeg) run(ctx context.Context, label string, expectSeconds float64, args ...string) error {
	full := []string{"-y", "-hide_banner"}
	full = append(full, args...)
	if expectSeconds > 0 {
		full = append(full, "-progress", "pipe:1", "-nostats")
	}

	cmd := exec.CommandContext(ctx, f.binPath, full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if expectSeconds > 0 {
		cmd.Stdout = newProgressLogger(label, expectSeconds)
	}

	log.Printf("[%s] ffmpeg %s", label, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return toolError(err, stderr.String())
	}
	return nil
}

// toolError folds the tail of a tool's stderr into the returned error so
// the diagnostic survives propagation to the caller.
func toolError(err error, stderr string) error {
	diag := strings.TrimSpace(stderr)
	if diag == "" {
		return err
	}
	lines := strings.Split(diag, "\n")
	if len(lines) > 8 {
		lines = lines[len(lines)-8:]
	}
	return fmt.Errorf("%w: %s", err, strings.TrimSpace(strings.Join(lines, "\n")))
}

// ffSeconds formats a duration in seconds the way ffmpeg expects it on
// the command line (no trailing zeros).
func ffSeconds(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
