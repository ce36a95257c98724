package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/media"
	"github.com/reelsmith/api/internal/model"
	"github.com/reelsmith/api/internal/render"
)

// CodingChallengeService runs the coding-challenge pipeline: generate a
// snippet, render it to a card image, cut a random b-roll segment, and
// composite card, difficulty label and audio into the final reel. One
// run per call, strictly sequential, no retries.
type CodingChallengeService struct {
	cfg      *config.Config
	openai   *client.OpenAIClient
	renderer *render.CardRenderer
	ffmpeg   *media.FFmpeg
}

func NewCodingChallengeService(cfg *config.Config, openai *client.OpenAIClient, renderer *render.CardRenderer, ffmpeg *media.FFmpeg) *CodingChallengeService {
	return &CodingChallengeService{
		cfg:      cfg,
		openai:   openai,
		renderer: renderer,
		ffmpeg:   ffmpeg,
	}
}

// Generate runs one coding-challenge reel to completion. The workspace
// is retained on failure for inspection.
func (s *CodingChallengeService) Generate(ctx context.Context) (*model.CodingChallengeResult, error) {
	// Preconditions, checked before any file is written.
	if !s.openai.IsConfigured() {
		return nil, model.NewConfigError("missing OPENAI_API_KEY")
	}
	if _, err := os.Stat(s.cfg.Media.BRollPath); err != nil {
		return nil, model.NewConfigError("b-roll video not found at: %s", s.cfg.Media.BRollPath)
	}
	if _, err := os.Stat(s.cfg.Media.AudioDir); err != nil {
		return nil, model.NewConfigError("audio folder not found at: %s", s.cfg.Media.AudioDir)
	}

	outputDir := filepath.Join(s.cfg.Media.OutputDir, "output_"+time.Now().Format("20060102_150405"))
	imagePath := filepath.Join(outputDir, "snippet.png")
	segmentPath := filepath.Join(outputDir, "broll_segment.mp4")
	videoPath := filepath.Join(outputDir, "reel.mp4")
	captionPath := filepath.Join(outputDir, "caption.txt")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	log.Printf("[coding] output directory: %s", outputDir)

	browser, err := render.LaunchBrowser(ctx)
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	snippet, err := s.generateSnippet(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.renderer.Render(browser, snippet.Code, imagePath); err != nil {
		return nil, err
	}
	log.Printf("[coding] rendered: %s", imagePath)

	duration := s.cfg.Media.ReelSeconds
	if err := s.ffmpeg.ExtractRandomSegment(ctx, s.cfg.Media.BRollPath, segmentPath, duration); err != nil {
		return nil, err
	}

	audioPath, err := media.RandomAudioFile(s.cfg.Media.AudioDir)
	if err != nil {
		return nil, err
	}
	log.Printf("[coding] selected audio: %s", filepath.Base(audioPath))

	err = s.ffmpeg.ComposeCodeReel(ctx, media.CodeReel{
		Segment:    segmentPath,
		CardImage:  imagePath,
		Audio:      audioPath,
		Output:     videoPath,
		Duration:   duration,
		Difficulty: snippet.Difficulty,
		AppearAt:   s.cfg.Media.LevelAppearTime,
		FontFile:   s.cfg.Media.LevelFontFile,
	})
	if err != nil {
		return nil, err
	}

	caption := formatCodingCaption(snippet, filepath.Base(audioPath))
	if err := os.WriteFile(captionPath, []byte(caption), 0644); err != nil {
		return nil, fmt.Errorf("failed to write caption: %w", err)
	}
	log.Printf("[coding] caption saved: %s", captionPath)

	return &model.CodingChallengeResult{
		OutputDir:   outputDir,
		VideoPath:   videoPath,
		CaptionPath: captionPath,
		ImagePath:   imagePath,
		SegmentPath: segmentPath,
		AudioPath:   audioPath,
		Snippet:     *snippet,
	}, nil
}

func (s *CodingChallengeService) generateSnippet(ctx context.Context) (*model.CodeSnippet, error) {
	log.Println("[coding] generating snippet...")

	text, err := s.openai.ChatCompletion(ctx, codingChallengePrompt, client.ChatOptions{
		Model:       s.cfg.OpenAI.SnippetModel,
		Temperature: 0.9,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, fmt.Errorf("snippet generation failed: %w", err)
	}

	clean := stripCodeFences(text)

	var snippet model.CodeSnippet
	if err := json.Unmarshal([]byte(clean), &snippet); err != nil {
		return nil, &model.ParseError{Msg: "model output is not a valid snippet", Err: err}
	}
	return &snippet, nil
}

// stripCodeFences removes markdown code-fence wrapping the model often
// adds despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json\n", "")
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func formatCodingCaption(sn *model.CodeSnippet, audioName string) string {
	return "==================== REEL ====================\n" +
		"DIFFICULTY: " + sn.Difficulty + "\n\n" +
		"CODE:\n" + sn.Code + "\n\n" +
		"CAPTION:\n" + sn.Caption + "\n\n" +
		"AUDIO: " + audioName + "\n"
}
