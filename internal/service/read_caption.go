package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/media"
	"github.com/reelsmith/api/internal/model"
)

// ReadCaptionService runs the read-caption pipeline: cut (or loop) a
// b-roll segment to the target length, resize to portrait, generate a
// hook bundle, and burn the wrapped hook text into the video with an
// optional background-audio mix.
type ReadCaptionService struct {
	cfg    *config.Config
	openai *client.OpenAIClient
	ffmpeg *media.FFmpeg
}

func NewReadCaptionService(cfg *config.Config, openai *client.OpenAIClient, ffmpeg *media.FFmpeg) *ReadCaptionService {
	return &ReadCaptionService{
		cfg:    cfg,
		openai: openai,
		ffmpeg: ffmpeg,
	}
}

// Generate runs one read-caption reel to completion. The scratch
// directory is removed on every exit path; the named output folder, if
// already created, is left intact.
func (s *ReadCaptionService) Generate(ctx context.Context) (*model.ReadCaptionResult, error) {
	input := s.cfg.Media.BRollPath
	if _, err := os.Stat(input); err != nil {
		return nil, model.NewConfigError("video file not found: %s", input)
	}

	// Background music is optional here: a missing or empty audio
	// directory downgrades to a reel without mixing.
	audioFile, err := media.RandomAudioFile(s.cfg.Media.AudioDir)
	if err != nil {
		log.Printf("[caption] warning: %v, proceeding without background music", err)
		audioFile = ""
	} else {
		log.Printf("[caption] selected audio: %s", filepath.Base(audioFile))
	}

	target := s.cfg.Media.CaptionReelSeconds

	duration, err := s.ffmpeg.Duration(ctx, input)
	if err != nil {
		return nil, err
	}
	log.Printf("[caption] video duration: %.2f seconds", duration)

	scratch := filepath.Join(os.TempDir(), "video-reel-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	tempSegment := filepath.Join(scratch, "segment.mp4")
	tempResized := filepath.Join(scratch, "resized.mp4")

	if duration < target {
		log.Printf("[caption] video is shorter than %g seconds, will loop to fill", target)
		tempFull := filepath.Join(scratch, "full.mp4")
		if err := s.ffmpeg.ExtractSegment(ctx, input, 0, duration, tempFull); err != nil {
			return nil, err
		}
		if err := s.ffmpeg.LoopSegment(ctx, tempFull, target, tempSegment, scratch); err != nil {
			return nil, err
		}
	} else {
		start := rand.Float64() * (duration - target)
		log.Printf("[caption] extracting segment starting at %.2f seconds", start)
		if err := s.ffmpeg.ExtractSegment(ctx, input, start, target, tempSegment); err != nil {
			return nil, err
		}
	}

	log.Printf("[caption] resizing to 9:16 aspect ratio (%dx%d)", media.TargetWidth, media.TargetHeight)
	if err := s.ffmpeg.ResizePortrait(ctx, tempSegment, tempResized); err != nil {
		return nil, err
	}

	outputFolder := filepath.Join(s.cfg.Media.OutputDir, "output_"+time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(outputFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}
	outputPath := filepath.Join(outputFolder, "reel.mp4")

	bundle, err := s.generateHookBundle(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("[caption] hook: %s", bundle.Hook)

	err = s.ffmpeg.ComposeCaptionReel(ctx, media.CaptionReel{
		Segment:  tempResized,
		Audio:    audioFile,
		Output:   outputPath,
		Duration: target,
		Hook:     bundle.Hook,
		FontFile: s.cfg.Media.CaptionFontFile,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[caption] video exported: %s", outputPath)

	captionPath := filepath.Join(outputFolder, "caption.txt")
	caption := bundle.Hook + "\n\n" + bundle.Caption + "\n\n" + bundle.CTA
	if err := os.WriteFile(captionPath, []byte(caption), 0644); err != nil {
		return nil, fmt.Errorf("failed to write caption: %w", err)
	}

	return &model.ReadCaptionResult{
		OutputFolder: outputFolder,
		VideoPath:    outputPath,
		CaptionPath:  captionPath,
		Hook:         bundle.Hook,
		Caption:      bundle.Caption,
		CTA:          bundle.CTA,
	}, nil
}

// Strict output schema for the hook bundle; the API rejects responses
// that do not match.
var hookBundleSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"hook": {"type": "string", "description": "Curiosity hook ending with (Read caption), no emojis"},
		"caption": {"type": "string", "description": "Full long-form caption with emojis and numbered bullets"},
		"cta": {"type": "string", "description": "Comment keyword CTA line"}
	},
	"required": ["hook", "caption", "cta"],
	"additionalProperties": false
}`)

func (s *ReadCaptionService) generateHookBundle(ctx context.Context) (*model.HookBundle, error) {
	if !s.openai.IsConfigured() {
		return nil, model.NewConfigError("missing OPENAI_API_KEY")
	}

	log.Println("[caption] generating text and captions...")

	raw, err := s.openai.StructuredCompletion(ctx, hookPrompt+variationInstruction, "reel_caption", hookBundleSchema, client.ChatOptions{
		Model:       s.cfg.OpenAI.CaptionModel,
		Temperature: 0.9,
	})
	if err != nil {
		return nil, fmt.Errorf("caption generation failed: %w", err)
	}

	var bundle model.HookBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, &model.ParseError{Msg: "model output is not a valid caption bundle", Err: err}
	}
	return &bundle, nil
}
