package handler

import (
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/reelsmith/api/internal/service"
	"github.com/reelsmith/api/pkg/response"
)

// GenerateHandler exposes the two reel pipelines as synchronous
// request/response endpoints.
type GenerateHandler struct {
	coding     *service.CodingChallengeService
	caption    *service.ReadCaptionService
	outputRoot string
}

func NewGenerateHandler(coding *service.CodingChallengeService, caption *service.ReadCaptionService, outputRoot string) *GenerateHandler {
	return &GenerateHandler{
		coding:     coding,
		caption:    caption,
		outputRoot: outputRoot,
	}
}

// CodingChallenge handles POST /api/generate/coding-challenge
func (h *GenerateHandler) CodingChallenge(c *fiber.Ctx) error {
	log.Println("[api] generating coding challenge reel...")

	result, err := h.coding.Generate(c.Context())
	if err != nil {
		log.Printf("[api] coding challenge reel failed: %v", err)
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, "Coding challenge reel generated successfully", fiber.Map{
		"outputDir":   h.rel(result.OutputDir),
		"videoPath":   h.rel(result.VideoPath),
		"videoUrl":    h.fileURL(c, result.VideoPath),
		"captionPath": h.rel(result.CaptionPath),
		"captionUrl":  h.fileURL(c, result.CaptionPath),
		"imagePath":   h.rel(result.ImagePath),
		"imageUrl":    h.fileURL(c, result.ImagePath),
		"snippet": fiber.Map{
			"difficulty": result.Snippet.Difficulty,
			"code":       result.Snippet.Code,
			"caption":    result.Snippet.Caption,
		},
	})
}

// ReadCaption handles POST /api/generate/read-caption
func (h *GenerateHandler) ReadCaption(c *fiber.Ctx) error {
	log.Println("[api] generating read caption reel...")

	result, err := h.caption.Generate(c.Context())
	if err != nil {
		log.Printf("[api] read caption reel failed: %v", err)
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, "Read caption reel generated successfully", fiber.Map{
		"outputFolder": h.rel(result.OutputFolder),
		"videoPath":    h.rel(result.VideoPath),
		"videoUrl":     h.fileURL(c, result.VideoPath),
		"captionPath":  h.rel(result.CaptionPath),
		"captionUrl":   h.fileURL(c, result.CaptionPath),
		"hook":         result.Hook,
		"caption":      result.Caption,
		"cta":          result.CTA,
	})
}

// rel normalizes an artifact path relative to the served output root.
func (h *GenerateHandler) rel(path string) string {
	r, err := filepath.Rel(h.outputRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

// fileURL builds the public URL for an artifact served by the static
// file handler.
func (h *GenerateHandler) fileURL(c *fiber.Ctx, path string) string {
	return c.BaseURL() + "/" + h.rel(path)
}
