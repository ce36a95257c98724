package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/media"
	"github.com/reelsmith/api/internal/render"
	"github.com/reelsmith/api/internal/service"
)

// reelgen runs a single pipeline from the command line, without the
// HTTP server. Useful for cron jobs and local iteration on prompts.
func main() {
	_ = godotenv.Load()

	reelType := flag.String("type", "coding-challenge", "reel type: coding-challenge or read-caption")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	openaiClient := client.NewOpenAIClient(&cfg.OpenAI)
	ffmpeg := media.New(&cfg.Media)

	ctx := context.Background()

	switch *reelType {
	case "coding-challenge":
		svc := service.NewCodingChallengeService(cfg, openaiClient, render.NewCardRenderer(&cfg.Card), ffmpeg)
		result, err := svc.Generate(ctx)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Println("Done.")
		fmt.Printf("  folder:  %s\n", result.OutputDir)
		fmt.Printf("  video:   %s\n", result.VideoPath)
		fmt.Printf("  caption: %s\n", result.CaptionPath)

	case "read-caption":
		svc := service.NewReadCaptionService(cfg, openaiClient, ffmpeg)
		result, err := svc.Generate(ctx)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Println("Done.")
		fmt.Printf("  folder:  %s\n", result.OutputFolder)
		fmt.Printf("  video:   %s\n", result.VideoPath)
		fmt.Printf("  caption: %s\n", result.CaptionPath)

	default:
		log.Fatalf("unknown reel type: %s (want coding-challenge or read-caption)", *reelType)
	}
}
