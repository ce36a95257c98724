package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/handler"
	"github.com/reelsmith/api/internal/media"
	"github.com/reelsmith/api/internal/middleware"
	"github.com/reelsmith/api/internal/render"
	"github.com/reelsmith/api/internal/service"
)

// testApp holds all components needed for testing
type testApp struct {
	app *fiber.App
}

// testConfig builds a config with temp directories, no API credential
// and a b-roll path that does not exist. Tests mutate it before calling
// setupApp to reach the failure path they exercise.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Port: "3001"},
		OpenAI: config.OpenAIConfig{
			BaseURL:      "https://api.openai.com/v1",
			SnippetModel: "gpt-4o",
			CaptionModel: "gpt-4o-mini",
			Timeout:      5,
		},
		Media: config.MediaConfig{
			BRollPath:          filepath.Join(t.TempDir(), "bRoll.mov"),
			AudioDir:           t.TempDir(),
			OutputDir:          t.TempDir(),
			ReelSeconds:        10,
			CaptionReelSeconds: 7,
			LevelAppearTime:    2,
			LevelFontFile:      "font.ttf",
			CaptionFontFile:    "font.ttf",
			FFmpegPath:         "ffmpeg",
			FFprobePath:        "ffprobe",
		},
		Card: config.CardConfig{
			Width:    1080,
			Height:   1920,
			Scale:    1,
			Padding:  80,
			FontSize: 34,
		},
	}
}

// setupApp creates a Fiber app identical to main.go but without Redis,
// so the rate limiter is a pass-through.
func setupApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	openaiClient := client.NewOpenAIClient(&cfg.OpenAI)
	ffmpeg := media.New(&cfg.Media)
	cardRenderer := render.NewCardRenderer(&cfg.Card)

	codingService := service.NewCodingChallengeService(cfg, openaiClient, cardRenderer, ffmpeg)
	captionService := service.NewReadCaptionService(cfg, openaiClient, ffmpeg)

	generateHandler := handler.NewGenerateHandler(codingService, captionService, cfg.Media.OutputDir)
	rateLimiter := middleware.NewRateLimiter(nil)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"openai": openaiClient.IsConfigured(),
				"redis":  false,
			},
		})
	})

	api := app.Group("/api")
	generate := api.Group("/generate", rateLimiter.GenerateLimit(10000))
	generate.Post("/coding-challenge", generateHandler.CodingChallenge)
	generate.Post("/read-caption", generateHandler.ReadCaption)

	return &testApp{app: app}
}

// doRequest performs an HTTP request against the test app.
func doRequest(app *fiber.App, method, path string) (*http.Response, error) {
	req, err := http.NewRequest(method, path, nil)
	if err != nil {
		return nil, err
	}
	return app.Test(req, -1)
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
