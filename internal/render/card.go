package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"text/template"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/reelsmith/api/internal/config"
)

// CardRenderer rasterizes generated code into a fixed-resolution
// transparent "editor card" PNG via a headless browser page.
type CardRenderer struct {
	cfg *config.CardConfig
}

func NewCardRenderer(cfg *config.CardConfig) *CardRenderer {
	return &CardRenderer{cfg: cfg}
}

// Render highlights the code, lays it out in the card template, and
// screenshots an off-screen page at the target resolution into outPath.
// The browser handle is owned by the caller.
func (r *CardRenderer) Render(b *Browser, code, outPath string) error {
	markup, err := highlightCode(code)
	if err != nil {
		return err
	}

	html, err := buildCardHTML(cardData{
		CodeHTML: markup,
		Width:    r.cfg.Width,
		Height:   r.cfg.Height,
		Padding:  r.cfg.Padding,
		Frame:    r.cfg.Width - r.cfg.Padding*2,
		Font:     r.cfg.Font,
		FontSize: r.cfg.FontSize,
	})
	if err != nil {
		return err
	}

	tab, cancel := chromedp.NewContext(b.ctx)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var shot []byte
	err = chromedp.Run(tab,
		chromedp.EmulateViewport(int64(r.cfg.Width), int64(r.cfg.Height), chromedp.EmulateScale(float64(r.cfg.Scale))),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Transparent default background so the PNG keeps its alpha
			if err := emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}).Do(ctx); err != nil {
				return err
			}
			var err error
			shot, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithFromSurface(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to render snippet card: %w", err)
	}

	if err := os.WriteFile(outPath, shot, 0644); err != nil {
		return fmt.Errorf("failed to write snippet image: %w", err)
	}
	return nil
}

type cardData struct {
	CodeHTML string
	Width    int
	Height   int
	Padding  int
	Frame    int
	Font     string
	FontSize int
}

var cardTemplate = template.Must(template.New("card").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>snippet</title>
  <style>
    :root {
      --frame-radius: 16px;
      --frame-bg: #0b1120;
      --chrome-bg: linear-gradient(90deg, #0f172a 0%, #111827 100%);
      --chrome-border: rgba(148, 163, 184, 0.16);
      --shadow: 0 30px 60px rgba(2, 6, 23, 0.6);
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      width: {{.Width}}px;
      height: {{.Height}}px;
      display: flex;
      align-items: center;
      justify-content: center;
      flex-direction: column;
      gap: 60px;
      background: transparent;
      font-family: {{.Font}};
      padding: {{.Padding}}px;
    }
    .header {
      text-align: center;
      color: #e2e8f0;
      padding: 30px 60px;
    }
    .header h1 {
      font-size: 72px;
      font-weight: 700;
      margin: 0;
      letter-spacing: -0.02em;
      text-shadow:
        -2px -2px 0 #000,
        2px -2px 0 #000,
        -2px 2px 0 #000,
        2px 2px 0 #000,
        0 0 20px rgba(0, 0, 0, 0.5);
    }
    .frame {
      margin-top: 50px;
      width: {{.Frame}}px;
      background: var(--frame-bg);
      border-radius: var(--frame-radius);
      box-shadow: var(--shadow);
      overflow: hidden;
      border: 1px solid rgba(148, 163, 184, 0.18);
      backdrop-filter: blur(10px);
    }
    .chrome {
      height: 50px;
      display: flex;
      align-items: center;
      padding: 0 20px;
      gap: 16px;
      background: var(--chrome-bg);
      border-bottom: 1px solid var(--chrome-border);
      color: #cbd5f5;
      font-size: 14px;
      letter-spacing: 0.06em;
      text-transform: uppercase;
    }
    .dots { display: flex; gap: 10px; }
    .dot { width: 14px; height: 14px; border-radius: 999px; }
    .dot.red { background: #f87171; }
    .dot.yellow { background: #facc15; }
    .dot.green { background: #4ade80; }
    .code {
      padding: 40px;
      font-size: {{.FontSize}}px;
      line-height: 1.6;
      color: #e2e8f0;
    }
    .code pre,
    .code code {
      margin: 0;
      white-space: pre;
      font-family: inherit;
    }
    .code pre {
      background: transparent !important;
      padding: 0 !important;
    }
  </style>
</head>
<body>
  <div class="header">
    <h1>What Is The Output?</h1>
  </div>
  <div class="frame">
    <div class="chrome">
      <div class="dots">
        <span class="dot red"></span>
        <span class="dot yellow"></span>
        <span class="dot green"></span>
      </div>
    </div>
    <div class="code">
      {{.CodeHTML}}
    </div>
  </div>
</body>
</html>`))

// buildCardHTML fills the fixed card layout with the highlighted code
// markup. The markup is trusted output of the highlighter, inserted raw.
func buildCardHTML(d cardData) (string, error) {
	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("failed to build card HTML: %w", err)
	}
	return buf.String(), nil
}
