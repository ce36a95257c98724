package model

// CodeSnippet is the structured content produced for a coding-challenge
// reel. Immutable once generated; the renderer consumes Code and the
// compositor consumes Difficulty.
type CodeSnippet struct {
	Code       string `json:"code"`
	Difficulty string `json:"difficulty"`
	Caption    string `json:"caption"`
}

// HookBundle is the structured content produced for a read-caption reel.
type HookBundle struct {
	Hook    string `json:"hook"`
	Caption string `json:"caption"`
	CTA     string `json:"cta"`
}

// CodingChallengeResult is the manifest returned by a successful
// coding-challenge run. Paths are as written on disk; the HTTP layer
// relativizes them against the served output root.
type CodingChallengeResult struct {
	OutputDir   string      `json:"outputDir"`
	VideoPath   string      `json:"videoPath"`
	CaptionPath string      `json:"captionPath"`
	ImagePath   string      `json:"imagePath"`
	SegmentPath string      `json:"segmentPath"`
	AudioPath   string      `json:"audioPath"`
	Snippet     CodeSnippet `json:"snippet"`
}

// ReadCaptionResult is the manifest returned by a successful
// read-caption run.
type ReadCaptionResult struct {
	OutputFolder string `json:"outputFolder"`
	VideoPath    string `json:"videoPath"`
	CaptionPath  string `json:"captionPath"`
	Hook         string `json:"hook"`
	Caption      string `json:"caption"`
	CTA          string `json:"cta"`
}
