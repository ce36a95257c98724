package media

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".flac": true,
}

// RandomAudioFile picks one file uniformly at random among the
// recognized audio files in dir. The caller decides whether an empty or
// missing directory is fatal.
func RandomAudioFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read audio folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}

	if len(files) == 0 {
		return "", fmt.Errorf("no audio files found in %s", dir)
	}

	return filepath.Join(dir, files[rand.Intn(len(files))]), nil
}
