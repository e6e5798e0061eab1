// File: internal/lifecycle/sink.go
package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// DirSink writes artifacts as timestamped files under a directory, creating
// it on first use.
type DirSink struct {
	dir    string
	logger *zap.Logger

	now func() time.Time
}

// NewDirSink creates a sink writing into dir.
func NewDirSink(dir string, logger *zap.Logger) *DirSink {
	return &DirSink{
		dir:    dir,
		logger: logger.Named("sink"),
		now:    time.Now,
	}
}

// Attach writes the artifact to <dir>/<scenario>_<name>_<timestamp>.png with
// every filesystem-unsafe rune in the scenario name replaced.
func (s *DirSink) Attach(scenario, name, mime string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory %s: %w", s.dir, err)
	}

	stamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s%s",
		unsafeNameChars.ReplaceAllString(scenario, "_"),
		unsafeNameChars.ReplaceAllString(name, "_"),
		stamp,
		extensionFor(mime))
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	s.logger.Info("Artifact saved.", zap.String("path", path))
	return nil
}

func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "text/plain":
		return ".txt"
	default:
		return ".bin"
	}
}
