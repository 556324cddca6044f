// Package attachment renders the preview text of an image picked for upload
package attachment

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultText    = "Drag & drop an image or click to browse"
	DefaultSubtext = "Supports JPG, PNG, GIF up to 10MB"
)

// Preview is the two-line description shown in the upload area
type Preview struct {
	Path    string `json:"path,omitempty"`
	Text    string `json:"text"`
	Subtext string `json:"subtext"`
}

// Default returns the placeholder preview shown when nothing is attached
func Default() Preview {
	return Preview{Text: DefaultText, Subtext: DefaultSubtext}
}

// Attached reports whether the preview describes a file
func (p Preview) Attached() bool {
	return p.Path != ""
}

// ForFile describes the file at path by name and size in megabytes
func ForFile(path string) (Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Default(), fmt.Errorf("reading attachment: %w", err)
	}
	if info.IsDir() {
		return Default(), fmt.Errorf("attachment %s is a directory", path)
	}
	return Preview{
		Path:    path,
		Text:    filepath.Base(path),
		Subtext: FormatSize(info.Size()),
	}, nil
}

// ForDrop describes the first of the dropped files; an empty drop keeps the default
func ForDrop(paths []string) (Preview, error) {
	if len(paths) == 0 {
		return Default(), nil
	}
	return ForFile(paths[0])
}

// FormatSize renders a byte count as megabytes with two decimals
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}
