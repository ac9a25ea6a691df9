// Package quality maps the CLI's quality levels to the export formats the
// Dehancer Online API understands.
//
//	Level  | Format | Resolution               | Encoding
//	-------|--------|--------------------------|----------------
//	low    | web    | resized to 2160x2160     | JPEG 80%
//	medium | jpeg   | max resolution 3024x3024 | JPEG 100%
//	high   | tiff   | max resolution 3024x3024 | TIFF 16 bit
//
// The table is fixed by the service; the client never invents other
// combinations.
package quality

import (
	"fmt"
	"strings"
)

// ExportFormat is the wire value sent in export requests.
type ExportFormat string

const (
	// FormatWeb is optimised for web use.
	FormatWeb ExportFormat = "web"
	// FormatJPEG is the best-quality JPEG export.
	FormatJPEG ExportFormat = "jpeg"
	// FormatTIFF is the lossless 16-bit export.
	FormatTIFF ExportFormat = "tiff"
)

// Level is the user-facing quality selector.
type Level int

const (
	Low Level = iota
	Medium
	High
)

// String returns the CLI label for the level.
func (l Level) String() string {
	switch l {
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "low"
	}
}

// Format returns the export format for the level.
func (l Level) Format() ExportFormat {
	switch l {
	case Medium:
		return FormatJPEG
	case High:
		return FormatTIFF
	default:
		return FormatWeb
	}
}

// UnknownLevelError is returned when a quality label is not one of
// low/medium/high.
type UnknownLevelError struct {
	Label string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("quality: unknown quality level: %s", e.Label)
}

// ParseLevel converts a label into a Level, ignoring case and surrounding
// whitespace.
func ParseLevel(label string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return Low, &UnknownLevelError{Label: label}
	}
}
