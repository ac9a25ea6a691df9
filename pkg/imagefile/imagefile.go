// Package imagefile holds the file-level helpers around image inputs and
// outputs: format checks, filename handling, and result downloads.
package imagefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ValidTypes maps the supported image file extensions to their MIME types.
// This is the set the upload endpoint accepts.
var ValidTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"heif": "image/heif",
	"heic": "image/heic",
	"avif": "image/avif",
	"webp": "image/webp",
	"dng":  "image/x-adobe-dng",
	"png":  "image/png",
}

// Exists reports whether path is an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// MimeType returns the MIME type for the file's extension, or "" when the
// extension is not a supported image type.
func MimeType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ValidTypes[ext]
}

// IsSupported reports whether path looks like a supported image: first by
// sniffing the leading bytes, then by extension for formats without a
// distinctive signature.
func IsSupported(path string) bool {
	if sniffFormat(path) {
		return true
	}
	return MimeType(path) != ""
}

// sniffFormat checks the magic bytes of the common formats.
func sniffFormat(path string) bool {
	f, err := os.Open(path) //nolint:gosec // path is a user-supplied input file by design
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 12)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, []byte{0xff, 0xd8, 0xff}): // JPEG
		return true
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")): // PNG
		return true
	case bytes.HasPrefix(head, []byte("II*\x00")), bytes.HasPrefix(head, []byte("MM\x00*")): // TIFF / DNG
		return true
	case len(head) >= 12 && bytes.HasPrefix(head, []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
		return true
	case len(head) >= 12 && bytes.Equal(head[4:8], []byte("ftyp")): // HEIC / HEIF / AVIF container
		return true
	default:
		return false
	}
}

// Stem returns the filename without its final extension. Dotfiles and
// extension-less names are returned unchanged; "archive.tar.gz" becomes
// "archive.tar".
func Stem(path string) string {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return name
	}
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name
	}
	return name[:idx]
}

// SafeJoin joins path components under base, rejecting any result that
// escapes base. Components are URL-unescaped first since preset captions end
// up in output filenames via service URLs.
func SafeJoin(base string, parts ...string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}

	joined := absBase
	for _, p := range parts {
		if unescaped, uerr := url.PathUnescape(p); uerr == nil {
			p = unescaped
		}
		joined = filepath.Join(joined, p)
	}

	cleaned := filepath.Clean(joined)
	if cleaned != absBase && !strings.HasPrefix(cleaned, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("imagefile: path traversal detected: %q", strings.Join(parts, "/"))
	}

	return cleaned, nil
}

// Download fetches fileURL and writes it to dest, creating parent
// directories as needed. A nil client falls back to http.DefaultClient.
func Download(ctx context.Context, client *http.Client, fileURL, dest string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("imagefile: build download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("imagefile: download %s: %w", fileURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("imagefile: download %s: unexpected status %d", fileURL, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("imagefile: create output dir: %w", err)
	}

	out, err := os.Create(dest) //nolint:gosec // dest goes through SafeJoin at call sites
	if err != nil {
		return fmt.Errorf("imagefile: create output file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return fmt.Errorf("imagefile: write output file: %w", err)
	}

	return out.Close()
}
