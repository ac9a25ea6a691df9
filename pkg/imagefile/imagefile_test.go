package imagefile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestExists(t *testing.T) {
	path := writeFile(t, "a.jpg", []byte("x"))

	assert.True(t, Exists(path))
	assert.False(t, Exists(filepath.Join(filepath.Dir(path), "missing.jpg")))
	assert.False(t, Exists(filepath.Dir(path))) // directories don't count
}

func TestMimeType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"scan.tiff", "image/tiff"},
		{"raw.dng", "image/x-adobe-dng"},
		{"img.webp", "image/webp"},
		{"doc.pdf", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MimeType(tt.path), tt.path)
	}
}

func TestIsSupported_MagicBytes(t *testing.T) {
	jpeg := writeFile(t, "photo.bin", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.True(t, IsSupported(jpeg)) // signature wins despite the extension

	png := writeFile(t, "img.bin", append([]byte("\x89PNG\r\n\x1a\n"), 0, 0, 0, 0))
	assert.True(t, IsSupported(png))

	tiff := writeFile(t, "scan.bin", []byte("II*\x00aaaaaaaa"))
	assert.True(t, IsSupported(tiff))

	webp := writeFile(t, "anim.bin", []byte("RIFF\x00\x00\x00\x00WEBP"))
	assert.True(t, IsSupported(webp))

	heic := writeFile(t, "shot.bin", []byte("\x00\x00\x00\x18ftypheic"))
	assert.True(t, IsSupported(heic))

	text := writeFile(t, "note.bin", []byte("hello world!"))
	assert.False(t, IsSupported(text))
}

func TestIsSupported_ExtensionFallback(t *testing.T) {
	// DNG files start like TIFF, but a short garbage file still passes on
	// extension alone.
	path := writeFile(t, "raw.dng", []byte("zz"))
	assert.True(t, IsSupported(path))

	path = writeFile(t, "doc.txt", []byte("zz"))
	assert.False(t, IsSupported(path))
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo"},
		{"/some/dir/photo.heic", "photo"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stem(tt.in), tt.in)
	}
}

func TestSafeJoin(t *testing.T) {
	base := t.TempDir()

	joined, err := SafeJoin(base, "out", "photo_Preset.jpeg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "out", "photo_Preset.jpeg"), joined)
}

func TestSafeJoin_RejectsTraversal(t *testing.T) {
	base := t.TempDir()

	_, err := SafeJoin(base, "..", "escape.jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path traversal")

	// URL-encoded traversal in a caption is unescaped before the check.
	_, err = SafeJoin(base, "%2e%2e", "escape.jpeg")
	assert.Error(t, err)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out", "result.jpeg")
	require.NoError(t, Download(context.Background(), nil, srv.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestDownload_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "result.jpeg")
	err := Download(context.Background(), nil, srv.URL, dest)
	require.Error(t, err)
	assert.False(t, Exists(dest))
}
