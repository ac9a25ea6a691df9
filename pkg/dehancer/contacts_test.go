package dehancer

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContacts(t *testing.T) {
	var renderedPresets []string

	mux := http.NewServeMux()
	var srvURL string

	mux.HandleFunc("/presets", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"presets":[
			{"caption":"Beta Film","preset":"p2"},
			{"caption":"Alpha Film","preset":"p1"}
		]}`))
	})
	mux.HandleFunc("/upload/prepare", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"imageId": "img-1",
			"url":     srvURL + "/storage/put",
		})
	})
	mux.HandleFunc("/storage/put", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/upload/finish", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/image/previews/img-1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images": []string{"http://cdn/a.jpeg", "http://cdn/b.jpeg"},
		})
	})
	mux.HandleFunc("/image/render/img-1", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			State map[string]any `json:"state"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		renderedPresets = append(renderedPresets, body.State["preset"].(string))
		_ = json.NewEncoder(w).Encode(map[string]string{"url": srvURL + "/cdn/out.jpeg"})
	})
	mux.HandleFunc("/cdn/out.jpeg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("contact-bytes"))
	})

	c, _, srv := newTestClient(t, mux)
	srvURL = srv.URL

	image := writeBatchImage(t, t.TempDir(), "roll.jpg")
	outDir := t.TempDir()

	var progress []int
	results, err := c.CreateContacts(context.Background(), image, ContactsOptions{
		OutputDir: outDir,
		Progress:  func(done, _ int) { progress = append(progress, done) },
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Captions come back in sorted preset order.
	assert.Equal(t, "Alpha Film", results[0].Caption)
	assert.Equal(t, "Beta Film", results[1].Caption)
	assert.Equal(t, []string{"p1", "p2"}, renderedPresets)

	for _, r := range results {
		require.NoError(t, r.Err)
	}
	assert.Equal(t, filepath.Join(outDir, "roll_Alpha Film.jpeg"), results[0].Output)
	assert.FileExists(t, results[0].Output)
	assert.FileExists(t, results[1].Output)

	assert.Equal(t, []int{1, 2}, progress)
}

func TestCreateContacts_NoPresets(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/presets", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"presets":[]}`))
	})

	c, _, _ := newTestClient(t, mux)

	image := writeBatchImage(t, t.TempDir(), "roll.jpg")

	_, err := c.CreateContacts(context.Background(), image, ContactsOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no presets")
}
