package dehancer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/halide-labs/dehancer-cli/pkg/preset"
	"github.com/halide-labs/dehancer-cli/pkg/quality"
	"github.com/halide-labs/dehancer-cli/pkg/settings"
)

// ImageSize selects the preview resolution the service renders.
type ImageSize string

const (
	SizeSmall ImageSize = "small"
	SizeLarge ImageSize = "large"
)

// Contact is one entry of a contact sheet: a preset caption paired with the
// URL of the image rendered with that preset.
type Contact struct {
	Caption string
	URL     string
}

// Export is the result of an export render.
type Export struct {
	URL      string
	Filename string
}

// --- request/response types ---

type previewsRequest struct {
	ImageID string          `json:"imageId"`
	Size    string          `json:"size"`
	States  []preset.Preset `json:"states"`
}

type previewsResponse struct {
	Images []string `json:"images"`
}

type renderRequest struct {
	ImageID string         `json:"imageId"`
	State   map[string]any `json:"state"`
}

type renderResponse struct {
	URL string `json:"url"`
}

type exportRequest struct {
	Format  string         `json:"format"`
	ImageID string         `json:"imageId"`
	State   map[string]any `json:"state"`
}

type exportResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// renderState builds the state payload for render and export calls: the
// preset ID plus every active setting. Settings switched off are absent.
func renderState(p preset.Preset, s settings.Settings) map[string]any {
	state := map[string]any{"preset": p.ID}
	for name, value := range s.State() {
		state[name] = value
	}
	return state
}

// ImagePreviews renders the uploaded image with every given preset at the
// given size and returns one Contact per preset, in preset order.
func (c *Client) ImagePreviews(ctx context.Context, imageID string, size ImageSize, presets []preset.Preset) ([]Contact, error) {
	slog.Debug("requesting previews", "imageId", imageID, "size", size, "presets", len(presets))

	var resp previewsResponse
	err := c.retry.Do(ctx, func() error {
		_, err := c.api.PostJSON(ctx, "/image/previews/"+imageID, previewsRequest{
			ImageID: imageID,
			Size:    string(size),
			States:  presets,
		}, &resp)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("dehancer: image previews: %w", err)
	}

	// The response is a bare list of URLs in the same order as the request.
	contacts := make([]Contact, 0, len(presets))
	for i, p := range presets {
		if i >= len(resp.Images) {
			break
		}
		contacts = append(contacts, Contact{Caption: p.Caption, URL: resp.Images[i]})
	}

	return contacts, nil
}

// RenderImage renders the uploaded image with the preset and settings and
// returns the URL of the result. Unauthorized sessions get a watermarked
// image.
func (c *Client) RenderImage(ctx context.Context, imageID string, p preset.Preset, s settings.Settings) (string, error) {
	slog.Debug("rendering image", "imageId", imageID, "preset", p.Caption)

	var resp renderResponse
	err := c.retry.Do(ctx, func() error {
		_, err := c.api.PostJSON(ctx, "/image/render/"+imageID, renderRequest{
			ImageID: imageID,
			State:   renderState(p, s),
		}, &resp)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("dehancer: render image: %w", err)
	}

	return resp.URL, nil
}

// ExportImage renders the uploaded image at export quality and returns the
// result URL together with the filename the service chose, which carries the
// extension matching the export format. Requires an authorized session.
func (c *Client) ExportImage(ctx context.Context, imageID string, p preset.Preset, format quality.ExportFormat, s settings.Settings) (Export, error) {
	slog.Debug("exporting image", "imageId", imageID, "preset", p.Caption, "format", format)

	var resp exportResponse
	err := c.retry.Do(ctx, func() error {
		_, err := c.api.PostJSON(ctx, "/image/export/"+imageID, exportRequest{
			Format:  string(format),
			ImageID: imageID,
			State:   renderState(p, s),
		}, &resp)
		return err
	})
	if err != nil {
		return Export{}, fmt.Errorf("dehancer: export image: %w", err)
	}

	return Export{URL: resp.URL, Filename: resp.Filename}, nil
}
