package dehancer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/halide-labs/dehancer-cli/pkg/imagefile"
	"github.com/halide-labs/dehancer-cli/pkg/preset"
	"github.com/halide-labs/dehancer-cli/pkg/settings"
)

// ContactResult is one developed contact: the preset it was rendered with,
// the render URL, and where it was downloaded to. Err is set when that
// preset's render or download failed; the rest of the sheet is unaffected.
type ContactResult struct {
	Caption string
	URL     string
	Output  string
	Err     error
}

// ContactsOptions tunes a contact sheet run.
type ContactsOptions struct {
	// OutputDir receives the downloads; empty means OutputDir under the
	// working directory.
	OutputDir string
	// Progress, when set, is called after each contact with the number
	// finished so far and the total.
	Progress func(done, total int)
}

// CreateContacts uploads the image at path and renders it once per available
// preset with default settings, downloading each result. The returned slice
// follows the preset catalog order.
func (c *Client) CreateContacts(ctx context.Context, path string, opts ContactsOptions) ([]ContactResult, error) {
	presets, err := c.AvailablePresets(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, fmt.Errorf("dehancer: no presets available")
	}

	imageID, err := c.UploadImage(ctx, path)
	if err != nil {
		return nil, err
	}

	// The previews call both warms the service-side render cache and yields
	// the caption order the sheet is reported in.
	contacts, err := c.ImagePreviews(ctx, imageID, SizeSmall, presets)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = OutputDir
	}

	defaults := settings.Default()
	results := make([]ContactResult, 0, len(contacts))

	for i, contact := range contacts {
		result := ContactResult{Caption: contact.Caption}
		result.URL, result.Output, result.Err = c.renderContact(ctx, imageID, path, outDir, presets[i], defaults)

		if result.Err != nil {
			slog.Debug("contact failed", "preset", contact.Caption, "error", result.Err)
		}

		results = append(results, result)

		if opts.Progress != nil {
			opts.Progress(i+1, len(contacts))
		}
	}

	return results, nil
}

// renderContact renders one full-size contact and downloads it.
func (c *Client) renderContact(ctx context.Context, imageID, path, outDir string, p preset.Preset, defaults settings.Settings) (url, output string, err error) {
	url, err = c.RenderImage(ctx, imageID, p, defaults)
	if err != nil {
		return "", "", err
	}

	name := fmt.Sprintf("%s_%s.jpeg", imagefile.Stem(path), p.Caption)
	output, err = imagefile.SafeJoin(outDir, name)
	if err != nil {
		return url, "", err
	}

	if err := imagefile.Download(ctx, c.api.HTTPClient, url, output); err != nil {
		return url, output, err
	}

	return url, output, nil
}
