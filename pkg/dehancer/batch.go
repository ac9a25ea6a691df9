package dehancer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/halide-labs/dehancer-cli/pkg/imagefile"
	"github.com/halide-labs/dehancer-cli/pkg/preset"
	"github.com/halide-labs/dehancer-cli/pkg/quality"
	"github.com/halide-labs/dehancer-cli/pkg/settings"
)

// OutputDir is where developed images and contact sheets are downloaded to,
// relative to the working directory.
const OutputDir = "dehancer-output-images"

// ImageResult is the outcome of developing a single image. Err is set when
// the image failed; the rest of the batch is unaffected.
type ImageResult struct {
	Path   string // source image
	URL    string // rendered image on the service
	Output string // local download destination
	Err    error
}

// DevelopOptions bundles the parameters of a develop run.
type DevelopOptions struct {
	Preset   preset.Preset
	Settings settings.Settings
	Quality  quality.Level
	// OutputDir receives the downloads; empty means OutputDir under the
	// working directory.
	OutputDir string
	// Progress, when set, is called after each image with the number of
	// images finished so far and the total.
	Progress func(done, total int)
}

// DevelopBatch develops the image at path, or every supported image directly
// inside it when path is a directory. Images are processed sequentially; a
// failure on one image is recorded in its ImageResult and the batch moves
// on. An error is returned only when no images could be determined at all.
//
// Authorized sessions export at the requested quality without a watermark
// and the output extension follows the export format. Unauthorized sessions
// fall back to a watermarked JPEG render.
func (c *Client) DevelopBatch(ctx context.Context, path string, opts DevelopOptions) ([]ImageResult, error) {
	images, err := expandImages(path)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("dehancer: no supported images at %s", path)
	}

	results := make([]ImageResult, 0, len(images))

	for i, image := range images {
		result := ImageResult{Path: image}
		result.URL, result.Output, result.Err = c.developOne(ctx, image, opts)

		if result.Err != nil {
			slog.Debug("image failed", "path", image, "error", result.Err)
		}

		results = append(results, result)

		if opts.Progress != nil {
			opts.Progress(i+1, len(images))
		}
	}

	return results, nil
}

// developOne uploads, renders or exports, and downloads a single image.
func (c *Client) developOne(ctx context.Context, path string, opts DevelopOptions) (url, output string, err error) {
	imageID, err := c.UploadImage(ctx, path)
	if err != nil {
		return "", "", err
	}

	ext := "jpeg"

	if c.IsAuthorized() {
		export, eerr := c.ExportImage(ctx, imageID, opts.Preset, opts.Quality.Format(), opts.Settings)
		if eerr != nil {
			return "", "", eerr
		}
		url = export.URL
		if e := strings.TrimPrefix(filepath.Ext(export.Filename), "."); e != "" {
			ext = e
		}
	} else {
		url, err = c.RenderImage(ctx, imageID, opts.Preset, opts.Settings)
		if err != nil {
			return "", "", err
		}
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = OutputDir
	}

	name := fmt.Sprintf("%s_%s.%s", imagefile.Stem(path), opts.Preset.Caption, ext)
	output, err = imagefile.SafeJoin(outDir, name)
	if err != nil {
		return url, "", err
	}

	if err := imagefile.Download(ctx, c.api.HTTPClient, url, output); err != nil {
		return url, output, err
	}

	return url, output, nil
}

// expandImages resolves path to the list of images to develop. A file is
// taken as-is; a directory contributes its directly contained supported
// images, in name order.
func expandImages(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dehancer: %w", err)
	}

	if info.Mode().IsRegular() {
		return []string{path}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dehancer: not a file or directory: %s", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("dehancer: read directory: %w", err)
	}

	pattern := imagePattern()

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, merr := doublestar.Match(pattern, strings.ToLower(entry.Name()))
		if merr != nil || !ok {
			continue
		}
		full := filepath.Join(path, entry.Name())
		if imagefile.IsSupported(full) {
			images = append(images, full)
		}
	}

	return images, nil
}

// imagePattern builds a brace glob over the supported extensions, e.g.
// "*.{avif,dng,heic,...}".
func imagePattern() string {
	exts := make([]string, 0, len(imagefile.ValidTypes))
	for ext := range imagefile.ValidTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return "*.{" + strings.Join(exts, ",") + "}"
}
