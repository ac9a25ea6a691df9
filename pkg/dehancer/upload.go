package dehancer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/halide-labs/dehancer-cli/pkg/imagefile"
)

// --- request/response types ---

type uploadPrepareRequest struct {
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
}

type uploadPrepareResponse struct {
	Success     bool     `json:"success"`
	ImageID     string   `json:"imageId"`
	URL         string   `json:"url"`
	IsMultipart bool     `json:"isMultipart"`
	ChunkSize   int64    `json:"chunkSize"`
	URLs        []string `json:"urls"`
	UploadID    string   `json:"uploadId"`
}

type uploadFinishRequest struct {
	ImageID  string   `json:"imageId"`
	UploadID string   `json:"uploadId,omitempty"`
	ETags    []string `json:"etags,omitempty"`
	Filename string   `json:"filename"`
}

// UploadImage uploads the image at path and returns the image ID the service
// assigned. The flow is prepare, then one or more content PUTs to the
// presigned URLs from the prepare step, then finish. Large files go through
// the multipart variant, where each chunk PUT yields an ETag the finish call
// has to echo back.
func (c *Client) UploadImage(ctx context.Context, path string) (string, error) {
	if !imagefile.Exists(path) {
		return "", fmt.Errorf("dehancer: file does not exist: %s", path)
	}
	if !imagefile.IsSupported(path) {
		return "", fmt.Errorf("dehancer: unsupported image format: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("dehancer: stat image: %w", err)
	}

	mimeType := imagefile.MimeType(path)

	slog.Debug("uploading image", "path", path, "size", info.Size(), "mime", mimeType)

	var prep uploadPrepareResponse
	err = c.retry.Do(ctx, func() error {
		_, err := c.api.PostJSON(ctx, "/upload/prepare", uploadPrepareRequest{
			MimeType: mimeType,
			Size:     info.Size(),
		}, &prep)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("dehancer: prepare upload: %w", err)
	}
	if !prep.Success {
		return "", fmt.Errorf("dehancer: upload rejected for %s", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's input image
	if err != nil {
		return "", fmt.Errorf("dehancer: read image: %w", err)
	}

	finish := uploadFinishRequest{
		ImageID:  prep.ImageID,
		Filename: filepath.Base(path),
	}

	if prep.IsMultipart {
		finish.UploadID = prep.UploadID
		finish.ETags, err = c.putChunks(ctx, prep.URLs, mimeType, data, prep.ChunkSize)
	} else {
		err = c.retry.Do(ctx, func() error {
			_, perr := c.api.PutBytes(ctx, prep.URL, mimeType, data)
			return perr
		})
	}
	if err != nil {
		return "", fmt.Errorf("dehancer: upload image content: %w", err)
	}

	err = c.retry.Do(ctx, func() error {
		_, err := c.api.PostJSON(ctx, "/upload/finish", finish, nil)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("dehancer: finish upload: %w", err)
	}

	slog.Debug("image uploaded", "imageId", prep.ImageID)

	return prep.ImageID, nil
}

// putChunks PUTs data in chunkSize pieces to the presigned URLs in order and
// collects the ETag from each response.
func (c *Client) putChunks(ctx context.Context, urls []string, mimeType string, data []byte, chunkSize int64) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("dehancer: invalid chunk size %d", chunkSize)
	}

	etags := make([]string, 0, len(urls))

	for i, url := range urls {
		start := int64(i) * chunkSize
		if start >= int64(len(data)) {
			break
		}
		end := min(start+chunkSize, int64(len(data)))

		var etag string
		err := c.retry.Do(ctx, func() error {
			header, perr := c.api.PutBytes(ctx, url, mimeType, data[start:end])
			if perr != nil {
				return perr
			}
			etag = header.Get("ETag")
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("dehancer: upload chunk %d: %w", i+1, err)
		}

		etags = append(etags, etag)
	}

	return etags, nil
}
