// Package imgproc prepares answer images for display: fetching the
// referenced file and downscaling it so the workbench does not ship
// multi-megabyte photos to the UI.
package imgproc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/nfnt/resize"
	"github.com/wailsapp/mimetype"
)

const maxFetchBytes = 32 << 20

// Fetch resolves an image reference from the roster: an http(s) URL is
// downloaded, anything else is treated as a local file path.
func Fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid image url %q: %w", ref, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image %q: %w", ref, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch image %q: status %d", ref, resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	}

	content, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file %q: %w", ref, err)
	}
	return content, nil
}

// Downscale resizes the image to at most maxWidth pixels wide, keeping
// the aspect ratio, and re-encodes it as JPEG. Images already narrow
// enough are returned unchanged with their detected media type.
func Downscale(content []byte, maxWidth uint) ([]byte, string, error) {
	mType := mimetype.Detect(content)
	if mType == nil {
		return nil, "", fmt.Errorf("unknown image type")
	}

	var img image.Image
	var err error

	switch mType.String() {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(content))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(content))
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", mType.String())
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	if uint(img.Bounds().Dx()) <= maxWidth {
		return content, mType.String(), nil
	}

	resized := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image to JPEG: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
