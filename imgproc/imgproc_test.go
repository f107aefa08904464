package imgproc_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradelab/backend/imgproc"
)

func pngImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownscaleWideImage(t *testing.T) {
	content := pngImage(t, 400, 100)

	scaled, mime, err := imgproc.Downscale(content, 200)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	img, _, err := image.Decode(bytes.NewReader(scaled))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestDownscaleKeepsNarrowImage(t *testing.T) {
	content := pngImage(t, 100, 100)

	scaled, mime, err := imgproc.Downscale(content, 200)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, content, scaled)
}

func TestDownscaleRejectsNonImage(t *testing.T) {
	_, _, err := imgproc.Downscale([]byte("not an image"), 200)
	assert.Error(t, err)
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	content := pngImage(t, 10, 10)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	got, err := imgproc.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFetchHttpURL(t *testing.T) {
	content := pngImage(t, 10, 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	got, err := imgproc.Fetch(context.Background(), server.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFetchHttpErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := imgproc.Fetch(context.Background(), server.URL+"/missing.png")
	assert.Error(t, err)
}
