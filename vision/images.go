package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// maxUploadSize is the largest image the gateway accepts per request.
const maxUploadSize = 5 * 1024 * 1024 // 5 MB

// LoadImage reads an image from a local path or an https URL. Oversized
// JPEG and PNG files are downscaled to fit under the gateway's upload
// limit before they get base64-encoded for transport.
func LoadImage(path string) ([]byte, error) {
	if strings.HasPrefix(path, "https://") {
		return downloadImage(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(data) <= maxUploadSize {
		return data, nil
	}

	targetScale := float64(maxUploadSize) / float64(len(data))

	buffer := bytes.Buffer{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}

		if err := jpeg.Encode(&buffer, scaleImage(img, targetScale), &jpeg.Options{Quality: jpeg.DefaultQuality}); err != nil {
			return nil, err
		}

	case ".png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}

		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		if err := encoder.Encode(&buffer, scaleImage(img, targetScale)); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("image at %s exceeds %d bytes and cannot be downscaled", path, maxUploadSize)
	}

	return buffer.Bytes(), nil
}

func downloadImage(url string) ([]byte, error) {
	rsp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading image from %s: HTTP %d", url, rsp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(rsp.Body, 4*maxUploadSize))
}

func scaleImage(img image.Image, scale float64) image.Image {
	width := uint(float64(img.Bounds().Dx()) * scale)
	height := uint(float64(img.Bounds().Dy()) * scale)

	return resize.Resize(width, height, img, resize.Lanczos3)
}
