package printfiles

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// maxImagePixels caps the long side of embedded rasters.
const maxImagePixels = 4000

type preparedImage struct {
	data      []byte
	imageType string
}

// decodeDataURL accepts a data URL or bare base64 payload.
func decodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty image data")
	}
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, errors.New("malformed data url")
		}
		if !strings.Contains(s[:comma], ";base64") {
			return nil, errors.New("data url is not base64 encoded")
		}
		s = s[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}
	}
	return data, nil
}

// prepareBackground crops the image to the wall's aspect ratio, centered,
// so it covers the trim area without distortion, and re-encodes it as JPEG.
func prepareBackground(dataURL string, widthMM, heightMM int) (preparedImage, error) {
	img, err := decodeImage(dataURL)
	if err != nil {
		return preparedImage{}, err
	}
	w, h := coverPixels(img.Bounds().Dx(), img.Bounds().Dy(), float64(widthMM)/float64(heightMM))
	filled := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, filled, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
		return preparedImage{}, fmt.Errorf("encode background: %w", err)
	}
	return preparedImage{data: buf.Bytes(), imageType: "JPG"}, nil
}

// prepareLogo keeps transparency and only downsizes oversized uploads.
func prepareLogo(dataURL string) (preparedImage, error) {
	img, err := decodeImage(dataURL)
	if err != nil {
		return preparedImage{}, err
	}
	b := img.Bounds()
	if b.Dx() > maxImagePixels || b.Dy() > maxImagePixels {
		img = imaging.Fit(img, maxImagePixels, maxImagePixels, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return preparedImage{}, fmt.Errorf("encode logo: %w", err)
	}
	return preparedImage{data: buf.Bytes(), imageType: "PNG"}, nil
}

// imagePixels returns the pixel size of an uploaded image after EXIF
// orientation is applied.
func imagePixels(dataURL string) (int, int, error) {
	img, err := decodeImage(dataURL)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func decodeImage(dataURL string) (image.Image, error) {
	raw, err := decodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("image has no pixels")
	}
	return img, nil
}

// coverPixels returns the largest size with the given aspect ratio that fits
// inside the source, capped at maxImagePixels on the long side.
func coverPixels(srcW, srcH int, ratio float64) (int, int) {
	w := float64(srcW)
	h := w / ratio
	if h > float64(srcH) {
		h = float64(srcH)
		w = h * ratio
	}
	if long := max(w, h); long > maxImagePixels {
		scale := maxImagePixels / long
		w *= scale
		h *= scale
	}
	return max(1, int(w+0.5)), max(1, int(h+0.5))
}
