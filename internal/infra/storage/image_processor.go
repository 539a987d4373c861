package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	DefaultMaxBytes = 8 << 20
	DefaultMaxSide  = 1600
	webpQuality     = 82
)

type ImageProcessor struct {
	MaxBytes int64
	MaxSide  int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxBytes: DefaultMaxBytes, MaxSide: DefaultMaxSide}
}

func (p *ImageProcessor) Validate(data []byte) error {
	if int64(len(data)) > p.MaxBytes {
		return fmt.Errorf("image exceeds %dMB", p.MaxBytes>>20)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "gif", "webp":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed", format)
	}
}

// ToWebP downscales the image so its longest side is at most MaxSide and
// re-encodes it as lossy WebP.
func (p *ImageProcessor) ToWebP(data []byte) ([]byte, error) {
	if err := p.Validate(data); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	img = fit(img, p.MaxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("cannot encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
