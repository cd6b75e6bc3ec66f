package storage

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor derives smaller renditions of uploaded pictures.
type ImageProcessor struct {
	Quality int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{Quality: 80}
}

// SquareThumbnail center-crops the image to a size x size JPEG. EXIF orientation from phone cameras
// is applied before cropping.
func (p *ImageProcessor) SquareThumbnail(content io.Reader, size int) (io.Reader, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size %d", size)
	}

	img, err := imaging.Decode(content, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumbnail, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf, nil
}
