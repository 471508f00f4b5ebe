package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/h2non/filetype"
	"golang.org/x/image/webp"
)

// LoadImage decodes a JPEG, PNG or WebP file, going by its content rather
// than its name.
func LoadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	return img, nil
}

func DecodeImage(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(data)
	switch kind.MIME.Value {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	}
	if kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: unrecognised content", ErrUnsupportedFormat)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
}
