// Package imageutil validates and normalizes uploaded product images before
// they are stamped onto a proposal.
//
// Only PNG and JPEG are accepted. Normalize reads the declared dimensions
// first and refuses images whose pixel count exceeds the limit, so a small
// upload can never force a huge raster into memory. It then applies the EXIF orientation that
// phone cameras record, shrinks oversized photos and re-encodes them in their
// original format so the PDF never embeds more pixels than it can show.
package imageutil

import (
	"bytes"
	"image"
	"net/http"

	"github.com/disintegration/imaging"

	"go-proposalpdf/internal/errors"
)

// Format is the encoding of an accepted image.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// jpegQuality is used when a JPEG is re-encoded.
const jpegQuality = 90

var allowedTypes = map[string]Format{
	"image/jpeg": FormatJPEG,
	"image/png":  FormatPNG,
}

// Limits bound what Normalize accepts and produces. Zero disables a limit.
type Limits struct {
	// MaxSide caps the longest side of the result; larger images are shrunk.
	MaxSide int
	// MaxPixels caps width*height as declared in the image header; larger
	// images are rejected before decoding.
	MaxPixels int64
}

// Image is a decoded, normalized upload.
type Image struct {
	Data   []byte
	Format Format
	Width  int
	Height int
}

// Detect sniffs the content type of data and returns its format.
func Detect(data []byte) (Format, error) {
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeInvalidImage, "image is empty")
	}
	contentType := http.DetectContentType(data)
	format, ok := allowedTypes[contentType]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidImage, "invalid image format %s. Only PNG and JPEG images are allowed", contentType)
	}
	return format, nil
}

// Normalize checks the declared size of data against limits, decodes it,
// applies EXIF orientation and shrinks the image so neither side exceeds
// limits.MaxSide.
func Normalize(data []byte, limits Limits) (*Image, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "failed to decode %s image header", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image has no pixels")
	}
	if limits.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > limits.MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidImage,
			"image is %dx%d pixels, the limit is %d pixels", cfg.Width, cfg.Height, limits.MaxPixels)
	}
	maxSide := limits.MaxSide

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "failed to decode %s image", format)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image has no pixels")
	}

	if maxSide > 0 && (bounds.Dx() > maxSide || bounds.Dy() > maxSide) {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	encoded, err := encode(img, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to re-encode %s image", format)
	}

	b := img.Bounds()
	return &Image{Data: encoded, Format: format, Width: b.Dx(), Height: b.Dy()}, nil
}

func encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
