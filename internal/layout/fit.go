// Package layout computes where things go on the proposal template.
//
// Everything here is pure: Fit places an image inside a bounding box without
// distorting it, LayoutFields and LayoutItems turn proposal values into draw
// instructions at fixed anchor coordinates. Coordinates are PDF points with
// the origin at the bottom-left corner of the page.
//
// The functions hold no state and are safe for concurrent use.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned by Fit when a precondition is violated.
var ErrInvalidArgument = errors.New("layout: invalid argument")

// Rectangle is an axis-aligned box anchored at its bottom-left corner.
type Rectangle struct {
	X      float64 `yaml:"x" toml:"x" json:"x"`
	Y      float64 `yaml:"y" toml:"y" json:"y"`
	Width  float64 `yaml:"width" toml:"width" json:"width"`
	Height float64 `yaml:"height" toml:"height" json:"height"`
}

// ImageDimensions is the natural pixel size of a decoded raster image.
type ImageDimensions struct {
	Width  float64
	Height float64
}

// FitResult is the placement rectangle computed by Fit.
type FitResult struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fit returns the largest rectangle with the image's aspect ratio that fits
// inside box, centered on the axis that is not filled.
//
// Both the box and the image must have positive, finite dimensions. A
// violation is a programming error: callers validate decoded image sizes
// first. The returned error wraps ErrInvalidArgument; bad inputs are never
// clamped into range.
func Fit(box Rectangle, imageWidth, imageHeight float64) (FitResult, error) {
	if !positive(box.Width) || !positive(box.Height) {
		return FitResult{}, fmt.Errorf("%w: box must have positive size, got %gx%g",
			ErrInvalidArgument, box.Width, box.Height)
	}
	if !positive(imageWidth) || !positive(imageHeight) {
		return FitResult{}, fmt.Errorf("%w: image must have positive size, got %gx%g",
			ErrInvalidArgument, imageWidth, imageHeight)
	}

	boxRatio := box.Width / box.Height
	imgRatio := imageWidth / imageHeight

	var w, h float64
	if imgRatio > boxRatio {
		w = box.Width
		h = math.Min(box.Width*imageHeight/imageWidth, box.Height)
	} else {
		h = box.Height
		w = math.Min(box.Height*imageWidth/imageHeight, box.Width)
	}

	return FitResult{
		X:      box.X + (box.Width-w)/2,
		Y:      box.Y + (box.Height-h)/2,
		Width:  w,
		Height: h,
	}, nil
}

// FitDimensions is Fit for an ImageDimensions value.
func FitDimensions(box Rectangle, dims ImageDimensions) (FitResult, error) {
	return Fit(box, dims.Width, dims.Height)
}

// positive rejects zero, negatives, NaN and infinities.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
