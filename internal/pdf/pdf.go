// Package pdf stamps proposal overlays onto the template document.
//
// Functions:
//   - LoadTemplate: Reads and validates the template PDF.
//     Input: template file path.
//     Output: template bytes, error if the file is missing or not a usable PDF.
//   - Render: Draws text instructions and an optional image on page 1.
//     Inputs: template bytes, ordered draw instructions, optional image placement.
//     Output: serialized PDF bytes.
//
// All work happens on in-memory buffers, so concurrent requests never share a
// file.
package pdf

import (
	"bytes"
	"fmt"
	"os"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"go-proposalpdf/internal/errors"
	"go-proposalpdf/internal/layout"
)

// OverlayPage is the 1-based page that receives every stamp.
const OverlayPage = 1

// FontName is the core font used for all text stamps.
const FontName = "Helvetica"

func init() {
	// Keep pdfcpu from creating a config directory under the service user's home.
	pdfapi.DisableConfigDir()
}

// LoadTemplate reads the template at path and checks it can be stamped.
func LoadTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTemplateUnavailable, err, "failed to read template %s", path)
	}
	if err := ValidateTemplate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ValidateTemplate checks that data is a valid PDF with at least OverlayPage pages.
func ValidateTemplate(data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return errors.New(errors.ErrCodeTemplateUnavailable, "template is not a PDF file")
	}

	config := model.NewDefaultConfiguration()
	if err := pdfapi.Validate(bytes.NewReader(data), config); err != nil {
		return errors.Wrap(errors.ErrCodeTemplateUnavailable, err, "template failed validation")
	}

	pages, err := pdfapi.PageCount(bytes.NewReader(data), config)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTemplateUnavailable, err, "failed to count template pages")
	}
	if pages < OverlayPage {
		return errors.New(errors.ErrCodeTemplateUnavailable, "template has %d pages", pages)
	}
	return nil
}

// Render applies texts in order, then the image, onto page 1 of template and
// returns the serialized document. Instructions with empty text are skipped
// since they draw nothing.
func Render(template []byte, texts []layout.DrawInstruction, img *layout.ImagePlacement) ([]byte, error) {
	wms := make([]*model.Watermark, 0, len(texts)+1)

	for _, d := range texts {
		if d.Text == "" {
			continue
		}
		wm, err := textWatermark(d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "failed to prepare text at (%.2f, %.2f)", d.X, d.Y)
		}
		wms = append(wms, wm)
	}

	if img != nil {
		wm, err := imageWatermark(img)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "failed to prepare image")
		}
		wms = append(wms, wm)
	}

	if len(wms) == 0 {
		return append([]byte(nil), template...), nil
	}

	var out bytes.Buffer
	config := model.NewDefaultConfiguration()
	m := map[int][]*model.Watermark{OverlayPage: wms}
	if err := pdfapi.AddWatermarksSliceMap(bytes.NewReader(template), &out, m, config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "failed to stamp template")
	}
	return out.Bytes(), nil
}

// textWatermark anchors the text's bounding box at (X, Y) from the bottom-left
// corner of the page. "scalefactor:1 abs" keeps the font at its point size
// instead of stretching it relative to the page.
func textWatermark(d layout.DrawInstruction) (*model.Watermark, error) {
	desc := fmt.Sprintf("fontname:%s, points:%d, position:bl, offset:%.2f %.2f, scalefactor:1 abs, rotation:0, opacity:1, fillcolor:#000000",
		FontName, d.FontSize, d.X, d.Y)
	return pdfapi.TextWatermark(d.Text, desc, true, false, types.POINTS)
}

// imageWatermark scales the image from its pixel size to the fitted width.
func imageWatermark(p *layout.ImagePlacement) (*model.Watermark, error) {
	if p.PixelWidth <= 0 {
		return nil, fmt.Errorf("invalid image width %d", p.PixelWidth)
	}
	scale := p.Fit.Width / float64(p.PixelWidth)
	desc := fmt.Sprintf("position:bl, offset:%.2f %.2f, scalefactor:%.6f abs, rotation:0, opacity:1",
		p.Fit.X, p.Fit.Y, scale)
	return pdfapi.ImageWatermarkForReader(bytes.NewReader(p.Image), desc, true, false, types.POINTS)
}
