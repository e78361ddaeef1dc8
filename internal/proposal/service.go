package proposal

import (
	"context"

	"go.uber.org/zap"

	"go-proposalpdf/internal/errors"
	"go-proposalpdf/internal/imageutil"
	"go-proposalpdf/internal/layout"
	"go-proposalpdf/internal/pdf"
)

// Options configure a Service.
type Options struct {
	// TemplatePath is re-read on every request.
	TemplatePath string
	// MaxImageSide caps the longest image side in pixels; 0 keeps the original size.
	MaxImageSide int
	// MaxImagePixels rejects images whose declared width*height is larger;
	// 0 disables the check.
	MaxImagePixels int64
	// RejectMismatch turns unequal item/value lists into an input error
	// instead of leaving trailing values empty.
	RejectMismatch bool
}

// Plan is everything the renderer needs for one proposal.
type Plan struct {
	Texts []layout.DrawInstruction
	Rows  []layout.ItemRow
	Image *layout.ImagePlacement
}

// Service builds proposal PDFs from a fixed layout and template.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	layout *layout.Layout
	opts   Options
	logger *zap.Logger
}

// NewService validates l against the declared fields and checks that the
// template can be loaded.
func NewService(l *layout.Layout, opts Options, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if l == nil {
		l = layout.Default()
	}
	if err := l.Validate(IsTextField); err != nil {
		return nil, err
	}
	if opts.TemplatePath == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "template path is required")
	}
	if _, err := pdf.LoadTemplate(opts.TemplatePath); err != nil {
		return nil, err
	}
	return &Service{layout: l, opts: opts, logger: logger}, nil
}

// Layout returns the layout the service stamps with.
func (s *Service) Layout() *layout.Layout {
	return s.layout
}

// Plan lays out req without touching the template.
func (s *Service) Plan(req Request) (Plan, error) {
	if req.Mismatched() {
		if s.opts.RejectMismatch {
			return Plan{}, errors.New(errors.ErrCodeInvalidInput,
				"got %d items but %d values", len(req.Items), len(req.Values))
		}
		s.logger.Warn("item and value counts differ, missing values left empty",
			zap.String("op", "proposal.Plan"),
			zap.Int("items", len(req.Items)),
			zap.Int("values", len(req.Values)),
		)
	}

	texts, rows := s.layout.Draw(req.TextValues(), req.Items, req.Values, req.Total)
	plan := Plan{Texts: texts, Rows: rows}

	if !req.HasImage() {
		return plan, nil
	}

	img, err := imageutil.Normalize(req.Image, imageutil.Limits{
		MaxSide:   s.opts.MaxImageSide,
		MaxPixels: s.opts.MaxImagePixels,
	})
	if err != nil {
		return Plan{}, err
	}
	fit, err := layout.FitDimensions(s.layout.ImageBox, layout.ImageDimensions{
		Width:  float64(img.Width),
		Height: float64(img.Height),
	})
	if err != nil {
		return Plan{}, errors.Wrap(errors.ErrCodeInternal, err, "failed to fit image")
	}
	plan.Image = &layout.ImagePlacement{
		Fit:         fit,
		Image:       img.Data,
		PixelWidth:  img.Width,
		PixelHeight: img.Height,
	}
	return plan, nil
}

// Generate renders req onto a fresh copy of the template.
func (s *Service) Generate(ctx context.Context, req Request) ([]byte, error) {
	plan, err := s.Plan(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	template, err := pdf.LoadTemplate(s.opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := pdf.Render(template, plan.Texts, plan.Image)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("proposal rendered",
		zap.String("op", "proposal.Generate"),
		zap.Int("texts", len(plan.Texts)),
		zap.Int("rows", len(plan.Rows)),
		zap.Bool("image", plan.Image != nil),
		zap.Int("bytes", len(doc)),
	)
	return doc, nil
}
