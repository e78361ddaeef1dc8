package proposal

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-proposalpdf/internal/errors"
	"go-proposalpdf/internal/layout"
	"go-proposalpdf/internal/pdf/pdftest"
)

func newTestService(t *testing.T, opts Options) (*Service, *observer.ObservedLogs) {
	t.Helper()
	if opts.TemplatePath == "" {
		opts.TemplatePath = pdftest.WriteTemplate(t)
	}
	core, logs := observer.New(zap.DebugLevel)
	svc, err := NewService(layout.Default(), opts, zap.New(core))
	require.NoError(t, err)
	return svc, logs
}

func TestNewServiceErrors(t *testing.T) {
	_, err := NewService(nil, Options{}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = NewService(nil, Options{TemplatePath: filepath.Join(t.TempDir(), "none.pdf")}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeTemplateUnavailable))

	bad := layout.Default()
	bad.Fields = append(bad.Fields, layout.FieldSpec{Key: KeyItems, Label: "x", FontSize: 10})
	_, err = NewService(bad, Options{TemplatePath: pdftest.WriteTemplate(t)}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidLayout))
}

func TestPlanWithoutImage(t *testing.T) {
	svc, logs := newTestService(t, Options{})

	req := Request{Client: "Padaria", Items: []string{"A", "B", "C"}, Values: []string{"1", "2"}, Total: "3"}
	plan, err := svc.Plan(req)
	require.NoError(t, err)
	assert.Nil(t, plan.Image)

	require.Len(t, plan.Rows, 3)
	assert.Equal(t, "", plan.Rows[2].Value)
	assert.Equal(t, "Cliente: Padaria", plan.Texts[0].Text)
	assert.Equal(t, "Total: 3", plan.Texts[len(plan.Texts)-1].Text)

	assert.Equal(t, 1, logs.FilterMessageSnippet("item and value counts differ").Len())
}

func TestPlanRejectsMismatchWhenConfigured(t *testing.T) {
	svc, _ := newTestService(t, Options{RejectMismatch: true})

	_, err := svc.Plan(Request{Items: []string{"A"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = svc.Plan(Request{Items: []string{"A"}, Values: []string{"1"}})
	assert.NoError(t, err)
}

func TestPlanFitsImageIntoBox(t *testing.T) {
	svc, _ := newTestService(t, Options{MaxImageSide: 200})

	plan, err := svc.Plan(Request{Image: pdftest.PNG(400, 300)})
	require.NoError(t, err)
	require.NotNil(t, plan.Image)

	assert.Equal(t, 200, plan.Image.PixelWidth)
	assert.Equal(t, 150, plan.Image.PixelHeight)
	assert.Equal(t, layout.FitResult{X: 350, Y: 542.5, Width: 180, Height: 135}, plan.Image.Fit)
}

func TestPlanRejectsUnsupportedImage(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	_, err := svc.Plan(Request{Image: []byte("GIF89a not really")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidImage))
}

func TestPlanRejectsImagesOverPixelLimit(t *testing.T) {
	svc, _ := newTestService(t, Options{MaxImageSide: 200, MaxImagePixels: 1_000_000})

	_, err := svc.Plan(Request{Image: pdftest.PNGHeader(20000, 20000)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidImage))

	plan, err := svc.Plan(Request{Image: pdftest.PNG(400, 300)})
	require.NoError(t, err)
	assert.NotNil(t, plan.Image)
}

func TestGenerate(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	req := Request{
		Client:       "Padaria Central",
		Responsible:  "Ana",
		PaymentTerms: "30 dias",
		Items:        []string{"Caixa", "Sacola"},
		Values:       []string{"10", "20"},
		Total:        "30",
		Image:        pdftest.JPEG(120, 240),
	}
	doc, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	config := model.NewDefaultConfiguration()
	require.NoError(t, pdfapi.Validate(bytes.NewReader(doc), config))
	pages, err := pdfapi.PageCount(bytes.NewReader(doc), config)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestGenerateCanceled(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Generate(ctx, Request{Client: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
