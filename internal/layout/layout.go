package layout

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"go-proposalpdf/internal/errors"
)

// DefaultFontSize is used for fields that leave fontSize unset.
const DefaultFontSize = 11

// Layout is the per-deployment table of anchor coordinates for one template.
//
// Coordinates are PDF points from the bottom-left corner of the page. A text
// anchor (X, Y) is the bottom-left corner of the text's bounding box, not its
// baseline: the baseline sits a few points above Y, by the descent pdfcpu
// reserves for the font. Row and total Y values follow the same rule.
type Layout struct {
	Name     string      `yaml:"name" toml:"name" json:"name"`
	Fields   []FieldSpec `yaml:"fields" toml:"fields" json:"fields"`
	Items    ItemTable   `yaml:"items" toml:"items" json:"items"`
	ImageBox Rectangle   `yaml:"imageBox" toml:"imageBox" json:"imageBox"`
}

// ImagePlacement is an image ready to be stamped: the encoded bytes, their
// pixel size and the rectangle computed by Fit.
type ImagePlacement struct {
	Fit         FitResult
	Image       []byte
	PixelWidth  int
	PixelHeight int
}

// Default returns the built-in layout for an A4 portrait template.
func Default() *Layout {
	return &Layout{
		Name: "default",
		Fields: []FieldSpec{
			{Key: "client", Label: "Cliente: ", X: 60, Y: 760, FontSize: 14},
			{Key: "responsible", Label: "Responsável: ", X: 60, Y: 740, FontSize: 12},
			{Key: "payment", Label: "Condições de pagamento: ", X: 60, Y: 160, FontSize: 11},
			{Key: "leadTime", Label: "Prazo de produção: ", X: 60, Y: 142, FontSize: 11},
			{Key: "shipping", Label: "Frete: ", X: 60, Y: 124, FontSize: 11},
		},
		Items: ItemTable{
			ItemX:                 60,
			ValueX:                260,
			BaseY:                 570,
			RowHeight:             15,
			FontSize:              11,
			TotalX:                60,
			TotalLabel:            "Total: ",
			TotalOffsetMultiplier: 20,
		},
		ImageBox: Rectangle{X: 350, Y: 520, Width: 180, Height: 180},
	}
}

// Draw returns the full ordered instruction list: configured fields first,
// then the item rows and the total.
func (l *Layout) Draw(values map[string]string, items, itemValues []string, total string) ([]DrawInstruction, []ItemRow) {
	draws := LayoutFields(values, l.Fields)
	rows, itemDraws := LayoutItems(items, itemValues, total, l.Items)
	return append(draws, itemDraws...), rows
}

// LoadFile reads a layout from a YAML (.yaml, .yml) or TOML (.toml) file.
// Unset font sizes and total spacing fall back to defaults; the result is not
// validated.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "failed to read layout %s", path)
	}

	l := &Layout{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, l); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "failed to parse layout %s", path)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), l); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "failed to parse layout %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidLayout, "unsupported layout format %q", ext)
	}

	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	l.applyDefaults()
	return l, nil
}

func (l *Layout) applyDefaults() {
	for i := range l.Fields {
		if l.Fields[i].FontSize == 0 {
			l.Fields[i].FontSize = DefaultFontSize
		}
	}
	if l.Items.FontSize == 0 {
		l.Items.FontSize = DefaultFontSize
	}
	if l.Items.TotalOffsetMultiplier == 0 {
		l.Items.TotalOffsetMultiplier = l.Items.RowHeight
	}
}

// Validate checks that every coordinate is usable. known reports whether a
// field key names a proposal text value; a nil known skips that check.
func (l *Layout) Validate(known func(key string) bool) error {
	seen := make(map[string]bool, len(l.Fields))
	for i, f := range l.Fields {
		if f.Key == "" {
			return errors.New(errors.ErrCodeInvalidLayout, "field %d has no key", i)
		}
		if seen[f.Key] {
			return errors.New(errors.ErrCodeInvalidLayout, "field %q is declared twice", f.Key)
		}
		seen[f.Key] = true
		if known != nil && !known(f.Key) {
			return errors.New(errors.ErrCodeInvalidLayout, "field %q is not a proposal text field", f.Key)
		}
		if f.FontSize <= 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "field %q: font size must be positive", f.Key)
		}
		if !coordinate(f.X) || !coordinate(f.Y) {
			return errors.New(errors.ErrCodeInvalidLayout, "field %q: coordinates must be non-negative", f.Key)
		}
	}

	it := l.Items
	if it.RowHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "items: row height must be positive")
	}
	if it.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "items: font size must be positive")
	}
	if it.TotalOffsetMultiplier < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "items: total offset multiplier must not be negative")
	}
	for _, v := range []float64{it.ItemX, it.ValueX, it.BaseY, it.TotalX} {
		if !coordinate(v) {
			return errors.New(errors.ErrCodeInvalidLayout, "items: coordinates must be non-negative")
		}
	}

	box := l.ImageBox
	if !coordinate(box.X) || !coordinate(box.Y) || !positive(box.Width) || !positive(box.Height) {
		return errors.New(errors.ErrCodeInvalidLayout, "image box must have non-negative origin and positive size, got %+v", box)
	}
	return nil
}

func coordinate(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
