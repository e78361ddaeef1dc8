package layout

// FieldSpec anchors one text field on the template.
type FieldSpec struct {
	// Key names the proposal value drawn at this position.
	Key string `yaml:"key" toml:"key" json:"key"`
	// Label is drawn in front of the value.
	Label    string  `yaml:"label" toml:"label" json:"label"`
	X        float64 `yaml:"x" toml:"x" json:"x"`
	Y        float64 `yaml:"y" toml:"y" json:"y"`
	FontSize int     `yaml:"fontSize" toml:"fontSize" json:"fontSize"`
}

// ItemTable anchors the variable-length item/value list and its total line.
type ItemTable struct {
	ItemX     float64 `yaml:"itemX" toml:"itemX" json:"itemX"`
	ValueX    float64 `yaml:"valueX" toml:"valueX" json:"valueX"`
	BaseY     float64 `yaml:"baseY" toml:"baseY" json:"baseY"`
	RowHeight float64 `yaml:"rowHeight" toml:"rowHeight" json:"rowHeight"`
	FontSize  int     `yaml:"fontSize" toml:"fontSize" json:"fontSize"`

	TotalX     float64 `yaml:"totalX" toml:"totalX" json:"totalX"`
	TotalLabel string  `yaml:"totalLabel" toml:"totalLabel" json:"totalLabel"`
	// TotalOffsetMultiplier spaces the total line: it is drawn at
	// BaseY - len(items)*TotalOffsetMultiplier.
	TotalOffsetMultiplier float64 `yaml:"totalOffsetMultiplier" toml:"totalOffsetMultiplier" json:"totalOffsetMultiplier"`
}

// DrawInstruction places one string on the page with the bottom-left corner
// of its bounding box at (X, Y).
type DrawInstruction struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize int     `json:"fontSize"`
}

// ItemRow pairs an item with its value on one line of the item table.
type ItemRow struct {
	Index int     `json:"index"`
	Item  string  `json:"item"`
	Value string  `json:"value"`
	Y     float64 `json:"y"`
}

// LayoutFields returns one instruction per spec, in declaration order. A
// missing value is drawn as the empty string so every configured position is
// still populated.
func LayoutFields(values map[string]string, specs []FieldSpec) []DrawInstruction {
	out := make([]DrawInstruction, 0, len(specs))
	for _, spec := range specs {
		out = append(out, DrawInstruction{
			Text:     spec.Label + values[spec.Key],
			X:        spec.X,
			Y:        spec.Y,
			FontSize: spec.FontSize,
		})
	}
	return out
}

// LayoutItems lays out one row per item, walking down from BaseY by
// RowHeight. values[i] is paired with items[i]; a shorter values list leaves
// the trailing rows with an empty value and surplus values are dropped. The
// total line always comes last.
//
// The instructions hold two entries per row (item, then value) followed by the
// total.
func LayoutItems(items, values []string, total string, t ItemTable) ([]ItemRow, []DrawInstruction) {
	rows := make([]ItemRow, 0, len(items))
	draws := make([]DrawInstruction, 0, 2*len(items)+1)

	for i, item := range items {
		var value string
		if i < len(values) {
			value = values[i]
		}
		y := t.BaseY - float64(i)*t.RowHeight
		rows = append(rows, ItemRow{Index: i, Item: item, Value: value, Y: y})
		draws = append(draws,
			DrawInstruction{Text: item, X: t.ItemX, Y: y, FontSize: t.FontSize},
			DrawInstruction{Text: value, X: t.ValueX, Y: y, FontSize: t.FontSize},
		)
	}

	draws = append(draws, DrawInstruction{
		Text:     t.TotalLabel + total,
		X:        t.TotalX,
		Y:        t.BaseY - float64(len(items))*t.TotalOffsetMultiplier,
		FontSize: t.FontSize,
	})
	return rows, draws
}
