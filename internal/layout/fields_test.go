package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutFieldsKeepsOrderAndEmptyValues(t *testing.T) {
	specs := []FieldSpec{
		{Key: "client", Label: "Cliente: ", X: 60, Y: 760, FontSize: 14},
		{Key: "shipping", Label: "Frete: ", X: 60, Y: 124, FontSize: 11},
		{Key: "leadTime", X: 300, Y: 124, FontSize: 9},
	}
	values := map[string]string{"client": "Padaria Central", "leadTime": "15 dias"}

	got := LayoutFields(values, specs)

	require.Len(t, got, 3)
	assert.Equal(t, DrawInstruction{Text: "Cliente: Padaria Central", X: 60, Y: 760, FontSize: 14}, got[0])
	assert.Equal(t, DrawInstruction{Text: "Frete: ", X: 60, Y: 124, FontSize: 11}, got[1])
	assert.Equal(t, DrawInstruction{Text: "15 dias", X: 300, Y: 124, FontSize: 9}, got[2])
}

func TestLayoutFieldsNilValues(t *testing.T) {
	got := LayoutFields(nil, []FieldSpec{{Key: "client", Label: "Cliente: ", X: 1, Y: 2, FontSize: 3}})
	require.Len(t, got, 1)
	assert.Equal(t, "Cliente: ", got[0].Text)

	assert.Empty(t, LayoutFields(map[string]string{"client": "x"}, nil))
}

func TestLayoutItemsMismatchedLists(t *testing.T) {
	table := ItemTable{ItemX: 60, ValueX: 260, BaseY: 570, RowHeight: 15, FontSize: 11,
		TotalX: 60, TotalLabel: "Total: ", TotalOffsetMultiplier: 20}

	rows, draws := LayoutItems([]string{"A", "B", "C"}, []string{"1", "2"}, "3", table)

	assert.Equal(t, []ItemRow{
		{Index: 0, Item: "A", Value: "1", Y: 570},
		{Index: 1, Item: "B", Value: "2", Y: 555},
		{Index: 2, Item: "C", Value: "", Y: 540},
	}, rows)

	require.Len(t, draws, 7)
	assert.Equal(t, DrawInstruction{Text: "A", X: 60, Y: 570, FontSize: 11}, draws[0])
	assert.Equal(t, DrawInstruction{Text: "1", X: 260, Y: 570, FontSize: 11}, draws[1])
	assert.Equal(t, DrawInstruction{Text: "", X: 260, Y: 540, FontSize: 11}, draws[5])
	assert.Equal(t, DrawInstruction{Text: "Total: 3", X: 60, Y: 510, FontSize: 11}, draws[6])
}

func TestLayoutItemsDropsSurplusValues(t *testing.T) {
	table := ItemTable{BaseY: 100, RowHeight: 10, TotalOffsetMultiplier: 10}
	rows, draws := LayoutItems([]string{"only"}, []string{"1", "2", "3"}, "", table)

	assert.Equal(t, []ItemRow{{Index: 0, Item: "only", Value: "1", Y: 100}}, rows)
	require.Len(t, draws, 3)
	assert.Equal(t, 90.0, draws[2].Y)
}

func TestLayoutItemsNoItems(t *testing.T) {
	table := ItemTable{TotalX: 40, BaseY: 570, RowHeight: 15, TotalLabel: "Total: ", TotalOffsetMultiplier: 20, FontSize: 10}
	rows, draws := LayoutItems(nil, nil, "", table)

	assert.Empty(t, rows)
	assert.Equal(t, []DrawInstruction{{Text: "Total: ", X: 40, Y: 570, FontSize: 10}}, draws)
}
