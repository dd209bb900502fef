package packlist

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"monterhyra/models"
)

func decode(t *testing.T, raw string) models.Packlist {
	t.Helper()
	var p models.Packlist
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestCategorizeMixedTypes(t *testing.T) {
	c := Categorize(decode(t, `{"TV 55\"": 2, "Matta": "3×2 Röd matta", "Disk 1m": 0, "Soffa": 1}`))

	require.Len(t, c, len(Categories))
	assert.Equal(t, []Item{{Label: `TV 55"`, Quantity: 2, Display: "2"}}, c.Group(CategoryTV))
	assert.Equal(t, []Item{{Label: "Matta", Quantity: 1, Display: "3×2 Röd matta"}}, c.Group(CategoryPrint))
	assert.Empty(t, c.Group(CategoryCounter))
	assert.Equal(t, []Item{{Label: "Soffa", Quantity: 1, Display: "1"}}, c.Group(CategoryFurniture))
	assert.Equal(t, 3, c.Len())
}

func TestCategorizeDropsNonPositiveKeepsText(t *testing.T) {
	c := Categorize(decode(t, `{
		"Barstol": 0,
		"Pall": -5,
		"Hylla": {"quantity": 0},
		"Ficus": {"quantity": 3},
		"Vepa bakvägg": "0",
		"Flag": true,
		"Nothing": null,
		"List": [1, 2]
	}`))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []Item{{Label: "Ficus", Quantity: 3, Display: "3"}}, c.Group(CategoryFurniture))
	assert.Equal(t, []Item{{Label: "Vepa bakvägg", Quantity: 1, Display: "0"}}, c.Group(CategoryPrint))
}

func TestCategorizeIsExclusiveAndComplete(t *testing.T) {
	raw := `{
		"TV 43\"": 1, "TV 70\"": 1,
		"Disk 2m": 1, "Bematrix ram 1x1": 2, "Barskiva": 1, "Lister forex": 4, "Corners": 8, "M8pin": 16,
		"Special connector": 2, "Grafik disk": 1, "Grafik front": 1,
		"Soffa": 1, "Kentia palm": 2, "Espressomaskin": 1,
		"SAM-led": 4, "Högtalare": 2, "Bluetooth-Högtalarpaket": 1,
		"Vepa 3x2.5": 1, "Forex skylt": 1, "Hyrgrafik": 1, "Matta": "4x3 grå",
		"0.992 x 2.48": 6, "1 x 2": 3, "2.48 x 1": 2, "corner_3way": 4, "m8_pin": 10, "connectors": 40, "baseplate": 6,
		"Förlängningssladd": 2, "Skrivbordslampa": 1
	}`
	entries := decode(t, raw)
	c := Categorize(entries)

	seen := make(map[string]Category)
	for _, g := range c {
		for _, item := range g.Items {
			_, dup := seen[item.Label]
			require.False(t, dup, "%s appears twice", item.Label)
			seen[item.Label] = g.Category
		}
	}
	require.Len(t, seen, len(entries))

	expect := map[string]Category{
		`TV 43"`:                  CategoryTV,
		"Disk 2m":                 CategoryCounter,
		"Bematrix ram 1x1":        CategoryCounter,
		"Corners":                 CategoryCounter,
		"M8pin":                   CategoryCounter,
		"Special connector":       CategoryCounter,
		"Lister forex":            CategoryCounter,
		"Grafik disk":             CategoryCounter,
		"Grafik front":            CategoryCounter,
		"Kentia palm":             CategoryFurniture,
		"Espressomaskin":          CategoryFurniture,
		"SAM-led":                 CategoryTech,
		"Bluetooth-Högtalarpaket": CategoryTech,
		"Vepa 3x2.5":              CategoryPrint,
		"Forex skylt":             CategoryPrint,
		"Hyrgrafik":               CategoryPrint,
		"Matta":                   CategoryPrint,
		"0.992 x 2.48":            CategoryFrame,
		"1 x 2":                   CategoryFrame,
		"2.48 x 1":                CategoryFrame,
		"corner_3way":             CategoryFrame,
		"m8_pin":                  CategoryFrame,
		"connectors":              CategoryFrame,
		"baseplate":               CategoryFrame,
		"Förlängningssladd":       CategoryMisc,
		"Skrivbordslampa":         CategoryMisc,
	}
	for label, cat := range expect {
		assert.Equal(t, cat, seen[label], label)
	}
}

func TestCategorizePreservesInputOrder(t *testing.T) {
	c := Categorize(decode(t, `{"Yucca": 1, "Soffa": 2, "Bambu": 1, "Fåtölj": 1}`))

	var labels []string
	for _, item := range c.Group(CategoryFurniture) {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Yucca", "Soffa", "Bambu", "Fåtölj"}, labels)
}

func TestCategorizeIsIdempotent(t *testing.T) {
	entries := decode(t, `{"TV 55\"": 1, "Matta": "röd", "1 x 2": 4, "Okänd": 2}`)

	first, err := json.Marshal(Categorize(entries))
	require.NoError(t, err)
	second, err := json.Marshal(Categorize(entries))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFrameRuleExcludesCounterLiterals(t *testing.T) {
	for _, label := range []string{"Corners", "M8pin", "Special connector", "Lister forex"} {
		assert.False(t, matchFrame(label), label)
	}
	assert.True(t, matchFrame("corner_2way"))
}

func TestRulesAreOrderedByPriority(t *testing.T) {
	for i := 1; i < len(Rules); i++ {
		assert.Less(t, Rules[i-1].Priority, Rules[i].Priority)
	}
}

func TestExportXLSX(t *testing.T) {
	c := Categorize(decode(t, `{"TV 55\"": 2, "Matta": "=HYPERLINK(\"x\")", "Soffa": 1}`))

	data, err := ExportXLSX("Order 1", c)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Order 1", title)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	var found bool
	for _, row := range rows {
		if len(row) >= 3 && row[0] == "Matta" {
			found = true
			assert.Equal(t, `'=HYPERLINK("x")`, row[2])
		}
	}
	assert.True(t, found, "Matta row missing")
}
