package packlist

import (
	"strconv"

	"monterhyra/models"
)

// Categorize partitions entries into the fixed categories.
//
// Text entries always survive with quantity 1. Count and quantity entries
// survive only when positive. Unsupported values are skipped.
func Categorize(entries models.Packlist) Categorized {
	index := make(map[Category]int, len(Categories))
	out := make(Categorized, len(Categories))
	for i, c := range Categories {
		index[c] = i
		out[i] = Group{Category: c, Title: c.Title(), Items: []Item{}}
	}

	for _, entry := range entries {
		item, ok := resolve(entry)
		if !ok {
			continue
		}
		i := index[Classify(entry.Label)]
		out[i].Items = append(out[i].Items, item)
	}
	return out
}

func resolve(entry models.PacklistEntry) (Item, bool) {
	v := entry.Value
	switch v.Kind {
	case models.PacklistValueText:
		return Item{Label: entry.Label, Quantity: 1, Display: v.Text}, true
	case models.PacklistValueCount, models.PacklistValueQuantity:
		if v.Quantity <= 0 {
			return Item{}, false
		}
		return Item{Label: entry.Label, Quantity: v.Quantity, Display: formatQuantity(v.Quantity)}, true
	default:
		return Item{}, false
	}
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
