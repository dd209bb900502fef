package packlist

// Item is one surviving packing list entry.
type Item struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	// Display is the free text for text-valued entries, else the quantity.
	Display string `json:"display"`
}

// Group is one category with its items in input order.
type Group struct {
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Items    []Item   `json:"items"`
}

// Categorized always holds every category, in display order, even when empty.
type Categorized []Group

// Group returns the items of c.
func (c Categorized) Group(cat Category) []Item {
	for _, g := range c {
		if g.Category == cat {
			return g.Items
		}
	}
	return nil
}

// Len is the total number of items across all groups.
func (c Categorized) Len() int {
	n := 0
	for _, g := range c {
		n += len(g.Items)
	}
	return n
}
