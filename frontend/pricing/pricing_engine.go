package pricing

import (
	"fmt"

	"monterhyra/models"
)

const (
	unitSqm   = "m²"
	unitMeter = "m"
	unitPiece = "st"
	unitHour  = "h"
	unitFlat  = "fast"
)

// Area buckets for sketch and consumables fees.
const (
	smallAreaMax  = 10.0
	mediumAreaMax = 25.0
)

// Compute prices cfg against table layered over the built-in defaults.
//
// Sections that are nil or empty contribute nothing. Dimensions and
// quantities are assumed non-negative; the engine does not validate them.
func Compute(cfg models.BoothConfig, table *PriceTable) Quote {
	t := Effective(table)
	q := &quoteBuilder{}

	floorArea := 0.0
	if cfg.Floor != nil {
		floorArea = cfg.Floor.Area()
		billable := max(floorArea, deref(t.Floor.MinSize))
		q.add("floor", fmt.Sprintf("Golv %.1f × %.1f m", cfg.Floor.Width, cfg.Floor.Depth), billable, unitSqm, price(t.Floor.BasePricePerSqm))
	}

	if w := cfg.Walls; w != nil && w.Shape != "" && w.Shape != models.WallShapeNone {
		meters := w.LinearMeters()
		q.add("walls."+string(w.Shape), "Väggar ("+wallShapeLabel(w.Shape)+")", meters, unitMeter, wallRate(t.Walls, w.Shape))
		q.add("walls.height", fmt.Sprintf("Höjdtillägg %.1f m", w.Height), meters, unitMeter, heightSurcharge(t.Walls.HeightSurcharge, w.Height))

		if cfg.Graphics != "" {
			q.add("graphics."+string(cfg.Graphics), "Grafik ("+graphicsLabel(cfg.Graphics)+")", meters*w.Height, unitSqm, graphicsRate(t.Graphics, cfg.Graphics))
		}
	}

	if cfg.Carpet != "" {
		q.add("carpet."+string(cfg.Carpet), "Matta ("+carpetLabel(cfg.Carpet)+")", floorArea, unitSqm, carpetRate(t.Carpet, cfg.Carpet))
	}

	furnitureCounts, furnitureOrder := countBy(cfg.Furniture, func(f models.FurnitureItem) models.FurnitureKind { return f.Kind })
	for _, kind := range furnitureOrder {
		q.add("furniture."+string(kind), furnitureLabel(kind), furnitureCounts[kind], unitPiece, furnitureRate(t.Furniture, kind))
	}

	for i, c := range cfg.Counters {
		key := fmt.Sprintf("counters.%d", i)
		switch c.Shape {
		case models.CounterL:
			q.add(key, "Disk L-form", 1, unitFlat, price(t.Counters.LShape))
		case models.CounterLMirrored:
			q.add(key, "Disk L-form (spegelvänd)", 1, unitFlat, price(t.Counters.LShapeMirrored))
		default:
			q.add(key, fmt.Sprintf("Disk %.1f m", c.Length), c.Length, unitMeter, price(t.Counters.PerMeter))
		}
	}

	for _, a := range cfg.CounterAccessories {
		q.add("counterItems."+string(a.Kind), accessoryLabel(a.Kind), float64(a.Quantity), unitPiece, accessoryRate(t.CounterItems, a.Kind))
	}

	tvCounts, tvOrder := countBy(cfg.TVs, func(tv models.TVItem) int { return tvBucket(tv.SizeInches) })
	for _, bucket := range tvOrder {
		q.add(fmt.Sprintf("tvs.%d", bucket), fmt.Sprintf("TV %d\"", bucket), tvCounts[bucket], unitPiece, tvRate(t.TVs, bucket))
	}

	storageArea := 0.0
	for _, s := range cfg.Storages {
		storageArea += s.Area()
	}
	q.add("storage", "Förråd", storageArea, unitSqm, price(t.Storage.PerSqm))

	plantCounts, plantOrder := countBy(cfg.Plants, func(pl models.PlantItem) models.PlantSize { return pl.Size })
	for _, size := range plantOrder {
		q.add("plants."+string(size), "Växt ("+plantLabel(size)+")", plantCounts[size], unitPiece, plantRate(t.Plants, size))
	}

	for _, l := range cfg.Lighting {
		switch l.Kind {
		case models.LightingSpotLamp:
			q.add("lighting.spot", "Spotlampa", float64(l.Quantity), unitPiece, price(t.Lighting.SpotLamps))
		default:
			q.add("lighting.led", "LED-list", float64(l.Quantity), unitPiece, price(t.Lighting.LEDStrips))
		}
	}

	if tr := cfg.Truss; tr != nil {
		switch tr.Kind {
		case models.TrussFrontStraight:
			length := tr.Length
			if length <= 0 && cfg.Floor != nil {
				length = cfg.Floor.Width
			}
			q.add("truss.frontStraight", "Truss rak front", length, unitMeter, price(t.Truss.FrontStraight))
		case models.TrussHangingRound:
			q.add("truss.hangingRound", "Hängande truss rund", 1, unitFlat, price(t.Truss.HangingRound))
		case models.TrussHangingSquare:
			q.add("truss.hangingSquare", "Hängande truss fyrkant", 1, unitFlat, price(t.Truss.HangingSquare))
		}
	}

	ex := cfg.Extras
	q.add("extras.powerOutlet", "Eluttag", float64(ex.PowerOutlets), unitPiece, price(t.Extras.PowerOutlet))
	q.add("extras.clothingRacks", "Klädställning", float64(ex.ClothingRacks), unitPiece, price(t.Extras.ClothingRacks))
	q.add("extras.speakers", "Högtalare", float64(ex.Speakers), unitPiece, price(t.Extras.Speakers))
	q.add("extras.wallShelves", "Vägghylla", float64(ex.WallShelves), unitPiece, price(t.Extras.WallShelves))
	q.add("extras.baseplate", "Bottenplatta", float64(ex.Baseplates), unitPiece, price(t.Extras.Baseplate))
	q.add("extras.colorPainting", "Färgmålning", float64(ex.ColorPainting), unitPiece, price(t.Extras.ColorPainting))

	if s := cfg.Services; s != nil {
		sp := t.Services
		q.add("services.labor", "Arbetstid", s.LaborHours, unitHour, price(sp.LaborPerHour))
		if s.Sketch {
			q.add("services.sketch", "Skiss", 1, unitFlat, bucketRate(floorArea, sp.SketchSmall, sp.SketchMedium, sp.SketchLarge))
		}
		if s.Consumables {
			q.add("services.consumables", "Förbrukningsmaterial", 1, unitFlat, bucketRate(floorArea, sp.ConsumablesSmall, sp.ConsumablesMedium, sp.ConsumablesLarge))
		}
		if s.ProjectManagement {
			subtotal := q.total()
			pct := deref(sp.ProjectManagementPercent)
			q.add("services.projectManagement", fmt.Sprintf("Projektledning %.0f %%", pct), 1, unitFlat, subtotal*pct/100)
		}
	}

	return Quote{LineItems: q.items, Total: q.total()}
}

type quoteBuilder struct {
	items []LineItem
}

// add appends a line unless it would be empty or zero.
func (q *quoteBuilder) add(key, description string, quantity float64, unit string, unitPrice float64) {
	if quantity <= 0 {
		return
	}
	amount := quantity * unitPrice
	if amount == 0 {
		return
	}
	q.items = append(q.items, LineItem{
		Key:         key,
		Description: description,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Amount:      amount,
	})
}

func (q *quoteBuilder) total() float64 {
	sum := 0.0
	for _, item := range q.items {
		sum += item.Amount
	}
	return sum
}

// countBy tallies items by key and keeps first-seen key order.
func countBy[T any, K comparable](items []T, key func(T) K) (map[K]float64, []K) {
	counts := make(map[K]float64)
	var order []K
	for _, item := range items {
		k := key(item)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	return counts, order
}

func price(v *int64) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func wallRate(w *WallPrices, shape models.WallShape) float64 {
	switch shape {
	case models.WallShapeL:
		return price(w.LShape)
	case models.WallShapeU:
		return price(w.UShape)
	default:
		return price(w.Straight)
	}
}

func heightSurcharge(h *HeightSurchargePrices, height float64) float64 {
	if h == nil {
		return 0
	}
	switch {
	case height <= 2.5:
		return price(h.H250)
	case height <= 3.0:
		return price(h.H300)
	default:
		return price(h.H350)
	}
}

func carpetRate(c *CarpetPrices, v models.CarpetVariant) float64 {
	switch v {
	case models.CarpetColored:
		return price(c.Colored)
	case models.CarpetPatterned:
		return price(c.Patterned)
	case models.CarpetBranded:
		return price(c.Branded)
	default:
		return price(c.None)
	}
}

func graphicsRate(g *GraphicsPrices, v models.GraphicsVariant) float64 {
	switch v {
	case models.GraphicsRental:
		return price(g.Rental)
	case models.GraphicsRigid:
		return price(g.Rigid)
	case models.GraphicsFabric:
		return price(g.Fabric)
	default:
		return price(g.None)
	}
}

func furnitureRate(f *FurniturePrices, kind models.FurnitureKind) float64 {
	switch kind {
	case models.FurnitureTable:
		return price(f.Table)
	case models.FurnitureChair:
		return price(f.Chair)
	case models.FurnitureStool:
		return price(f.Stool)
	case models.FurnitureSofa:
		return price(f.Sofa)
	case models.FurnitureArmchair:
		return price(f.Armchair)
	case models.FurnitureSideTable:
		return price(f.SideTable)
	case models.FurniturePodium:
		return price(f.Podium)
	default:
		return 0
	}
}

func accessoryRate(c *CounterItemPrices, kind models.CounterAccessoryKind) float64 {
	switch kind {
	case models.AccessoryEspressoMachine:
		return price(c.EspressoMachine)
	case models.AccessoryFlowerVase:
		return price(c.FlowerVase)
	case models.AccessoryCandyBowl:
		return price(c.CandyBowl)
	default:
		return 0
	}
}

// tvBucket maps a screen size to the priced size class.
func tvBucket(inches int) int {
	switch {
	case inches <= 43:
		return 43
	case inches <= 55:
		return 55
	default:
		return 70
	}
}

func tvRate(t *TVPrices, bucket int) float64 {
	switch bucket {
	case 43:
		return price(t.Size43)
	case 55:
		return price(t.Size55)
	default:
		return price(t.Size70)
	}
}

func plantRate(pl *PlantPrices, size models.PlantSize) float64 {
	switch size {
	case models.PlantSmall:
		return price(pl.Small)
	case models.PlantMedium:
		return price(pl.Medium)
	case models.PlantLarge:
		return price(pl.Large)
	default:
		return 0
	}
}

func bucketRate(area float64, small, medium, large *int64) float64 {
	switch {
	case area <= smallAreaMax:
		return price(small)
	case area <= mediumAreaMax:
		return price(medium)
	default:
		return price(large)
	}
}

func wallShapeLabel(s models.WallShape) string {
	switch s {
	case models.WallShapeL:
		return "L-form"
	case models.WallShapeU:
		return "U-form"
	default:
		return "rak"
	}
}

func carpetLabel(v models.CarpetVariant) string {
	switch v {
	case models.CarpetColored:
		return "färgad"
	case models.CarpetPatterned:
		return "mönstrad"
	case models.CarpetBranded:
		return "logotyp"
	default:
		return "ingen"
	}
}

func graphicsLabel(v models.GraphicsVariant) string {
	switch v {
	case models.GraphicsRental:
		return "hyrgrafik"
	case models.GraphicsRigid:
		return "forex"
	case models.GraphicsFabric:
		return "vepa"
	default:
		return "ingen"
	}
}

func furnitureLabel(kind models.FurnitureKind) string {
	switch kind {
	case models.FurnitureTable:
		return "Barbord"
	case models.FurnitureChair:
		return "Stol"
	case models.FurnitureStool:
		return "Barstol"
	case models.FurnitureSofa:
		return "Soffa"
	case models.FurnitureArmchair:
		return "Fåtölj"
	case models.FurnitureSideTable:
		return "Sidobord"
	case models.FurniturePodium:
		return "Podie"
	default:
		return string(kind)
	}
}

func accessoryLabel(kind models.CounterAccessoryKind) string {
	switch kind {
	case models.AccessoryEspressoMachine:
		return "Espressomaskin"
	case models.AccessoryFlowerVase:
		return "Blomma"
	case models.AccessoryCandyBowl:
		return "Godisskål"
	default:
		return string(kind)
	}
}

func plantLabel(size models.PlantSize) string {
	switch size {
	case models.PlantSmall:
		return "liten"
	case models.PlantMedium:
		return "mellan"
	default:
		return "stor"
	}
}
