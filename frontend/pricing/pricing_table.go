package pricing

// Built-in defaults used when neither the event nor the global table sets a
// field.
const (
	DefaultFloorPerSqm     = 450
	DefaultFloorMinSize    = 4.0
	DefaultWallPerMeter    = 800
	DefaultSurcharge250    = 0
	DefaultSurcharge300    = 150
	DefaultSurcharge350    = 300
	DefaultCarpetNone      = 0
	DefaultCarpetColored   = 120
	DefaultCarpetPatterned = 160
	DefaultCarpetBranded   = 240
	DefaultGraphicsNone    = 0
	DefaultGraphicsRental  = 350
	DefaultGraphicsRigid   = 650
	DefaultGraphicsFabric  = 750

	DefaultTable     = 600
	DefaultChair     = 250
	DefaultStool     = 200
	DefaultSofa      = 1500
	DefaultArmchair  = 900
	DefaultSideTable = 350
	DefaultPodium    = 800

	DefaultCounterPerMeter = 2500
	DefaultCounterLShape   = 6500
	DefaultEspresso        = 1200
	DefaultFlowerVase      = 250
	DefaultCandyBowl       = 150

	DefaultTV43 = 2500
	DefaultTV55 = 3500
	DefaultTV70 = 5500

	DefaultStoragePerSqm = 900
	DefaultPlantSmall    = 250
	DefaultPlantMedium   = 450
	DefaultPlantLarge    = 750
	DefaultLEDStrip      = 400
	DefaultSpotLamp      = 300

	DefaultTrussFrontPerMeter = 1200
	DefaultTrussHangingRound  = 9500
	DefaultTrussHangingSquare = 8500

	DefaultPowerOutlet   = 650
	DefaultClothingRack  = 400
	DefaultSpeaker       = 900
	DefaultWallShelf     = 300
	DefaultBaseplate     = 200
	DefaultColorPainting = 1500

	DefaultLaborPerHour     = 650
	DefaultSketchSmall      = 1500
	DefaultSketchMedium     = 2500
	DefaultSketchLarge      = 4000
	DefaultProjectMgmtPct   = 10.0
	DefaultConsumablesSmall = 500
	DefaultConsumablesMed   = 900
	DefaultConsumablesLarge = 1500
)

func p(v int64) *int64 { return &v }

func pf(v float64) *float64 { return &v }

// Defaults returns a fully populated table of the built-in prices.
func Defaults() PriceTable {
	return PriceTable{
		Floor: &FloorPrices{BasePricePerSqm: p(DefaultFloorPerSqm), MinSize: pf(DefaultFloorMinSize)},
		Walls: &WallPrices{
			Straight: p(DefaultWallPerMeter),
			LShape:   p(DefaultWallPerMeter),
			UShape:   p(DefaultWallPerMeter),
			HeightSurcharge: &HeightSurchargePrices{
				H250: p(DefaultSurcharge250),
				H300: p(DefaultSurcharge300),
				H350: p(DefaultSurcharge350),
			},
		},
		Carpet: &CarpetPrices{
			None:      p(DefaultCarpetNone),
			Colored:   p(DefaultCarpetColored),
			Patterned: p(DefaultCarpetPatterned),
			Branded:   p(DefaultCarpetBranded),
		},
		Graphics: &GraphicsPrices{
			None:   p(DefaultGraphicsNone),
			Rental: p(DefaultGraphicsRental),
			Rigid:  p(DefaultGraphicsRigid),
			Fabric: p(DefaultGraphicsFabric),
		},
		Furniture: &FurniturePrices{
			Table:     p(DefaultTable),
			Chair:     p(DefaultChair),
			Stool:     p(DefaultStool),
			Sofa:      p(DefaultSofa),
			Armchair:  p(DefaultArmchair),
			SideTable: p(DefaultSideTable),
			Podium:    p(DefaultPodium),
		},
		Counters: &CounterPrices{
			PerMeter:       p(DefaultCounterPerMeter),
			LShape:         p(DefaultCounterLShape),
			LShapeMirrored: p(DefaultCounterLShape),
		},
		CounterItems: &CounterItemPrices{
			EspressoMachine: p(DefaultEspresso),
			FlowerVase:      p(DefaultFlowerVase),
			CandyBowl:       p(DefaultCandyBowl),
		},
		TVs:      &TVPrices{Size43: p(DefaultTV43), Size55: p(DefaultTV55), Size70: p(DefaultTV70)},
		Storage:  &StoragePrices{PerSqm: p(DefaultStoragePerSqm)},
		Plants:   &PlantPrices{Small: p(DefaultPlantSmall), Medium: p(DefaultPlantMedium), Large: p(DefaultPlantLarge)},
		Lighting: &LightingPrices{LEDStrips: p(DefaultLEDStrip), SpotLamps: p(DefaultSpotLamp)},
		Truss: &TrussPrices{
			None:          p(0),
			FrontStraight: p(DefaultTrussFrontPerMeter),
			HangingRound:  p(DefaultTrussHangingRound),
			HangingSquare: p(DefaultTrussHangingSquare),
		},
		Extras: &ExtrasPrices{
			PowerOutlet:   p(DefaultPowerOutlet),
			ClothingRacks: p(DefaultClothingRack),
			Speakers:      p(DefaultSpeaker),
			WallShelves:   p(DefaultWallShelf),
			Baseplate:     p(DefaultBaseplate),
			ColorPainting: p(DefaultColorPainting),
		},
		Services: &ServicePrices{
			LaborPerHour:             p(DefaultLaborPerHour),
			SketchSmall:              p(DefaultSketchSmall),
			SketchMedium:             p(DefaultSketchMedium),
			SketchLarge:              p(DefaultSketchLarge),
			ProjectManagementPercent: pf(DefaultProjectMgmtPct),
			ConsumablesSmall:         p(DefaultConsumablesSmall),
			ConsumablesMedium:        p(DefaultConsumablesMed),
			ConsumablesLarge:         p(DefaultConsumablesLarge),
		},
	}
}

// Effective layers the tables on top of the defaults, lowest priority first:
// Effective(global, event) lets event fields win over global ones.
func Effective(layers ...*PriceTable) PriceTable {
	t := Defaults()
	for _, layer := range layers {
		t.Overlay(layer)
	}
	return t
}

// Overlay copies every non-nil field of o onto t, field by field.
func (t *PriceTable) Overlay(o *PriceTable) {
	if o == nil {
		return
	}
	t.Floor = mergeSection(t.Floor, o.Floor, func(d, s *FloorPrices) {
		set(&d.BasePricePerSqm, s.BasePricePerSqm)
		set(&d.MinSize, s.MinSize)
	})
	t.Walls = mergeSection(t.Walls, o.Walls, func(d, s *WallPrices) {
		set(&d.Straight, s.Straight)
		set(&d.LShape, s.LShape)
		set(&d.UShape, s.UShape)
		d.HeightSurcharge = mergeSection(d.HeightSurcharge, s.HeightSurcharge, func(d, s *HeightSurchargePrices) {
			set(&d.H250, s.H250)
			set(&d.H300, s.H300)
			set(&d.H350, s.H350)
		})
	})
	t.Carpet = mergeSection(t.Carpet, o.Carpet, func(d, s *CarpetPrices) {
		set(&d.None, s.None)
		set(&d.Colored, s.Colored)
		set(&d.Patterned, s.Patterned)
		set(&d.Branded, s.Branded)
	})
	t.Graphics = mergeSection(t.Graphics, o.Graphics, func(d, s *GraphicsPrices) {
		set(&d.None, s.None)
		set(&d.Rental, s.Rental)
		set(&d.Rigid, s.Rigid)
		set(&d.Fabric, s.Fabric)
	})
	t.Furniture = mergeSection(t.Furniture, o.Furniture, func(d, s *FurniturePrices) {
		set(&d.Table, s.Table)
		set(&d.Chair, s.Chair)
		set(&d.Stool, s.Stool)
		set(&d.Sofa, s.Sofa)
		set(&d.Armchair, s.Armchair)
		set(&d.SideTable, s.SideTable)
		set(&d.Podium, s.Podium)
	})
	t.Counters = mergeSection(t.Counters, o.Counters, func(d, s *CounterPrices) {
		set(&d.PerMeter, s.PerMeter)
		set(&d.LShape, s.LShape)
		set(&d.LShapeMirrored, s.LShapeMirrored)
	})
	t.CounterItems = mergeSection(t.CounterItems, o.CounterItems, func(d, s *CounterItemPrices) {
		set(&d.EspressoMachine, s.EspressoMachine)
		set(&d.FlowerVase, s.FlowerVase)
		set(&d.CandyBowl, s.CandyBowl)
	})
	t.TVs = mergeSection(t.TVs, o.TVs, func(d, s *TVPrices) {
		set(&d.Size43, s.Size43)
		set(&d.Size55, s.Size55)
		set(&d.Size70, s.Size70)
	})
	t.Storage = mergeSection(t.Storage, o.Storage, func(d, s *StoragePrices) {
		set(&d.PerSqm, s.PerSqm)
	})
	t.Plants = mergeSection(t.Plants, o.Plants, func(d, s *PlantPrices) {
		set(&d.Small, s.Small)
		set(&d.Medium, s.Medium)
		set(&d.Large, s.Large)
	})
	t.Lighting = mergeSection(t.Lighting, o.Lighting, func(d, s *LightingPrices) {
		set(&d.LEDStrips, s.LEDStrips)
		set(&d.SpotLamps, s.SpotLamps)
	})
	t.Truss = mergeSection(t.Truss, o.Truss, func(d, s *TrussPrices) {
		set(&d.None, s.None)
		set(&d.FrontStraight, s.FrontStraight)
		set(&d.HangingRound, s.HangingRound)
		set(&d.HangingSquare, s.HangingSquare)
	})
	t.Extras = mergeSection(t.Extras, o.Extras, func(d, s *ExtrasPrices) {
		set(&d.PowerOutlet, s.PowerOutlet)
		set(&d.ClothingRacks, s.ClothingRacks)
		set(&d.Speakers, s.Speakers)
		set(&d.WallShelves, s.WallShelves)
		set(&d.Baseplate, s.Baseplate)
		set(&d.ColorPainting, s.ColorPainting)
	})
	t.Services = mergeSection(t.Services, o.Services, func(d, s *ServicePrices) {
		set(&d.LaborPerHour, s.LaborPerHour)
		set(&d.SketchSmall, s.SketchSmall)
		set(&d.SketchMedium, s.SketchMedium)
		set(&d.SketchLarge, s.SketchLarge)
		set(&d.ProjectManagementPercent, s.ProjectManagementPercent)
		set(&d.ConsumablesSmall, s.ConsumablesSmall)
		set(&d.ConsumablesMedium, s.ConsumablesMedium)
		set(&d.ConsumablesLarge, s.ConsumablesLarge)
	})
}

func mergeSection[S any](dst, src *S, merge func(d, s *S)) *S {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = new(S)
	} else {
		cp := *dst
		dst = &cp
	}
	merge(dst, src)
	return dst
}

func set[T any](dst **T, src *T) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}
