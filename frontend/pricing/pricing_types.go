package pricing

// PriceTable holds unit prices in whole SEK. Every field is optional: a nil
// section or field means "use the next layer", never "free". Event tables
// overlay the global table which overlays the built-in defaults.
type PriceTable struct {
	Floor        *FloorPrices       `json:"floor,omitempty"`
	Walls        *WallPrices        `json:"walls,omitempty"`
	Carpet       *CarpetPrices      `json:"carpet,omitempty"`
	Graphics     *GraphicsPrices    `json:"graphics,omitempty"`
	Furniture    *FurniturePrices   `json:"furniture,omitempty"`
	Counters     *CounterPrices     `json:"counters,omitempty"`
	CounterItems *CounterItemPrices `json:"counterItems,omitempty"`
	TVs          *TVPrices          `json:"tvs,omitempty"`
	Storage      *StoragePrices     `json:"storage,omitempty"`
	Plants       *PlantPrices       `json:"plants,omitempty"`
	Lighting     *LightingPrices    `json:"lighting,omitempty"`
	Truss        *TrussPrices       `json:"truss,omitempty"`
	Extras       *ExtrasPrices      `json:"extras,omitempty"`
	Services     *ServicePrices     `json:"services,omitempty"`
}

type FloorPrices struct {
	BasePricePerSqm *int64   `json:"basePricePerSqm,omitempty"`
	MinSize         *float64 `json:"minSize,omitempty"`
}

// WallPrices are per linear meter.
type WallPrices struct {
	Straight        *int64                `json:"straight,omitempty"`
	LShape          *int64                `json:"lShape,omitempty"`
	UShape          *int64                `json:"uShape,omitempty"`
	HeightSurcharge *HeightSurchargePrices `json:"heightSurcharge,omitempty"`
}

// HeightSurchargePrices are added per linear meter of wall.
type HeightSurchargePrices struct {
	H250 *int64 `json:"2.5,omitempty"`
	H300 *int64 `json:"3.0,omitempty"`
	H350 *int64 `json:"3.5,omitempty"`
}

// CarpetPrices are per square meter of floor.
type CarpetPrices struct {
	None      *int64 `json:"none,omitempty"`
	Colored   *int64 `json:"colored,omitempty"`
	Patterned *int64 `json:"patterned,omitempty"`
	Branded   *int64 `json:"branded,omitempty"`
}

// GraphicsPrices are per square meter of wall face.
type GraphicsPrices struct {
	None   *int64 `json:"none,omitempty"`
	Rental *int64 `json:"rental,omitempty"`
	Rigid  *int64 `json:"rigid,omitempty"`
	Fabric *int64 `json:"fabric,omitempty"`
}

type FurniturePrices struct {
	Table     *int64 `json:"table,omitempty"`
	Chair     *int64 `json:"chair,omitempty"`
	Stool     *int64 `json:"stool,omitempty"`
	Sofa      *int64 `json:"sofa,omitempty"`
	Armchair  *int64 `json:"armchair,omitempty"`
	SideTable *int64 `json:"side_table,omitempty"`
	Podium    *int64 `json:"podium,omitempty"`
}

// CounterPrices: straight counters are per meter, L shapes are flat.
type CounterPrices struct {
	PerMeter       *int64 `json:"perMeter,omitempty"`
	LShape         *int64 `json:"lShape,omitempty"`
	LShapeMirrored *int64 `json:"lShapeMirrored,omitempty"`
}

type CounterItemPrices struct {
	EspressoMachine *int64 `json:"espressoMachine,omitempty"`
	FlowerVase      *int64 `json:"flowerVase,omitempty"`
	CandyBowl       *int64 `json:"candyBowl,omitempty"`
}

// TVPrices are keyed by screen size bucket in inches.
type TVPrices struct {
	Size43 *int64 `json:"43,omitempty"`
	Size55 *int64 `json:"55,omitempty"`
	Size70 *int64 `json:"70,omitempty"`
}

type StoragePrices struct {
	PerSqm *int64 `json:"perSqm,omitempty"`
}

type PlantPrices struct {
	Small  *int64 `json:"small,omitempty"`
	Medium *int64 `json:"medium,omitempty"`
	Large  *int64 `json:"large,omitempty"`
}

type LightingPrices struct {
	LEDStrips *int64 `json:"ledStrips,omitempty"`
	SpotLamps *int64 `json:"spotLamps,omitempty"`
}

// TrussPrices: front straight truss is per meter, hanging rigs are flat.
type TrussPrices struct {
	None          *int64 `json:"none,omitempty"`
	FrontStraight *int64 `json:"frontStraight,omitempty"`
	HangingRound  *int64 `json:"hangingRound,omitempty"`
	HangingSquare *int64 `json:"hangingSquare,omitempty"`
}

type ExtrasPrices struct {
	PowerOutlet   *int64 `json:"powerOutlet,omitempty"`
	ClothingRacks *int64 `json:"clothingRacks,omitempty"`
	Speakers      *int64 `json:"speakers,omitempty"`
	WallShelves   *int64 `json:"wallShelves,omitempty"`
	Baseplate     *int64 `json:"baseplate,omitempty"`
	ColorPainting *int64 `json:"colorPainting,omitempty"`
}

// ServicePrices: sketch and consumables fees are bucketed by floor area
// (up to 10 m², up to 25 m², larger).
type ServicePrices struct {
	LaborPerHour             *int64   `json:"laborPerHour,omitempty"`
	SketchSmall              *int64   `json:"sketchSmall,omitempty"`
	SketchMedium             *int64   `json:"sketchMedium,omitempty"`
	SketchLarge              *int64   `json:"sketchLarge,omitempty"`
	ProjectManagementPercent *float64 `json:"projectManagementPercent,omitempty"`
	ConsumablesSmall         *int64   `json:"consumablesSmall,omitempty"`
	ConsumablesMedium        *int64   `json:"consumablesMedium,omitempty"`
	ConsumablesLarge         *int64   `json:"consumablesLarge,omitempty"`
}

// LineItem is one priced row of a quote.
type LineItem struct {
	Key         string  `json:"key"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Quote is the itemized price of a booth configuration. Total is the exact
// sum of the line amounts; rounding happens only when formatting.
type Quote struct {
	LineItems []LineItem `json:"lineItems"`
	Total     float64    `json:"total"`
}
