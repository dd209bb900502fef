package models

// Dimension is a booth or module size in meters.
type Dimension struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Position is a floor-plane placement consumed by the 3D preview.
type Position struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type WallShape string

const (
	WallShapeNone     WallShape = "none"
	WallShapeStraight WallShape = "straight"
	WallShapeL        WallShape = "l"
	WallShapeU        WallShape = "u"
)

type CarpetVariant string

const (
	CarpetNone      CarpetVariant = "none"
	CarpetColored   CarpetVariant = "colored"
	CarpetPatterned CarpetVariant = "patterned"
	CarpetBranded   CarpetVariant = "branded"
)

type GraphicsVariant string

const (
	GraphicsNone   GraphicsVariant = "none"
	GraphicsRental GraphicsVariant = "rental"
	GraphicsRigid  GraphicsVariant = "rigid"
	GraphicsFabric GraphicsVariant = "fabric"
)

type FurnitureKind string

const (
	FurnitureTable     FurnitureKind = "table"
	FurnitureChair     FurnitureKind = "chair"
	FurnitureStool     FurnitureKind = "stool"
	FurnitureSofa      FurnitureKind = "sofa"
	FurnitureArmchair  FurnitureKind = "armchair"
	FurnitureSideTable FurnitureKind = "side_table"
	FurniturePodium    FurnitureKind = "podium"
)

type PlantSize string

const (
	PlantSmall  PlantSize = "small"
	PlantMedium PlantSize = "medium"
	PlantLarge  PlantSize = "large"
)

type CounterShape string

const (
	CounterStraight  CounterShape = "straight"
	CounterL         CounterShape = "l"
	CounterLMirrored CounterShape = "l_mirrored"
)

type CounterAccessoryKind string

const (
	AccessoryEspressoMachine CounterAccessoryKind = "espresso_machine"
	AccessoryFlowerVase      CounterAccessoryKind = "flower_vase"
	AccessoryCandyBowl       CounterAccessoryKind = "candy_bowl"
)

type LightingKind string

const (
	LightingLEDStrip LightingKind = "led_strip"
	LightingSpotLamp LightingKind = "spot_lamp"
)

type TrussKind string

const (
	TrussNone          TrussKind = "none"
	TrussFrontStraight TrussKind = "front_straight"
	TrussHangingRound  TrussKind = "hanging_round"
	TrussHangingSquare TrussKind = "hanging_square"
)

type FloorConfig struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// Area returns the floor area in square meters.
func (f FloorConfig) Area() float64 {
	return f.Width * f.Depth
}

type WallConfig struct {
	Shape  WallShape `json:"shape"`
	Width  float64   `json:"width"`
	Depth  float64   `json:"depth"`
	Height float64   `json:"height"`
	Color  string    `json:"color,omitempty"`
}

// LinearMeters is the total running length of wall for the shape.
func (w WallConfig) LinearMeters() float64 {
	switch w.Shape {
	case WallShapeStraight:
		return w.Width
	case WallShapeL:
		return w.Width + w.Depth
	case WallShapeU:
		return w.Width + 2*w.Depth
	default:
		return 0
	}
}

type FurnitureItem struct {
	Kind     FurnitureKind `json:"type"`
	Position Position      `json:"position"`
	Rotation float64       `json:"rotation,omitempty"`
	Color    string        `json:"color,omitempty"`
}

type PlantItem struct {
	Size     PlantSize `json:"size"`
	Species  string    `json:"species,omitempty"`
	Position Position  `json:"position"`
}

type CounterItem struct {
	Shape    CounterShape `json:"shape"`
	Length   float64      `json:"length"`
	Position Position     `json:"position"`
	Rotation float64      `json:"rotation,omitempty"`
	Color    string       `json:"color,omitempty"`
}

type CounterAccessory struct {
	Kind     CounterAccessoryKind `json:"type"`
	Quantity int                  `json:"quantity"`
}

type TVItem struct {
	SizeInches int      `json:"size"`
	Position   Position `json:"position"`
	WallID     string   `json:"wallId,omitempty"`
}

type StorageItem struct {
	Width    float64  `json:"width"`
	Depth    float64  `json:"depth"`
	Height   float64  `json:"height"`
	Position Position `json:"position"`
}

// Area returns the storage footprint in square meters.
func (s StorageItem) Area() float64 {
	return s.Width * s.Depth
}

type LightingItem struct {
	Kind     LightingKind `json:"type"`
	Quantity int          `json:"quantity"`
}

type TrussConfig struct {
	Kind   TrussKind `json:"type"`
	Length float64   `json:"length"`
}

type Extras struct {
	PowerOutlets  int `json:"powerOutlets,omitempty"`
	ClothingRacks int `json:"clothingRacks,omitempty"`
	Speakers      int `json:"speakers,omitempty"`
	WallShelves   int `json:"wallShelves,omitempty"`
	Baseplates    int `json:"baseplates,omitempty"`
	ColorPainting int `json:"colorPainting,omitempty"`
}

type Services struct {
	LaborHours        float64 `json:"laborHours,omitempty"`
	Sketch            bool    `json:"sketch,omitempty"`
	ProjectManagement bool    `json:"projectManagement,omitempty"`
	Consumables       bool    `json:"consumables,omitempty"`
}

// BoothConfig is everything the customer selected in the configurator.
//
// Nil or empty sections contribute nothing to the price. Numeric fields
// are assumed non-negative; callers validate before pricing.
type BoothConfig struct {
	Floor              *FloorConfig       `json:"floor,omitempty"`
	Walls              *WallConfig        `json:"walls,omitempty"`
	Carpet             CarpetVariant      `json:"carpet,omitempty"`
	Graphics           GraphicsVariant    `json:"graphics,omitempty"`
	Furniture          []FurnitureItem    `json:"furniture,omitempty"`
	Plants             []PlantItem        `json:"plants,omitempty"`
	Counters           []CounterItem      `json:"counters,omitempty"`
	CounterAccessories []CounterAccessory `json:"counterAccessories,omitempty"`
	TVs                []TVItem           `json:"tvs,omitempty"`
	Storages           []StorageItem      `json:"storages,omitempty"`
	Lighting           []LightingItem     `json:"lighting,omitempty"`
	Truss              *TrussConfig       `json:"truss,omitempty"`
	Extras             Extras             `json:"extras,omitempty"`
	Services           *Services          `json:"services,omitempty"`
}
