package printfiles

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoWalls is returned when a run is started without any wall designs.
	ErrNoWalls = errors.New("printfiles: no walls to render")
	// ErrNothingRendered is returned when every wall in a run failed.
	ErrNothingRendered = errors.New("printfiles: no wall document could be rendered")
)

// PrintType is the print substrate. It decides the bleed.
type PrintType string

const (
	PrintFabric PrintType = "fabric"
	PrintRigid  PrintType = "rigid"
)

// Bleed in millimeters per substrate, fixed by the print processes.
const (
	FabricBleedMM = 30
	RigidBleedMM  = 3
)

// ParsePrintType accepts the canonical names and the trade names
// "vepa" (fabric) and "forex" (rigid).
func ParsePrintType(s string) (PrintType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fabric", "vepa":
		return PrintFabric, nil
	case "rigid", "forex":
		return PrintRigid, nil
	default:
		return "", fmt.Errorf("unknown print type %q", s)
	}
}

// BleedMM returns the bleed margin added on every side of the page.
func (p PrintType) BleedMM() int {
	if p == PrintFabric {
		return FabricBleedMM
	}
	return RigidBleedMM
}

// TradeName is the name print vendors use, e.g. "VEPA".
func (p PrintType) TradeName() string {
	if p == PrintFabric {
		return "VEPA"
	}
	return "FOREX"
}

// WallCategory decides the archive file prefix.
type WallCategory string

const (
	WallStorage WallCategory = "storage"
	WallBooth   WallCategory = "booth"
)

func (c WallCategory) prefix() string {
	if c == WallBooth {
		return "Vagg"
	}
	return "Forrad"
}

func (c WallCategory) documentTitle() string {
	if c == WallBooth {
		return "Vägg"
	}
	return "Förråd"
}

// Logo is placed at an absolute position measured from the wall's top-left
// trim corner, in millimeters.
type Logo struct {
	ImageData string  `json:"imageData"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// WallDesign describes the printed face of one free wall. WidthMM and
// HeightMM are the trim size and are expected to be module-rounded already.
type WallDesign struct {
	WallID             string       `json:"wallId"`
	Label              string       `json:"label"`
	Category           WallCategory `json:"category,omitempty"`
	WidthMeters        float64      `json:"widthMeters"`
	HeightMeters       float64      `json:"heightMeters"`
	WidthMM            int          `json:"widthMM"`
	HeightMM           int          `json:"heightMM"`
	BackgroundColor    string       `json:"backgroundColor"`
	BackgroundColorRGB string       `json:"backgroundColorRGB"`
	BackgroundImage    string       `json:"backgroundImage,omitempty"`
	Logo               *Logo        `json:"logo,omitempty"`
	PrintType          PrintType    `json:"printType"`
	IsFree             bool         `json:"isFree"`
}

// RunStatus is the overall outcome of a print run.
type RunStatus string

const (
	StatusSucceeded RunStatus = "succeeded"
	StatusPartial   RunStatus = "partial"
	StatusFailed    RunStatus = "failed"
)

// Failure stages.
const (
	StageDimensions = "dimensions"
	StageBackground = "background"
	StageLogo       = "logo"
	StageImage      = "image"
	StageRender     = "render"
)

// WallFailure records one problem in one wall. Background, logo and image
// failures still yield a document without the offending images; render
// failures yield no document.
type WallFailure struct {
	WallID string `json:"wallId"`
	Label  string `json:"label"`
	Stage  string `json:"stage"`
	Err    string `json:"error"`
}

// Document is one rendered wall PDF.
type Document struct {
	Name         string  `json:"name"`
	WallID       string  `json:"wallId"`
	WidthMM      int     `json:"widthMM"`
	HeightMM     int     `json:"heightMM"`
	PageWidthMM  float64 `json:"pageWidthMM"`
	PageHeightMM float64 `json:"pageHeightMM"`
	Bytes        []byte  `json:"-"`
}

// RunResult is the structured outcome of rendering and packaging a set of walls.
type RunResult struct {
	Status    RunStatus     `json:"status"`
	PrintType PrintType     `json:"printType"`
	Documents []Document    `json:"documents"`
	Failures  []WallFailure `json:"failures,omitempty"`
	Archive   []byte        `json:"-"`
}
