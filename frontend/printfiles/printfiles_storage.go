package printfiles

import (
	"fmt"

	"monterhyra/frontend/bematrix"
)

// logoMaxShare is the largest fraction of the wall a fitted logo may cover
// in either direction.
const logoMaxShare = 0.8

const whiteRGB = "#FFFFFF"

// FreeWalls marks which sides of a storage room face the aisle and get a
// printed face.
type FreeWalls struct {
	Back  bool `json:"back"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Front bool `json:"front"`
}

// StorageWalls returns a blank white design for each free side of a storage
// room, in back, left, right, front order. Back and front span the width,
// left and right the depth. Sizes are snapped to the beMatrix grid.
func StorageWalls(width, depth, height float64, free FreeWalls, pt PrintType) []WallDesign {
	sides := []struct {
		on     bool
		id     string
		label  string
		length float64
	}{
		{free.Back, "back", "Bakvägg", width},
		{free.Left, "left", "Vänster vägg", depth},
		{free.Right, "right", "Höger vägg", depth},
		{free.Front, "front", "Framsida", width},
	}

	h := bematrix.FromMeters(height)
	designs := make([]WallDesign, 0, len(sides))
	for _, s := range sides {
		if !s.on {
			continue
		}
		w := bematrix.FromMeters(s.length)
		designs = append(designs, WallDesign{
			WallID:             fmt.Sprintf("storage-%s", s.id),
			Label:              s.label,
			Category:           WallStorage,
			WidthMeters:        w.Meters(),
			HeightMeters:       h.Meters(),
			WidthMM:            w.MM,
			HeightMM:           h.MM,
			BackgroundColor:    White.String(),
			BackgroundColorRGB: whiteRGB,
			PrintType:          pt,
			IsFree:             true,
		})
	}
	return designs
}

// FitLogo places an image of imgW x imgH pixels on the design, scaled to at
// most 80% of the wall in either direction with its aspect ratio kept, and
// centered on the trim area.
func FitLogo(d WallDesign, imgW, imgH int, imageData string) (WallDesign, error) {
	if imgW <= 0 || imgH <= 0 {
		return d, fmt.Errorf("logo has invalid pixel size %dx%d", imgW, imgH)
	}
	d = withModuleSize(d)
	if d.WidthMM <= 0 || d.HeightMM <= 0 {
		return d, fmt.Errorf("wall %s has no size", d.WallID)
	}
	wallW, wallH := float64(d.WidthMM), float64(d.HeightMM)
	scale := min(wallW*logoMaxShare/float64(imgW), wallH*logoMaxShare/float64(imgH))
	w, h := float64(imgW)*scale, float64(imgH)*scale
	d.Logo = &Logo{
		ImageData: imageData,
		X:         (wallW - w) / 2,
		Y:         (wallH - h) / 2,
		Width:     w,
		Height:    h,
	}
	return d, nil
}

// WithLogo fits the same uploaded logo onto every design.
func WithLogo(designs []WallDesign, imageData string) ([]WallDesign, error) {
	w, h, err := imagePixels(imageData)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}
	out := make([]WallDesign, len(designs))
	for i, d := range designs {
		fitted, err := FitLogo(d, w, h, imageData)
		if err != nil {
			return nil, err
		}
		out[i] = fitted
	}
	return out, nil
}
