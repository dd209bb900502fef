package printfiles

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CMYK holds ink percentages, 0-100.
type CMYK struct {
	C, M, Y, K uint8
}

// White is the unprinted paper color.
var White = CMYK{}

func (c CMYK) String() string {
	return fmt.Sprintf("C:%d M:%d Y:%d K:%d", c.C, c.M, c.Y, c.K)
}

var cmykPattern = regexp.MustCompile(`C:(\d+)\s+M:(\d+)\s+Y:(\d+)\s+K:(\d+)`)

// ParseCMYK reads the "C:0 M:0 Y:0 K:0" text form. Values above 100 are clamped.
func ParseCMYK(s string) (CMYK, bool) {
	m := cmykPattern.FindStringSubmatch(s)
	if m == nil {
		return CMYK{}, false
	}
	var v [4]uint8
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return CMYK{}, false
		}
		v[i] = uint8(min(n, 100))
	}
	return CMYK{C: v[0], M: v[1], Y: v[2], K: v[3]}, true
}

// RGBHexToCMYK converts "#RRGGBB" or "#RGB" with k = 1 - max(r,g,b) and
// c,m,y = (1 - channel - k) / (1 - k). Pure black yields C=M=Y=0.
func RGBHexToCMYK(hex string) (CMYK, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return CMYK{}, err
	}
	k := 1 - max(r, g, b)
	if k >= 1 {
		return CMYK{K: 100}, nil
	}
	c := (1 - r - k) / (1 - k)
	m := (1 - g - k) / (1 - k)
	y := (1 - b - k) / (1 - k)
	return CMYK{C: percent(c), M: percent(m), Y: percent(y), K: percent(k)}, nil
}

func percent(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 100))
}

func parseHex(hex string) (r, g, b float64, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid rgb hex %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid rgb hex %q: %w", hex, err)
	}
	r = float64((v>>16)&0xff) / 255
	g = float64((v>>8)&0xff) / 255
	b = float64(v&0xff) / 255
	return r, g, b, nil
}

// backgroundCMYK resolves the fill for a design: the CMYK text is the
// source of truth, the RGB preview is only a fallback.
func backgroundCMYK(d WallDesign) (CMYK, bool) {
	if c, ok := ParseCMYK(d.BackgroundColor); ok {
		return c, true
	}
	if d.BackgroundColorRGB != "" {
		if c, err := RGBHexToCMYK(d.BackgroundColorRGB); err == nil {
			return c, true
		}
	}
	return CMYK{}, false
}
