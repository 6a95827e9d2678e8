package style

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseColor converts a descriptor color value into an RGBA color.
//
// Accepted forms are CSS color names ("red", "darkslategray"), hex strings
// ("#f00", "#ff0000") and numeric lists [r, g, b] or [r, g, b, a] with
// channels in 0..255. A missing alpha channel means fully opaque.
func ParseColor(v any) (color.RGBA, error) {
	switch c := v.(type) {
	case color.RGBA:
		return c, nil
	case string:
		return parseColorString(c)
	case []any:
		return parseColorList(c)
	case []int:
		list := make([]any, len(c))
		for i, n := range c {
			list[i] = n
		}
		return parseColorList(list)
	}
	return color.RGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, v)
}

// MustColor is like ParseColor but returns fallback when v cannot be parsed
// or is nil.
func MustColor(v any, fallback color.RGBA) color.RGBA {
	if v == nil {
		return fallback
	}
	c, err := ParseColor(v)
	if err != nil {
		return fallback
	}
	return c
}

func parseColorString(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hc, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b := hc.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}
	name := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseColorList(list []any) (color.RGBA, error) {
	if len(list) != 3 && len(list) != 4 {
		return color.RGBA{}, fmt.Errorf("%w: want 3 or 4 channels, got %d", ErrInvalidColor, len(list))
	}
	ch := [4]uint8{0, 0, 0, 255}
	for i, item := range list {
		var f float64
		switch n := item.(type) {
		case int:
			f = float64(n)
		case int64:
			f = float64(n)
		case float64:
			f = n
		default:
			return color.RGBA{}, fmt.Errorf("%w: channel %d is %T", ErrInvalidColor, i, item)
		}
		if f < 0 || f > 255 || math.IsNaN(f) {
			return color.RGBA{}, fmt.Errorf("%w: channel %d out of range", ErrInvalidColor, i)
		}
		ch[i] = uint8(f)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
