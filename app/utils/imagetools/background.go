package imagetools

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
)

// Background removal modes.
const (
	ModeFloodFill = "flood-fill"
	ModeKey       = "key"
)

// Options controls how a generated image is keyed to transparency.
type Options struct {
	Mode      string
	KeyColor  string // 6-digit hex, e.g. FFFFFF
	Threshold int    // per-channel tolerance
}

// ParseHexColor parses a 6-digit hex color, with or without a leading '#'.
func ParseHexColor(s string) (color.NRGBA, error) {
	normalized := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(normalized) != 6 {
		return color.NRGBA{}, fmt.Errorf("color must be 6 hex digits, e.g. FFFFFF, got %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(normalized, "%02X%02X%02X", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// RemoveBackground rewrites the PNG at path with the key color turned
// transparent according to opts.Mode.
func RemoveBackground(path string, opts Options) error {
	key, err := ParseHexColor(opts.KeyColor)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	// Flatten any existing alpha onto the key color first so keying sees a
	// uniform matte.
	bounds := src.Bounds()
	flat := image.NewNRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(key), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	switch opts.Mode {
	case ModeFloodFill:
		floodFillKey(flat, key, opts.Threshold)
	case ModeKey:
		globalKey(flat, key, opts.Threshold)
	default:
		return fmt.Errorf("unknown background removal mode %q", opts.Mode)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, flat)
}

func nearKey(img *image.NRGBA, x, y int, key color.NRGBA, threshold int) bool {
	c := img.NRGBAAt(x, y)
	return abs(int(c.R)-int(key.R)) <= threshold &&
		abs(int(c.G)-int(key.G)) <= threshold &&
		abs(int(c.B)-int(key.B)) <= threshold
}

// floodFillKey clears only background connected to the image corners, so
// key-colored pixels inside the object survive.
func floodFillKey(img *image.NRGBA, key color.NRGBA, threshold int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return
	}

	visited := make([]bool, w*h)
	idx := func(x, y int) int { return y*w + x }

	var queue []image.Point
	for _, p := range []image.Point{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		if nearKey(img, bounds.Min.X+p.X, bounds.Min.Y+p.Y, key, threshold) {
			visited[idx(p.X, p.Y)] = true
			queue = append(queue, p)
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		x, y := bounds.Min.X+p.X, bounds.Min.Y+p.Y
		c := img.NRGBAAt(x, y)
		c.A = 0
		img.SetNRGBA(x, y, c)

		for _, n := range []image.Point{{p.X - 1, p.Y}, {p.X + 1, p.Y}, {p.X, p.Y - 1}, {p.X, p.Y + 1}} {
			if n.X < 0 || n.Y < 0 || n.X >= w || n.Y >= h {
				continue
			}
			if visited[idx(n.X, n.Y)] {
				continue
			}
			if nearKey(img, bounds.Min.X+n.X, bounds.Min.Y+n.Y, key, threshold) {
				visited[idx(n.X, n.Y)] = true
				queue = append(queue, n)
			}
		}
	}
}

// globalKey clears every pixel within threshold of the key color.
func globalKey(img *image.NRGBA, key color.NRGBA, threshold int) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if nearKey(img, x, y, key, threshold) {
				c := img.NRGBAAt(x, y)
				c.A = 0
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
