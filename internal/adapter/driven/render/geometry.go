package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// hexToRGB converts a "#rrggbb" string to 8-bit channel values. Malformed
// input falls back to black rather than failing a whole figure.
func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// hexToColor converts a "#rrggbb" string to an opaque drawing color.
func hexToColor(hex string) drawing.Color {
	r, g, b := hexToRGB(hex)
	return drawing.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

func withAlpha(c drawing.Color, alpha uint8) drawing.Color {
	c.A = alpha
	return c
}

// axisTicks builds ticks from zero to max inclusive at the given step.
func axisTicks(max, step float64) []chart.Tick {
	if step <= 0 {
		step = 1
	}
	var ticks []chart.Tick
	for v := 0.0; v <= max+step/1e6; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

// dataToPixels mirrors the translation go-chart applies for an ascending
// range starting at zero, so overlays land exactly on the drawn series.
func dataToPixels(v, max float64, domain int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Ceil(v / max * float64(domain)))
}

// scaledBarGeometry reproduces the layout go-chart falls back to when the
// configured bar widths would overflow the canvas.
func scaledBarGeometry(count int, cb chart.Box) (width, spacing int) {
	width, spacing = barWidth, barSpacing
	total := count * (width + spacing)
	if total > cb.Width() {
		scale := float64(cb.Width()) / float64(total)
		width = int(math.Floor(float64(width) * scale))
		spacing = int(math.Floor(float64(spacing) * scale))
	}
	return width, spacing
}

// barCenter returns the pixel x of a fractional bar index, with index zero
// being the center of the first bar.
func barCenter(index float64, cb chart.Box, width, spacing int) int {
	return cb.Left + spacing/2 + width/2 + int(index*float64(width+spacing))
}
