package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
	"pgregory.net/rapid"
)

func TestHexToRGB(t *testing.T) {
	cases := []struct {
		hex     string
		r, g, b int
	}{
		{"#2ecc71", 0x2e, 0xcc, 0x71},
		{"#ffffff", 255, 255, 255},
		{"2ecc71", 0x2e, 0xcc, 0x71},
		{"#34495e", 0x34, 0x49, 0x5e},
		{"", 0, 0, 0},
		{"#fff", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
	}
	for _, tc := range cases {
		r, g, b := hexToRGB(tc.hex)
		assert.Equal(t, [3]int{tc.r, tc.g, tc.b}, [3]int{r, g, b}, tc.hex)
	}
}

func TestHexToRGB_Roundtrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.IntRange(0, 255).Draw(t, "r")
		g := rapid.IntRange(0, 255).Draw(t, "g")
		b := rapid.IntRange(0, 255).Draw(t, "b")
		gotR, gotG, gotB := hexToRGB(fmt.Sprintf("#%02x%02x%02x", r, g, b))
		require.Equal(t, r, gotR)
		require.Equal(t, g, gotG)
		require.Equal(t, b, gotB)
	})
}

func TestAxisTicks(t *testing.T) {
	ticks := axisTicks(7, 1)
	require.Len(t, ticks, 8)
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, "0", ticks[0].Label)
	assert.Equal(t, 7.0, ticks[7].Value)

	ticks = axisTicks(14, 2)
	require.Len(t, ticks, 8)
	assert.Equal(t, "14", ticks[7].Label)

	// A non-positive step falls back to unit spacing instead of looping forever.
	ticks = axisTicks(3, 0)
	require.Len(t, ticks, 4)
}

func TestDataToPixels(t *testing.T) {
	assert.Equal(t, 0, dataToPixels(0, 10, 500))
	assert.Equal(t, 500, dataToPixels(10, 10, 500))
	assert.Equal(t, 250, dataToPixels(5, 10, 500))
	assert.Equal(t, 0, dataToPixels(5, 0, 500))
}

func TestDataToPixels_MonotonicAndBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.Float64Range(1, 1e6).Draw(t, "max")
		domain := rapid.IntRange(1, 4000).Draw(t, "domain")
		a := rapid.Float64Range(0, max).Draw(t, "a")
		b := rapid.Float64Range(0, max).Draw(t, "b")

		pa := dataToPixels(a, max, domain)
		pb := dataToPixels(b, max, domain)
		if a <= b {
			require.LessOrEqual(t, pa, pb)
		} else {
			require.LessOrEqual(t, pb, pa)
		}
		require.GreaterOrEqual(t, pa, 0)
		require.LessOrEqual(t, pa, domain)
	})
}

func TestScaledBarGeometry_FitsCanvas(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 50).Draw(t, "count")
		boxWidth := rapid.IntRange(100, 2000).Draw(t, "boxWidth")
		cb := chart.Box{Left: 0, Right: boxWidth, Top: 0, Bottom: 100}

		width, spacing := scaledBarGeometry(count, cb)
		require.LessOrEqual(t, count*(width+spacing), max(cb.Width(), count*(barWidth+barSpacing)))
		if count*(barWidth+barSpacing) > cb.Width() {
			require.LessOrEqual(t, count*(width+spacing), cb.Width())
		} else {
			require.Equal(t, barWidth, width)
			require.Equal(t, barSpacing, spacing)
		}
	})
}

func TestBarCenter_Ordering(t *testing.T) {
	cb := chart.Box{Left: 100, Right: 900, Top: 0, Bottom: 500}
	width, spacing := scaledBarGeometry(5, cb)
	prev := barCenter(0, cb, width, spacing)
	for i := 1; i < 5; i++ {
		cur := barCenter(float64(i), cb, width, spacing)
		assert.Greater(t, cur, prev)
		prev = cur
	}
	// Fractional indices land between the neighbouring bar centers.
	mid := barCenter(1.5, cb, width, spacing)
	assert.Greater(t, mid, barCenter(1, cb, width, spacing))
	assert.Less(t, mid, barCenter(2, cb, width, spacing))
}
