package metrics

import (
	"math"

	"github.com/pthm-cable/bodylab/config"
)

// lerp interpolates linearly from a (t=0) to b (t=1).
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// axisOffset picks the Min or Max offset by the sign of n and scales it by |n|.
func axisOffset(n float64, r config.OffsetRange) config.Offset {
	if n < 0 {
		t := -n
		return config.Offset{Height: r.Min.Height * t, Weight: r.Min.Weight * t}
	}
	return config.Offset{Height: r.Max.Height * n, Weight: r.Max.Weight * n}
}

// rampAt evaluates a two-segment ramp at normalized slider value n.
func rampAt(r config.Ramp, n float64) float64 {
	if n <= 0 {
		return lerp(r.Min, r.Base, n+1)
	}
	return lerp(r.Base, r.Max, n)
}

// quadInterp is bilinear interpolation inside one grid cell.
// bl/br sit on the low edge of v, tl/tr on the high edge; l/r are low/high u.
func quadInterp(tu, tv, bl, tl, br, tr float64) float64 {
	top := lerp(tl, tr, tu)
	bot := lerp(bl, br, tu)
	return lerp(bot, top, tv)
}

// gridWeight resolves the weight x muscle grid at normalized (weight, muscle).
//
// The grid has corners at slider values {0, 50, 100} on both axes. The active
// quadrant is chosen per axis by which half the slider falls into; above the
// weight midpoint the local weight parameter is eased with t^exp so most of
// the gain lands near the end of the slider.
func gridWeight(g [][]float64, exp, weight, muscle float64) float64 {
	u := (weight + 1) / 2
	v := (muscle + 1) / 2

	row, tu := 0, u*2
	if u > 0.5 {
		row = 1
		tu = math.Pow((u-0.5)*2, exp)
	}
	col, tv := 0, v*2
	if v > 0.5 {
		col = 1
		tv = (v - 0.5) * 2
	}

	return quadInterp(tu, tv,
		g[row][col], g[row][col+1],
		g[row+1][col], g[row+1][col+1],
	)
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
