package sim

import "math"

type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) Add(o Vec2) Vec2    { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func dist2(a, b Vec2) float32 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

// circlesOverlap reports whether two circles intersect or touch.
func circlesOverlap(aPos Vec2, aR float32, bPos Vec2, bR float32) bool {
	rr := aR + bR
	return dist2(aPos, bPos) <= rr*rr
}

func angleOf(v Vec2) float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

func unitFromAngle(ang float32) Vec2 {
	return Vec2{
		X: float32(math.Cos(float64(ang))),
		Y: float32(math.Sin(float64(ang))),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
