package cloud

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// InvLerp returns where v sits between a and b, or 0 when a == b.
func InvLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// Remap rescales v from [fromMin, fromMax] to [toMin, toMax].
func Remap(fromMin, fromMax, toMin, toMax, v float64) float64 {
	return Lerp(toMin, toMax, InvLerp(fromMin, fromMax, v))
}
