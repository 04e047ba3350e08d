package utils

var compassPoints = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

// DegToCompass maps a wind direction in degrees to the nearest of 16 compass points.
// Negative sectors wrap around like a non-negative modulo.
func DegToCompass(deg float64) string {
	sector := int(deg/22.5 + .5)
	return compassPoints[((sector%16)+16)%16]
}
