package utils

import (
	"math"

	"github.com/martinlindhe/unit"
)

// MetersPerSecondToKilometersPerHour converts a wind speed and rounds it to one decimal.
func MetersPerSecondToKilometersPerHour(ms float64) float64 {
	kmh := (unit.Speed(ms) * unit.MetersPerSecond).KilometersPerHour()
	return math.Round(kmh*10) / 10
}
