package utils

import (
	"fmt"
	"strconv"
	"strings"

	"weather-assistant/internal/models"
)

// Wind speeds at or above this value (m/s) are reported in km/h.
const windSpeedKmhThreshold = 5.0

// FormatWeatherReport renders an observation as the reply text for the weather command.
// A nil or partial observation renders models.Placeholder in the missing slots.
func FormatWeatherReport(obs *models.Observation) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("This is the weather report for %s in %s:\n\n", obs.GetStationID(), obs.GetNeighborhood()))
	sb.WriteString(fmt.Sprintf("Temperature: %s°C and it feels like %s°C\n", obs.GetTemperature(), obs.GetWindChill()))
	sb.WriteString(fmt.Sprintf("Humidity: %s%%\n", obs.GetHumidity()))
	sb.WriteString(fmt.Sprintf("Pressure: %s hPa\n", obs.GetPressure()))
	sb.WriteString(formatWind(obs))
	sb.WriteString(fmt.Sprintf("Rain: %s mm/h\n", obs.GetPrecipRate()))
	sb.WriteString(fmt.Sprintf("Rain today: %s mm\n", obs.GetPrecipTotal()))
	sb.WriteString(fmt.Sprintf("Dew point: %s°C\n", obs.GetDewPoint()))
	sb.WriteString(fmt.Sprintf("UV index: %s\n", obs.GetUVIndex()))
	sb.WriteString(fmt.Sprintf("Solar radiation: %s W/m²\n", obs.GetSolarRadiation()))

	return sb.String()
}

func formatWind(obs *models.Observation) string {
	speed, ok := obs.WindSpeed()
	if !ok {
		return fmt.Sprintf("Wind: %s\n", models.Placeholder)
	}
	if speed == 0 {
		return "Wind: calm\n"
	}

	direction := models.Placeholder
	if deg, ok := obs.WindDirectionDegrees(); ok {
		direction = DegToCompass(deg)
	}

	if speed < windSpeedKmhThreshold {
		return fmt.Sprintf("Wind: %s m/s\nWind direction: %s\n", strconv.FormatFloat(speed, 'f', -1, 64), direction)
	}

	kmh := MetersPerSecondToKilometersPerHour(speed)
	return fmt.Sprintf("Wind direction: %s\nWind: %s km/h\n", direction, strconv.FormatFloat(kmh, 'f', -1, 64))
}
