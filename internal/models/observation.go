package models

import (
	"strconv"
)

// Placeholder is rendered for any observation field the station did not report.
const Placeholder = "NA"

// CurrentConditionsResponse is the body of the PWS current conditions endpoint.
type CurrentConditionsResponse struct {
	Observations []Observation `json:"observations"`
}

// Observation is one snapshot of current conditions from a personal weather station.
// Every field is optional, the station omits or nulls whatever its sensors do not provide.
type Observation struct {
	StationID      *string      `json:"stationID"`
	Neighborhood   *string      `json:"neighborhood"`
	Humidity       *float64     `json:"humidity"`
	WindDirection  *float64     `json:"winddir"`
	UV             *float64     `json:"uv"`
	SolarRadiation *float64     `json:"solarRadiation"`
	MetricSI       *MetricSIObs `json:"metric_si"`
}

// MetricSIObs holds the values reported with units=s (wind speed in m/s).
type MetricSIObs struct {
	Temp        *float64 `json:"temp"`
	WindChill   *float64 `json:"windChill"`
	Pressure    *float64 `json:"pressure"`
	WindSpeed   *float64 `json:"windSpeed"`
	PrecipRate  *float64 `json:"precipRate"`
	PrecipTotal *float64 `json:"precipTotal"`
	DewPoint    *float64 `json:"dewpt"`
}

func (o *Observation) metric() MetricSIObs {
	if o == nil || o.MetricSI == nil {
		return MetricSIObs{}
	}
	return *o.MetricSI
}

func (o *Observation) GetStationID() string {
	if o == nil {
		return Placeholder
	}
	return OrPlaceholder(o.StationID)
}

func (o *Observation) GetNeighborhood() string {
	if o == nil {
		return Placeholder
	}
	return OrPlaceholder(o.Neighborhood)
}

func (o *Observation) GetHumidity() string {
	if o == nil {
		return Placeholder
	}
	return FormatNumber(o.Humidity)
}

func (o *Observation) GetTemperature() string {
	return FormatNumber(o.metric().Temp)
}

func (o *Observation) GetWindChill() string {
	return FormatNumber(o.metric().WindChill)
}

func (o *Observation) GetPressure() string {
	return FormatNumber(o.metric().Pressure)
}

func (o *Observation) GetPrecipRate() string {
	return FormatNumber(o.metric().PrecipRate)
}

func (o *Observation) GetPrecipTotal() string {
	return FormatNumber(o.metric().PrecipTotal)
}

func (o *Observation) GetDewPoint() string {
	return FormatNumber(o.metric().DewPoint)
}

func (o *Observation) GetSolarRadiation() string {
	if o == nil {
		return Placeholder
	}
	return FormatNumber(o.SolarRadiation)
}

// GetUVIndex truncates the index to an integer.
func (o *Observation) GetUVIndex() string {
	if o == nil || o.UV == nil {
		return Placeholder
	}
	return strconv.Itoa(int(*o.UV))
}

// WindSpeed returns the wind speed in m/s and whether the station reported it.
func (o *Observation) WindSpeed() (float64, bool) {
	speed := o.metric().WindSpeed
	if speed == nil {
		return 0, false
	}
	return *speed, true
}

// WindDirectionDegrees returns the wind direction and whether the station reported it.
func (o *Observation) WindDirectionDegrees() (float64, bool) {
	if o == nil || o.WindDirection == nil {
		return 0, false
	}
	return *o.WindDirection, true
}

// OrPlaceholder dereferences s, falling back to Placeholder for nil or empty values.
func OrPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

// FormatNumber renders v with the shortest exact representation (12, 12.5), or Placeholder.
func FormatNumber(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
