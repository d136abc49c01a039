package utils

import (
	"math"

	"github.com/fhsmendes/weather-widget/models"
)

// FloorTemperature truncates toward negative infinity: 21.9 becomes 21 and -0.5 becomes -1.
func FloorTemperature(celsius float64) int {
	return int(math.Floor(celsius))
}

// ToWeatherResult maps a decoded response to the display-ready result. It fails with
// ErrMissingFields when any consumed field is absent.
func ToWeatherResult(w models.OpenWeather) (models.WeatherResult, error) {
	if len(w.Weather) == 0 || w.Weather[0].Icon == nil || w.Main == nil || w.Main.Humidity == nil || w.Main.Temp == nil ||
		w.Wind == nil || w.Wind.Speed == nil || w.Name == nil {
		return models.WeatherResult{}, ErrMissingFields
	}

	return models.WeatherResult{
		Humidity:    int(math.Round(*w.Main.Humidity)),
		WindSpeed:   *w.Wind.Speed,
		Temperature: FloorTemperature(*w.Main.Temp),
		Location:    *w.Name,
		Icon:        IconFor(*w.Weather[0].Icon),
	}, nil
}
