package models

type WeatherResult struct {
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Temperature int     `json:"temperature"`
	Location    string  `json:"location"`
	Icon        string  `json:"icon"`
}

// OpenWeather is the subset of the OpenWeatherMap current weather body we consume.
// Pointers distinguish a missing field from a zero value.
type OpenWeather struct {
	Weather []struct {
		Icon *string `json:"icon"`
	} `json:"weather"`
	Main *struct {
		Humidity *float64 `json:"humidity"`
		Temp     *float64 `json:"temp"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Name *string `json:"name"`
}
