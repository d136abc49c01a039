package utils

const DefaultIcon = "clear.png"

// Icons the widget shell references besides the condition icons.
const (
	SearchIcon   = "search.png"
	HumidityIcon = "humidity.png"
	WindIcon     = "wind.png"
)

// allIcons maps OpenWeatherMap condition codes to icon assets. Written once at
// init and only read afterwards.
var allIcons = map[string]string{
	"01d": "clear.png",
	"01n": "clear.png",
	"02d": "clouds.png",
	"02n": "clouds.png",
	"03d": "clouds.png",
	"03n": "clear.png",
	"04d": "drizzle.png",
	"04n": "drizzle.png",
	"09d": "rain.png",
	"09n": "rain.png",
	"10d": "rain.png",
	"10n": "rain.png",
	"13d": "snow.png",
	"13n": "snow.png",
}

// IconFor returns the icon for a condition code, or DefaultIcon when the code is unknown.
func IconFor(code string) string {
	if icon, ok := allIcons[code]; ok {
		return icon
	}
	return DefaultIcon
}
