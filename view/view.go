package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/fhsmendes/weather-widget/models"
	"github.com/fhsmendes/weather-widget/utils"
	"github.com/fhsmendes/weather-widget/widget"
)

const Prompt = "Enter a city to get weather info"

//go:embed templates/widget.html
var templates embed.FS

type iconSet struct {
	Search, Clear, Humidity, Wind string
}

type page struct {
	Input     string
	Error     string
	HasResult bool
	Result    models.WeatherResult
	Prompt    string
	Icons     iconSet
}

// Renderer writes a widget snapshot as an HTML page. Asset references are
// prefixed with AssetBase.
type Renderer struct {
	AssetBase string
	tmpl      *template.Template
}

func NewRenderer(assetBase string) (*Renderer, error) {
	r := &Renderer{AssetBase: assetBase}
	tmpl, err := template.New("widget.html").
		Funcs(template.FuncMap{"asset": r.asset}).
		ParseFS(templates, "templates/widget.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse widget template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

func (r *Renderer) asset(name string) string {
	if r.AssetBase == "" {
		return name
	}
	return strings.TrimRight(r.AssetBase, "/") + "/" + name
}

func (r *Renderer) HTML(w io.Writer, s widget.Snapshot) error {
	p := page{
		Input:  s.Input,
		Error:  s.ErrorMessage(),
		Prompt: Prompt,
		Icons: iconSet{
			Search:   utils.SearchIcon,
			Clear:    utils.DefaultIcon,
			Humidity: utils.HumidityIcon,
			Wind:     utils.WindIcon,
		},
	}
	p.Result, p.HasResult = s.Result()
	return r.tmpl.Execute(w, p)
}

// Text writes the terminal rendering of a snapshot.
func Text(w io.Writer, s widget.Snapshot) error {
	if msg := s.ErrorMessage(); msg != "" {
		_, err := fmt.Fprintln(w, msg)
		return err
	}
	result, ok := s.Result()
	if !ok {
		_, err := fmt.Fprintln(w, Prompt)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n%d°c  [%s]\nHumidity    %d %%\nWind Speed  %v Km/h\n",
		result.Location, result.Temperature, result.Icon, result.Humidity, result.WindSpeed)
	return err
}
