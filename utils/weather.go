package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/fhsmendes/weather-widget/models"
	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL     = "https://api.openweathermap.org"
	UrlOpenWeatherPath = "%s/data/2.5/weather?q=%s&units=metric&appid=%s"
)

type WeatherAPIClient interface {
	GetWeather(ctx context.Context, city string) (models.WeatherResult, error)
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherClient queries the OpenWeatherMap current weather endpoint.
type OpenWeatherClient struct {
	BaseURL string
	// APIKey is called on every lookup so a rotated key is picked up without a restart.
	APIKey  func() string
	HTTP    HTTPDoer
	Tracer  trace.Tracer
	Verbose bool
}

func NewOpenWeatherClient(baseURL string, apiKey func() string) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenWeatherClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{},
		Tracer:  otel.Tracer("weather-widget"),
	}
}

// BuildURL returns the request URL for city with the city name query-escaped.
func BuildURL(baseURL, city, apiKey string) string {
	return fmt.Sprintf(UrlOpenWeatherPath, baseURL, url.QueryEscape(city), url.QueryEscape(apiKey))
}

// GetWeather fetches the current weather for city. Every failure is returned as a
// *LookupError.
func (c *OpenWeatherClient) GetWeather(ctx context.Context, city string) (models.WeatherResult, error) {
	lookupID := ulid.Make().String()
	ctx, span := c.tracer().Start(ctx, "openweather.current", trace.WithAttributes(
		attribute.String("city", city),
		attribute.String("lookup.id", lookupID),
	))
	defer span.End()

	apiKey := ""
	if c.APIKey != nil {
		apiKey = c.APIKey()
	}
	if apiKey == "" {
		return fail(span, city, "API key is not set", ErrAPIKeyNotSet)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildURL(c.BaseURL, city, apiKey), nil)
	if err != nil {
		return fail(span, city, "failed to create request", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fail(span, city, "failed to get weather", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(span, city, "weather API returned error status",
			fmt.Errorf("weather API returned status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(span, city, "failed to read response", err)
	}
	if c.Verbose {
		log.Printf("lookup %s: %s", lookupID, body)
	}

	var payload models.OpenWeather
	if err := json.Unmarshal(body, &payload); err != nil {
		return fail(span, city, "failed to decode response", fmt.Errorf("failed to decode response: %w", err))
	}

	result, err := ToWeatherResult(payload)
	if err != nil {
		return fail(span, city, "response is missing expected fields", err)
	}
	span.SetAttributes(attribute.String("location", result.Location))
	return result, nil
}

func (c *OpenWeatherClient) tracer() trace.Tracer {
	if c.Tracer == nil {
		return otel.Tracer("weather-widget")
	}
	return c.Tracer
}

func (c *OpenWeatherClient) httpClient() HTTPDoer {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func fail(span trace.Span, city, status string, err error) (models.WeatherResult, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
	return models.WeatherResult{}, lookupFailed(city, err)
}
