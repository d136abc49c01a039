package cmd

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhsmendes/weather-widget/utils"
	"github.com/fhsmendes/weather-widget/view"
	"github.com/fhsmendes/weather-widget/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func fakeOpenWeather(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Query().Get("q") {
		case "London":
			w.Write([]byte(`{"weather":[{"icon":"01d"}],"main":{"temp":15.7,"humidity":60},"wind":{"speed":4.1},"name":"London"}`))
		case "Paris":
			w.Write([]byte(`{"weather":[{"icon":"09d"}],"main":{"temp":21.9,"humidity":70},"wind":{"speed":3},"name":"Paris"}`))
		case "New York":
			w.Write([]byte(`{"weather":[{"icon":"02n"}],"main":{"temp":3.2,"humidity":40},"wind":{"speed":7.2},"name":"New York"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	root, a := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := execute(context.Background(), root, a)
	return out.String(), err
}

func TestLookup_Success(t *testing.T) {
	server := fakeOpenWeather(t)

	out, err := run(t, "", "lookup", "--api-key", "test-key", "--base-url", server.URL, "London")

	require.NoError(t, err)
	assert.Equal(t, "London\n15°c  [clear.png]\nHumidity    60 %\nWind Speed  4.1 Km/h\n", out)
}

func TestLookup_JoinsArguments(t *testing.T) {
	server := fakeOpenWeather(t)

	out, err := run(t, "", "lookup", "--api-key", "test-key", "--base-url", server.URL, "New", "York")

	require.NoError(t, err)
	assert.Contains(t, out, "New York\n3°c  [clouds.png]")
}

func TestLookup_NotFoundIsNotACommandError(t *testing.T) {
	server := fakeOpenWeather(t)

	out, err := run(t, "", "lookup", "--api-key", "test-key", "--base-url", server.URL, "Nowhereistan")

	require.NoError(t, err)
	assert.Equal(t, "City not found\n", out)
}

func TestLookup_JSON(t *testing.T) {
	server := fakeOpenWeather(t)

	out, err := run(t, "", "lookup", "--json", "--api-key", "test-key", "--base-url", server.URL, "Paris")

	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"Paris","status":"success","result":{"humidity":70,"windSpeed":3,"temperature":21,"location":"Paris","icon":"rain.png"}}`, out)
}

func TestLookup_APIKeyFromEnvironment(t *testing.T) {
	server := fakeOpenWeather(t)
	t.Setenv("OPENWEATHER_API_KEY", "test-key")
	t.Setenv("OPENWEATHER_BASE_URL", server.URL)

	out, err := run(t, "", "lookup", "London")

	require.NoError(t, err)
	assert.Contains(t, out, "15°c")
}

func TestLookup_RequiresCity(t *testing.T) {
	_, err := run(t, "", "lookup")
	assert.Error(t, err)
}

func TestInteractive(t *testing.T) {
	server := fakeOpenWeather(t)
	stdin := strings.Join([]string{"Paris", "", "Nowhereistan", ":clear", "London", ":quit", "Paris"}, "\n")

	out, err := run(t, stdin, "interactive", "--api-key", "test-key", "--base-url", server.URL)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], ":clear")

	paris := "Paris\n21°c  [rain.png]\nHumidity    70 %\nWind Speed  3 Km/h\n"
	london := "London\n15°c  [clear.png]\nHumidity    60 %\nWind Speed  4.1 Km/h\n"
	want := view.Prompt + "\n" + // initial
		paris + // Paris
		paris + // blank line keeps the result
		"City not found\n" +
		view.Prompt + "\n" + // :clear
		london
	assert.Equal(t, want, strings.SplitN(out, "\n", 2)[1])
}

func TestInteractiveMode_EOF(t *testing.T) {
	client := utils.NewOpenWeatherClient("http://127.0.0.1:0", func() string { return "" })
	c := widget.NewController(client)

	var out bytes.Buffer
	err := InteractiveMode(context.Background(), c, strings.NewReader("Rome\n"), &out)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "City not found\n"))
}

func TestUnknownExporter(t *testing.T) {
	_, err := run(t, "", "lookup", "--exporter", "carrier-pigeon", "London")
	assert.Error(t, err)
}

func TestExecute_ShutsDownTracerWhenCommandFails(t *testing.T) {
	t.Chdir(t.TempDir())
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	_, port, err := net.SplitHostPort(busy.Addr().String())
	require.NoError(t, err)

	root, a := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "--port", port})

	err = execute(context.Background(), root, a)

	require.Error(t, err)
	require.NotNil(t, a.controller, "setup should have run before serve failed")
	assert.Nil(t, a.shutdown, "tracer provider should be shut down")

	_, span := otel.Tracer("test").Start(context.Background(), "after-exit")
	defer span.End()
	assert.False(t, span.IsRecording(), "a shut down provider records no spans")
}
