package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/fhsmendes/weather-widget/configs"
	"github.com/fhsmendes/weather-widget/telemetry"
	"github.com/fhsmendes/weather-widget/utils"
	"github.com/fhsmendes/weather-widget/widget"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command line flags to their configuration keys.
var flagKeys = map[string]string{
	"api-key":    configs.KeyAPIKey,
	"base-url":   configs.KeyBaseURL,
	"verbose":    configs.KeyVerbose,
	"port":       configs.KeyPort,
	"assets-dir": configs.KeyAssetsDir,
	"asset-base": configs.KeyAssetBase,
	"exporter":   configs.KeyExporter,
}

// app is the state shared by the subcommands once configuration is loaded.
type app struct {
	viper      *viper.Viper
	cfg        *configs.Cfg
	controller *widget.Controller
	shutdown   func(context.Context) error
}

func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "weather-widget",
		Short: "Current weather for a city, from OpenWeatherMap",
		Long: `weather-widget looks up the current weather for a city name and renders
temperature, humidity, wind speed and a condition icon. It runs as a web page
(serve), a one-shot lookup (lookup) or a line-by-line prompt (interactive).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./weather-widget.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "OpenWeatherMap API key (env OPENWEATHER_API_KEY)")
	rootCmd.PersistentFlags().String("base-url", "", "OpenWeatherMap base URL")
	rootCmd.PersistentFlags().String("exporter", "", "Trace exporter: none, otlp or zipkin")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log raw API responses")

	rootCmd.AddCommand(newServeCmd(a), newLookupCmd(a), newInteractiveCmd(a))
	return rootCmd, a
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	rootCmd, a := newRootCmd()
	return execute(ctx, rootCmd, a)
}

// execute shuts the tracer provider down whether or not the command failed.
func execute(ctx context.Context, rootCmd *cobra.Command, a *app) (err error) {
	defer func() {
		if closeErr := a.close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	configFile, _ := cmd.Flags().GetString("config")
	v, err := configs.NewViper(configFile)
	if err != nil {
		return err
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	cfg, err := configs.LoadConfig(v)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.InitProvider(cmd.Context(), telemetry.Options{
		ServiceName:    cfg.ServiceName,
		Exporter:       cfg.Exporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		ZipkinEndpoint: cfg.ZipkinEndpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing provider: %w", err)
	}

	client := utils.NewOpenWeatherClient(cfg.BaseURL, configs.APIKeyFunc(v))
	client.Verbose = cfg.Verbose

	a.viper = v
	a.cfg = cfg
	a.controller = widget.NewController(client)
	a.shutdown = shutdown
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	shutdown := a.shutdown
	a.shutdown = nil
	if err := shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracing provider: %w", err)
	}
	return nil
}
