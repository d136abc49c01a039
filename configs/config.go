package configs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyAPIKey         = "openweather_api_key"
	KeyBaseURL        = "openweather_base_url"
	KeyPort           = "port"
	KeyAssetsDir      = "assets_dir"
	KeyAssetBase      = "asset_base"
	KeyServiceName    = "otel_service_name"
	KeyExporter       = "otel_exporter"
	KeyOTLPEndpoint   = "otel_exporter_otlp_endpoint"
	KeyZipkinEndpoint = "zipkin_endpoint"
	KeyVerbose        = "verbose"
)

type Cfg struct {
	APIKey         string `mapstructure:"openweather_api_key"`
	BaseURL        string `mapstructure:"openweather_base_url"`
	Port           string `mapstructure:"port"`
	AssetsDir      string `mapstructure:"assets_dir"`
	AssetBase      string `mapstructure:"asset_base"`
	ServiceName    string `mapstructure:"otel_service_name"`
	Exporter       string `mapstructure:"otel_exporter"`
	OTLPEndpoint   string `mapstructure:"otel_exporter_otlp_endpoint"`
	ZipkinEndpoint string `mapstructure:"zipkin_endpoint"`
	Verbose        bool   `mapstructure:"verbose"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyBaseURL, "https://api.openweathermap.org")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyAssetsDir, "")
	v.SetDefault(KeyAssetBase, "/assets/")
	v.SetDefault(KeyServiceName, "weather-widget")
	v.SetDefault(KeyExporter, "none")
	v.SetDefault(KeyOTLPEndpoint, "")
	v.SetDefault(KeyZipkinEndpoint, "http://localhost:9411/api/v2/spans")
	v.SetDefault(KeyVerbose, false)
}

// NewViper returns a viper instance with defaults, environment binding and, when
// present, a config file. configFile may be empty, in which case
// weather-widget.yaml is looked up in the working directory and $HOME.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("weather-widget")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

func LoadConfig(v *viper.Viper) (*Cfg, error) {
	var cfg Cfg
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// APIKeyFunc reads the API key from v on every call.
func APIKeyFunc(v *viper.Viper) func() string {
	return func() string {
		return v.GetString(KeyAPIKey)
	}
}
