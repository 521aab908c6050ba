package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Analysis   AnalysisConfig   `yaml:"analysis" mapstructure:"analysis"`
	Choropleth ChoroplethConfig `yaml:"choropleth" mapstructure:"choropleth"`
	Datasets   DatasetsConfig   `yaml:"datasets" mapstructure:"datasets"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// AnalysisConfig configures the regression/correlation pipeline. The feature
// list is ordered: reports, scatter plots, and the correlation matrix all
// follow it.
type AnalysisConfig struct {
	Cities      []string `yaml:"cities" mapstructure:"cities"`
	CrimeMetric string   `yaml:"crime_metric" mapstructure:"crime_metric"`
	Features    []string `yaml:"features" mapstructure:"features"`
	LogEpsilon  float64  `yaml:"log_epsilon" mapstructure:"log_epsilon"`
}

// ChoroplethConfig configures the spatial aggregation pipeline.
type ChoroplethConfig struct {
	TargetYear     int               `yaml:"target_year" mapstructure:"target_year"`
	ExcludedRegion string            `yaml:"excluded_region" mapstructure:"excluded_region"`
	Renames        map[string]string `yaml:"renames" mapstructure:"renames"`
	Quantiles      []float64         `yaml:"quantiles" mapstructure:"quantiles"`
	CenterLat      float64           `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLng      float64           `yaml:"center_lng" mapstructure:"center_lng"`
	Zoom           int               `yaml:"zoom" mapstructure:"zoom"`
}

// DatasetsConfig locates the input files and the public sources they are
// fetched from.
type DatasetsConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	CensusPattern string `yaml:"census_pattern" mapstructure:"census_pattern"`
	Incidents     string `yaml:"incidents" mapstructure:"incidents"`
	Boundaries    string `yaml:"boundaries" mapstructure:"boundaries"`
	BoundaryName  string `yaml:"boundary_name" mapstructure:"boundary_name"`
	Encoding      string `yaml:"encoding" mapstructure:"encoding"`
	IncidentsURL  string `yaml:"incidents_url" mapstructure:"incidents_url"`
	BoundariesURL string `yaml:"boundaries_url" mapstructure:"boundaries_url"`
}

// OutputConfig configures where artifacts are written.
type OutputConfig struct {
	PlotsDir string `yaml:"plots_dir" mapstructure:"plots_dir"`
	MapFile  string `yaml:"map_file" mapstructure:"map_file"`
}

// StoreConfig configures the run-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CRIMEPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("analysis.cities", []string{"van"})
	v.SetDefault("analysis.crime_metric", "crime_rate")
	v.SetDefault("analysis.features", []string{
		"pop_density",
		"dropouts_to_grads",
		"one_parent_to_two",
		"crowded_to_not",
		"children_to_adults",
		"non_minority_to_minority",
		"male_to_female",
		"divorce_rate",
		"home_renters_to_owners",
		"low_income_status_pct",
	})
	v.SetDefault("analysis.log_epsilon", 1e-7)
	v.SetDefault("choropleth.target_year", 2021)
	v.SetDefault("choropleth.excluded_region", "Stanley Park")
	v.SetDefault("choropleth.renames", map[string]string{
		"Central Business District": "Downtown",
		"Musqueam":                  "Dunbar Southlands",
	})
	v.SetDefault("choropleth.quantiles", []float64{0, 0.20, 0.40, 0.60, 0.95, 1.0})
	v.SetDefault("choropleth.center_lat", 49.2827)
	v.SetDefault("choropleth.center_lng", -123.1207)
	v.SetDefault("choropleth.zoom", 12)
	v.SetDefault("datasets.dir", "datasets")
	v.SetDefault("datasets.census_pattern", "crime_census_%s.geojson")
	v.SetDefault("datasets.incidents", "crimedata_van.zip")
	v.SetDefault("datasets.boundaries", "vancouver.geojson")
	v.SetDefault("datasets.boundary_name", "name")
	v.SetDefault("datasets.encoding", "utf-8")
	v.SetDefault("datasets.incidents_url", "https://geodash.vpd.ca/opendata/crimedata_download/crimedata_csv_all_years.zip")
	v.SetDefault("datasets.boundaries_url", "https://opendata.vancouver.ca/api/explore/v2.1/catalog/datasets/local-area-boundary/exports/geojson")
	v.SetDefault("output.plots_dir", "initial_plots")
	v.SetDefault("output.map_file", "vancouver_crime_map.html")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "crimeplot.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
