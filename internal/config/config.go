package config

import (
	"strings"

	"github.com/ChizhovVadim/AttrSelect/internal/ml"
	"github.com/ChizhovVadim/AttrSelect/internal/quality"
	"github.com/ChizhovVadim/AttrSelect/internal/report"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "ATTRSEL"

type Config struct {
	Data        string   `mapstructure:"data"`
	Class       string   `mapstructure:"class"`
	Attributes  []string `mapstructure:"attributes"`
	Classifier  string   `mapstructure:"classifier"`
	Folds       int      `mapstructure:"folds"`
	Seed        int64    `mapstructure:"seed"`
	Measure     string   `mapstructure:"measure"`
	Concurrency int      `mapstructure:"concurrency"`
	Threads     int      `mapstructure:"threads"`
	CacheSize   int64    `mapstructure:"cache-size"`
	Store       string   `mapstructure:"store"`
	MetricsAddr string   `mapstructure:"metrics-addr"`
	LogLevel    string   `mapstructure:"log-level"`
	LogJSON     bool     `mapstructure:"log-json"`
	Format      string   `mapstructure:"format"`
	Progress    float64  `mapstructure:"progress"`
	Positive    int      `mapstructure:"positive"`
}

func Default() Config {
	return Config{
		Data:        "data.arff",
		Classifier:  "logistic",
		Folds:       10,
		Seed:        1,
		Measure:     string(quality.MeasureCorrect),
		Concurrency: 1,
		Threads:     1,
		CacheSize:   1024,
		LogLevel:    "info",
		Format:      string(report.FormatText),
		Progress:    0.05,
	}
}

// BindFlags registers every setting on fs with its default value.
func BindFlags(fs *pflag.FlagSet) {
	var d = Default()
	fs.String("config", "", "Configuration file (YAML). Flags and ATTRSEL_* environment variables override it.")
	fs.String("data", d.Data, "Dataset path (.arff or .csv)")
	fs.String("class", d.Class, "Class attribute name or index (default last attribute)")
	fs.StringSlice("attributes", nil, "Restrict candidate attributes to these names")
	fs.String("classifier", d.Classifier, "Classifier: "+strings.Join(ml.Names(), ", "))
	fs.Int("folds", d.Folds, "Cross-validation folds")
	fs.Int64("seed", d.Seed, "Random seed for fold assignment and training")
	fs.String("measure", d.Measure, "Subset quality: correct, accuracy or auc")
	fs.Int("concurrency", d.Concurrency, "Subsets evaluated in parallel")
	fs.Int("threads", d.Threads, "Folds trained in parallel per evaluation")
	fs.Int64("cache-size", d.CacheSize, "In-memory quality cache entries")
	fs.String("store", d.Store, "Badger directory for persisted qualities (empty disables)")
	fs.String("metrics-addr", d.MetricsAddr, "Serve Prometheus metrics on this address (empty disables)")
	fs.String("log-level", d.LogLevel, "Log level")
	fs.Bool("log-json", d.LogJSON, "Log as JSON")
	fs.String("format", d.Format, "Report format: text or yaml")
	fs.Float64("progress", d.Progress, "Log exhaustive search progress every this fraction")
	fs.Int("positive", d.Positive, "Positive class value index for benchmark metrics")
}

// NewViper binds fs to a fresh viper instance with environment overrides.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	var v = viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the optional config file named by the "config" key and decodes
// the merged settings.
func Load(v *viper.Viper) (Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Data == "" {
		return errors.New("data path is empty")
	}
	if _, err := ml.Lookup(c.Classifier); err != nil {
		return err
	}
	if c.Folds < 2 {
		return errors.Errorf("folds must be at least 2, got %d", c.Folds)
	}
	if _, err := quality.ParseMeasure(c.Measure); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return errors.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Threads < 1 {
		return errors.Errorf("threads must be positive, got %d", c.Threads)
	}
	if c.CacheSize < 0 {
		return errors.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Progress <= 0 || c.Progress > 1 {
		return errors.Errorf("progress step must be in (0, 1], got %g", c.Progress)
	}
	if c.Positive < 0 {
		return errors.Errorf("positive class must not be negative, got %d", c.Positive)
	}
	return nil
}
