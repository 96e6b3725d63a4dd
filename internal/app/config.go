package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"go.uber.org/zap/zapcore"

	"github.com/xenking/kart-orders-cli/internal/storage/console"
)

var defaultFiles = []string{"orders.yaml", "/etc/orders/config.yaml"}

// Config holds the complete application configuration, loadable from
// environment variables (ORDERS_ prefix) or YAML config files.
type Config struct {
	Discount DiscountConfig `yaml:"discount"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// DiscountConfig controls the percentage discount offered in the menu.
type DiscountConfig struct {
	Rate float64 `default:"0.1" usage:"Fraction taken off by the percentage discount, in [0, 1)" yaml:"rate"`
}

// OutputConfig controls how saved orders are printed.
type OutputConfig struct {
	Format string `default:"text" usage:"Order output format: text or json" yaml:"format"`
}

// LogConfig controls the diagnostic logger. Logs are written to stderr.
type LogConfig struct {
	Level    string `default:"warn" usage:"Log level (debug, info, warn, error)" yaml:"level"`
	Encoding string `default:"console" usage:"Log encoding: console or json" yaml:"encoding"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then validates it.
func LoadConfig() (*Config, error) {
	return loadConfig(defaultFiles)
}

func loadConfig(files []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "ORDERS",
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c *Config) Validate() error {
	if c.Discount.Rate < 0 || c.Discount.Rate >= 1 {
		return errors.Errorf("discount rate %v must be in [0, 1)", c.Discount.Rate)
	}
	if _, err := console.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return errors.Errorf("unsupported log encoding: %q", c.Log.Encoding)
	}
	return nil
}
