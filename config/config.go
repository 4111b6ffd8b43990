package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

var ErrInvalidConfig = errors.New("invalid config")

type SchedulerConfig struct {
	Port                  int
	InputFile             string
	RoundRobinTimeQuantum int
	OutputFormat          string
	OutputLocale          string
	MetricsEnabled        bool
}

// LoadSchedulerConfig reads path, or searches for config.yaml in the working
// directory when path is empty. CPUSCHED_* environment variables take precedence.
func LoadSchedulerConfig(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("cpusched")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &SchedulerConfig{
		Port:                  v.GetInt("port"),
		InputFile:             v.GetString("input"),
		RoundRobinTimeQuantum: v.GetInt("scheduler.round_robin.time_quantum"),
		OutputFormat:          v.GetString("output.format"),
		OutputLocale:          v.GetString("output.locale"),
		MetricsEnabled:        v.GetBool("metrics.enabled"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("input", "processos.txt")
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("output.format", "text")
	v.SetDefault("output.locale", "en")
	v.SetDefault("metrics.enabled", true)
}

func (c *SchedulerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("%w: round robin time quantum must be positive, got %d", ErrInvalidConfig, c.RoundRobinTimeQuantum)
	}
	switch strings.ToLower(c.OutputFormat) {
	case "text", "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.OutputFormat)
	}
	if _, err := language.Parse(c.OutputLocale); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, c.OutputLocale, err)
	}
	return nil
}
