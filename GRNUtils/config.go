package grnutils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//BuildConfig options of the network construction, readable from a YAML file
type BuildConfig struct {
	MinExpression   float64 `yaml:"min_expression"`
	IncludeAllGenes bool    `yaml:"include_all_genes"`
	Footprints      string  `yaml:"footprints"`
	Threads         int     `yaml:"threads"`
	Verbose         bool    `yaml:"verbose"`
}

/*DefaultBuildConfig defaults used when neither a flag nor the config file set an option */
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MinExpression: 0,
		Threads:       1,
	}
}

/*LoadBuildConfig read a YAML config file on top of the defaults */
func LoadBuildConfig(fname string) (BuildConfig, error) {
	config := DefaultBuildConfig()

	data, err := os.ReadFile(fname)
	if err != nil {
		return config, fmt.Errorf("cannot read config %s: %w", fname, err)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("cannot parse config %s: %w", fname, err)
	}

	if config.Threads < 1 {
		return config, fmt.Errorf("invalid config %s: threads must be >= 1, got %d", fname, config.Threads)
	}

	return config, nil
}
