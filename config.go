package souffle

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the pipeline configuration: which passes run and how
// iteration behaves.
type Config struct {
	Name          string          `yaml:"name"`
	Passes        map[string]bool `yaml:"passes"`
	Fixpoint      bool            `yaml:"fixpoint"`
	MaxIterations int             `yaml:"max-iterations"`
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
