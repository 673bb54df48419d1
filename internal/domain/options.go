package domain

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed data.toml
var defaultData []byte

// optionFile is the on-disk layout of an option set
type optionFile struct {
	Options []Option `toml:"options"`
}

// ParseOptions decodes an option set from TOML data
func ParseOptions(data []byte) ([]Option, error) {
	var f optionFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	for i, opt := range f.Options {
		if opt.Label == "" {
			return nil, fmt.Errorf("option %d has no label", i)
		}
	}
	return f.Options, nil
}

// LoadOptions reads an option set from a TOML file
func LoadOptions(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}
	return ParseOptions(data)
}

// DefaultOptions returns the built-in fruit and vegetable option set
func DefaultOptions() []Option {
	opts, err := ParseOptions(defaultData)
	if err != nil {
		// embedded data is fixed at build time
		panic(err)
	}
	return opts
}
