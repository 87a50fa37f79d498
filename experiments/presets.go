package experiments

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"baghchal/meta"
	"baghchal/searcher"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var ErrInvalidPresets = errors.New("invalid presets file")

type presetsFile struct {
	Presets []searcher.PresetSpec `yaml:"presets"`
}

// ParsePresets reads a YAML list of presets. Names must be unique and not
// empty.
//
//	presets:
//	  - name: blitz
//	    time_ms: 250
//	  - name: shallow
//	    depth_goat: 2
//	    depth_tiger: 1
func ParsePresets(data []byte) (map[string]searcher.Config, error) {
	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPresets, err)
	}

	presets := map[string]searcher.Config{}
	for i, spec := range file.Presets {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: preset %d has no name", ErrInvalidPresets, i+1)
		}
		if _, ok := presets[spec.Name]; ok {
			return nil, fmt.Errorf("%w: preset %q defined twice", ErrInvalidPresets, spec.Name)
		}
		presets[spec.Name] = spec.Recognize()
	}
	return presets, nil
}

// LoadPresets returns the built-in presets overlaid with the ones in path.
// An empty path looks for the presets file in the XDG config directories
// and falls back to the built-ins when there is none.
func LoadPresets(path string) (map[string]searcher.Config, error) {
	presets := maps.Clone(searcher.Presets)

	if path == "" {
		found, err := xdg.SearchConfigFile(meta.PRESETS_FILE)
		if err != nil {
			log.Debug().Msgf("no presets file found, using built-in presets")
			return presets, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	custom, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	maps.Copy(presets, custom)
	log.Debug().Str("path", path).Int("presets", len(custom)).Msg("presets-loaded")
	return presets, nil
}
