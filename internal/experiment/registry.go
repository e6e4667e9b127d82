package experiment

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/san-kum/molvib/internal/config"
)

var ErrUnknownScenario = errors.New("experiment: unknown scenario")

// Resolve looks name up among the presets, then treats a .yaml or .yml name
// as a scenario file.
func Resolve(name string) (*config.Scenario, error) {
	if sc := config.GetScenario(name); sc != nil {
		return sc, nil
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return config.LoadScenario(name)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
}

func Names() []string {
	return config.ListScenarios()
}
