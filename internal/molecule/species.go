package molecule

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSpecies = errors.New("molecule: unknown species")

type Species string

const (
	CO  Species = "CO"
	CO2 Species = "CO2"
	N2  Species = "N2"
	O2  Species = "O2"
	NO2 Species = "NO2"
	H2O Species = "H2O"
	NH3 Species = "NH3"
)

// All lists the species in menu order.
var All = []Species{CO, CO2, N2, O2, NO2, H2O, NH3}

var aliases = map[string]Species{
	"co":              CO,
	"carbonmonoxide":  CO,
	"co2":             CO2,
	"carbondioxide":   CO2,
	"n2":              N2,
	"nitrogen":        N2,
	"o2":              O2,
	"oxygen":          O2,
	"no2":             NO2,
	"nitrogendioxide": NO2,
	"h2o":             H2O,
	"water":           H2O,
	"nh3":             NH3,
	"nh":              NH3,
	"ammonia":         NH3,
}

func Parse(s string) (Species, error) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
	if sp, ok := aliases[key]; ok {
		return sp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSpecies, s)
}

func (s Species) Valid() bool {
	_, ok := layouts[s]
	return ok
}
