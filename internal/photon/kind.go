package photon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/molvib/internal/scene"
)

var ErrUnknownKind = errors.New("photon: unknown kind")

// Kind tags a marker with the band it belongs to. Hit zones may accept only
// some kinds.
type Kind string

const (
	IR        Kind = "ir"
	Microwave Kind = "microwave"
	Broadband Kind = "broadband"
)

var Kinds = []Kind{IR, Microwave, Broadband}

// ParseKind accepts the kind names case-insensitively plus a few aliases.
// An empty string means an untagged broadband marker.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ir", "infrared":
		return IR, nil
	case "microwave", "mw":
		return Microwave, nil
	case "", "broadband", "white", "visible":
		return Broadband, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Color is the fill used for markers of this kind.
func (k Kind) Color() scene.Color {
	switch k {
	case IR:
		return scene.Green
	case Microwave:
		return scene.Purple
	default:
		return scene.Yellow
	}
}
