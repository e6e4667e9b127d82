package viz

import (
	"strconv"

	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
)

type Action int

const (
	AddSpecies Action = iota + 1
	EmitPhoton
	ResetLab
	CycleTheme
	ToggleHelp
	Quit
)

// Binding is what one key does. Species and Photon are set for AddSpecies
// and EmitPhoton.
type Binding struct {
	Action  Action
	Species molecule.Species
	Photon  photon.Kind
}

// Keys is the key map shared by the terminal and the window host, keyed by
// the typed character.
var Keys = map[string]Binding{
	"i": {Action: EmitPhoton, Photon: photon.IR},
	"m": {Action: EmitPhoton, Photon: photon.Microwave},
	"p": {Action: EmitPhoton, Photon: photon.Broadband},
	"r": {Action: ResetLab},
	"t": {Action: CycleTheme},
	"?": {Action: ToggleHelp},
	"q": {Action: Quit},
}

func init() {
	for i, s := range molecule.All {
		Keys[strconv.Itoa(i+1)] = Binding{Action: AddSpecies, Species: s}
	}
}

// Lookup is case-insensitive for letters.
func Lookup(key string) (Binding, bool) {
	if b, ok := Keys[key]; ok {
		return b, true
	}
	if len(key) == 1 && key[0] >= 'A' && key[0] <= 'Z' {
		b, ok := Keys[string(key[0]+'a'-'A')]
		return b, ok
	}
	return Binding{}, false
}
