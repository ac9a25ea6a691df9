package settings

import (
	"fmt"
	"strings"
)

// Settings is a fully resolved parameter set covering every catalog entry.
// Adjustments are always numeric; effects may be Off. Values are keyed by the
// canonical catalog names and iterate in catalog order.
type Settings struct {
	values map[string]Value
}

// Default returns the baseline before any profile, file, or CLI input:
// adjustments at 0, every effect Off.
func Default() Settings {
	s := Settings{values: make(map[string]Value, len(catalog))}
	for _, d := range catalog {
		if d.Group == Effects {
			s.values[d.Name] = Off
		} else {
			s.values[d.Name] = Number(0)
		}
	}
	return s
}

// Get returns the value for a catalog parameter name.
func (s Settings) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// set stores a value. The resolver is the only writer, so name is always a
// catalog name by the time we get here.
func (s Settings) set(name string, v Value) {
	s.values[name] = v
}

// State returns the numeric parameters as a name→value map for the API state
// payload. Effects that are Off are omitted entirely, including the whole
// vignette group when it is off.
func (s Settings) State() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for name, v := range s.values {
		if v.IsOff() {
			continue
		}
		out[name] = v.Float()
	}
	return out
}

// AdjustmentsString renders the adjustments group for log output.
func (s Settings) AdjustmentsString() string {
	return s.groupString(Adjustments)
}

// EffectsString renders the effects group for log output.
func (s Settings) EffectsString() string {
	return s.groupString(Effects)
}

func (s Settings) groupString(g Group) string {
	parts := make([]string, 0, len(catalog))
	for _, d := range catalog {
		if d.Group != g {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: '%s'", displayName(d.Name), s.values[d.Name]))
	}
	return strings.Join(parts, ", ")
}

// displayName converts a catalog name into its human form, e.g.
// "vignette_exposure" becomes "Vignette exposure".
func displayName(name string) string {
	human := strings.ReplaceAll(name, "_", " ")
	return strings.ToUpper(human[:1]) + human[1:]
}
