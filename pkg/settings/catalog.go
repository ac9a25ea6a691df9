// Package settings defines the catalog of adjustable development parameters
// for Dehancer Online presets and resolves final parameter sets from profile
// defaults, an optional settings file, and CLI overrides.
package settings

// Group classifies a parameter as an adjustment or an effect.
type Group int

const (
	// Adjustments are base image corrections. They always carry a numeric
	// value and cannot be switched off.
	Adjustments Group = iota
	// Effects are film-emulation layers. Each effect can be a number or Off,
	// in which case the preset's built-in default applies.
	Effects
)

// String returns the group name as shown in CLI output.
func (g Group) String() string {
	if g == Effects {
		return "effects"
	}
	return "adjustments"
}

// Definition describes one adjustable parameter.
//
// Min, Max, and Step are display hints only. The service team keeps the web
// UI within these ranges, but the API accepts any finite value, so the client
// passes out-of-range numbers through instead of rejecting them.
type Definition struct {
	Name        string
	Group       Group
	Min         float64
	Max         float64
	Step        float64
	SupportsOff bool
}

// Canonical parameter names, matching both the settings file keys and the
// field names of the API state payload.
const (
	NameExposure         = "exposure"
	NameContrast         = "contrast"
	NameTemperature      = "temperature"
	NameTint             = "tint"
	NameColorBoost       = "color_boost"
	NameGrain            = "grain"
	NameBloom            = "bloom"
	NameHalation         = "halation"
	NameVignetteExposure = "vignette_exposure"
	NameVignetteSize     = "vignette_size"
	NameVignetteFeather  = "vignette_feather"
)

// Fallback values used when a vignette sub-parameter must resolve to a number
// but neither the user nor the preset profile supplies one.
const (
	fallbackVignetteExposure = 0
	fallbackVignetteSize     = 55
	fallbackVignetteFeather  = 15
)

// catalog is the fixed, ordered set of parameters: adjustments first, then
// effects, each group in its canonical sub-order.
var catalog = []Definition{
	{Name: NameExposure, Group: Adjustments, Min: -4, Max: 4, Step: 0.1},
	{Name: NameContrast, Group: Adjustments, Min: -100, Max: 100, Step: 1},
	{Name: NameTemperature, Group: Adjustments, Min: -100, Max: 100, Step: 1},
	{Name: NameTint, Group: Adjustments, Min: -100, Max: 100, Step: 1},
	{Name: NameColorBoost, Group: Adjustments, Min: -100, Max: 100, Step: 1},
	{Name: NameGrain, Group: Effects, Min: 0, Max: 100, Step: 1, SupportsOff: true},
	{Name: NameBloom, Group: Effects, Min: 0, Max: 100, Step: 1, SupportsOff: true},
	{Name: NameHalation, Group: Effects, Min: 0, Max: 100, Step: 1, SupportsOff: true},
	{Name: NameVignetteExposure, Group: Effects, Min: -100, Max: 100, Step: 1, SupportsOff: true},
	{Name: NameVignetteSize, Group: Effects, Min: 0, Max: 100, Step: 1, SupportsOff: true},
	{Name: NameVignetteFeather, Group: Effects, Min: 0, Max: 100, Step: 1, SupportsOff: true},
}

var catalogByName = func() map[string]Definition {
	m := make(map[string]Definition, len(catalog))
	for _, d := range catalog {
		m[d.Name] = d
	}
	return m
}()

// vignetteNames are the sub-parameters that travel together under one Off
// toggle.
var vignetteNames = []string{NameVignetteExposure, NameVignetteSize, NameVignetteFeather}

// Lookup returns the definition for name and whether it exists in the catalog.
func Lookup(name string) (Definition, bool) {
	d, ok := catalogByName[name]
	return d, ok
}

// Catalog returns all parameter definitions in their canonical order. The
// returned slice is a copy.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// IsVignette reports whether name is one of the vignette sub-parameters.
func IsVignette(name string) bool {
	for _, n := range vignetteNames {
		if n == name {
			return true
		}
	}
	return false
}
