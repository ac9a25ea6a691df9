// Package preset models the film-emulation presets returned by the Dehancer
// Online API.
package preset

import (
	"sort"
	"strings"

	"github.com/halide-labs/dehancer-cli/pkg/settings"
)

// Preset mirrors one entry of the /presets response. ID is the service-side
// identifier used in render state payloads; everything else is profile
// metadata that seeds effect defaults.
type Preset struct {
	Caption string `json:"caption"`
	Creator string `json:"creator"`
	ID      string `json:"preset"`

	Exposure    float64 `json:"exposure"`
	Contrast    float64 `json:"contrast"`
	Temperature float64 `json:"temperature"`
	Tint        float64 `json:"tint"`
	ColorBoost  float64 `json:"color_boost"`

	BloomEnabled    bool    `json:"is_bloom_enabled"`
	Bloom           float64 `json:"bloom"`
	HalationEnabled bool    `json:"is_halation_enabled"`
	Halation        float64 `json:"halation"`
	GrainEnabled    bool    `json:"is_grain_enabled"`
	Grain           float64 `json:"grain"`

	VignetteEnabled  bool    `json:"is_vignette_enabled"`
	VignetteExposure float64 `json:"vignette_exposure"`
	VignetteSize     float64 `json:"vignette_size"`
	VignetteFeather  float64 `json:"vignette_feather"`
}

// Sort orders presets by caption, case-insensitively, in place.
//
// The lower-casing matters: the web UI sorts the same way, and at least one
// manufacturer name appears in both UPPER and Capitalized spellings (e.g.
// "AGFA Chrome RSX II 200" next to "Agfa Agfacolor XRS 200"), so a
// case-sensitive sort would disagree with the numbering users see there.
// The resulting 1-based position is the display index accepted by
// `develop --preset N`; it is recomputed on every fetch and is not a stable
// service-side identifier.
func Sort(presets []Preset) {
	sort.SliceStable(presets, func(i, j int) bool {
		return strings.ToLower(presets[i].Caption) < strings.ToLower(presets[j].Caption)
	})
}

// EffectsDefaults derives the profile defaults for the settings resolver.
// Effects the preset ships disabled map to Off; enabled ones carry the
// profile's numeric value. The vignette sub-parameters are present either all
// together or not at all.
func (p Preset) EffectsDefaults() settings.EffectsDefaults {
	d := settings.EffectsDefaults{}

	if p.GrainEnabled {
		d[settings.NameGrain] = settings.Number(p.Grain)
	}
	if p.BloomEnabled {
		d[settings.NameBloom] = settings.Number(p.Bloom)
	}
	if p.HalationEnabled {
		d[settings.NameHalation] = settings.Number(p.Halation)
	}
	if p.VignetteEnabled {
		d[settings.NameVignetteExposure] = settings.Number(p.VignetteExposure)
		d[settings.NameVignetteSize] = settings.Number(p.VignetteSize)
		d[settings.NameVignetteFeather] = settings.Number(p.VignetteFeather)
	}

	return d
}
