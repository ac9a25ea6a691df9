package settings

// EffectsDefaults maps effect parameter names to the defaults carried by the
// selected preset's profile. A missing entry means the preset ships with that
// effect disabled. Adjustments never appear here.
type EffectsDefaults map[string]Value

// Overrides maps catalog parameter names to values supplied as individual CLI
// flags.
type Overrides map[string]Value

// Resolve merges the three parameter sources into a complete Settings value.
// Precedence per parameter is CLI flag, then settings file, then the preset
// profile default (effects) or zero (adjustments).
//
// The vignette sub-parameters resolve as one group: if any of them ends up
// with a concrete number, the unspecified ones fall back to the profile
// defaults rather than to zero, and if the group is off none of them are sent
// to the service.
func Resolve(profile EffectsDefaults, file *File, cli Overrides) (Settings, error) {
	if err := validateOverrides(cli); err != nil {
		return Settings{}, err
	}

	resolved := Default()

	for _, d := range catalog {
		if IsVignette(d.Name) {
			continue
		}

		switch {
		case hasOverride(cli, d.Name):
			resolved.set(d.Name, cli[d.Name])
		case fileHas(file, d.Name):
			v, _ := file.Get(d.Name)
			resolved.set(d.Name, v)
		case d.Group == Effects:
			if v, ok := profile[d.Name]; ok {
				resolved.set(d.Name, v)
			} else {
				resolved.set(d.Name, Off)
			}
		default:
			resolved.set(d.Name, Number(0))
		}
	}

	resolveVignette(resolved, profile, file, cli)

	return resolved, nil
}

// resolveVignette applies the group rule for the three vignette
// sub-parameters.
func resolveVignette(resolved Settings, profile EffectsDefaults, file *File, cli Overrides) {
	fallbacks := map[string]Value{
		NameVignetteExposure: Number(fallbackVignetteExposure),
		NameVignetteSize:     Number(fallbackVignetteSize),
		NameVignetteFeather:  Number(fallbackVignetteFeather),
	}

	explicit := make(map[string]Value, len(vignetteNames))
	for _, name := range vignetteNames {
		if hasOverride(cli, name) {
			explicit[name] = cli[name]
		} else if fileHas(file, name) {
			v, _ := file.Get(name)
			explicit[name] = v
		}
	}

	anyNumber := false
	anyOff := false
	for _, v := range explicit {
		if v.IsOff() {
			anyOff = true
		} else {
			anyNumber = true
		}
	}

	profileActive := false
	for _, name := range vignetteNames {
		if v, ok := profile[name]; ok && !v.IsOff() {
			profileActive = true
		}
	}

	active := anyNumber || (!anyOff && profileActive)
	if !active {
		for _, name := range vignetteNames {
			resolved.set(name, Off)
		}
		return
	}

	for _, name := range vignetteNames {
		if v, ok := explicit[name]; ok && !v.IsOff() {
			resolved.set(name, v)
			continue
		}
		if v, ok := profile[name]; ok && !v.IsOff() {
			resolved.set(name, v)
			continue
		}
		resolved.set(name, fallbacks[name])
	}
}

// validateOverrides rejects flags that name unknown parameters or switch an
// adjustment off. Both are caller bugs surfaced as ValidationError so batch
// runs abort before touching the network.
func validateOverrides(cli Overrides) error {
	for name, v := range cli {
		def, ok := Lookup(name)
		if !ok {
			return unknownSetting(name)
		}
		if v.IsOff() && !def.SupportsOff {
			return invalidValue(name, "adjustments cannot be switched off")
		}
	}
	return nil
}

func hasOverride(cli Overrides, name string) bool {
	_, ok := cli[name]
	return ok
}

func fileHas(file *File, name string) bool {
	_, ok := file.Get(name)
	return ok
}
