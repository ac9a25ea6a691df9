package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File holds the parameters read from a settings file, keyed by canonical
// catalog names. Only keys present in the document are stored; resolution
// against profile defaults happens later in Resolve.
type File struct {
	values map[string]Value
}

// Get returns the file's value for a catalog parameter name.
func (f *File) Get(name string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.values[name]
	return v, ok
}

// Len returns the number of parameters set in the file.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.values)
}

// LoadFile reads and parses a YAML settings file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return nil, fmt.Errorf("settings: load file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile parses a settings document of the form:
//
//	adjustments:
//	  exposure: 0.3
//	  contrast: 12
//	effects:
//	  grain: 40
//	  bloom: Off
//	  vignette:
//	    exposure: -30
//	    size: 60
//	    feather: 10
//
// The vignette group may also be the single token "Off". Keys outside the
// catalog fail with UnknownSetting; values that are neither numbers nor a
// legal Off token fail with InvalidValue. Both are checked here, at parse
// time, so a bad file never reaches the network.
func ParseFile(data []byte) (*File, error) {
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("settings: parse file: %w", err)
	}

	f := &File{values: make(map[string]Value)}

	for key, node := range top {
		switch key {
		case "adjustments":
			if err := f.parseGroup(key, node, Adjustments); err != nil {
				return nil, err
			}
		case "effects":
			if err := f.parseGroup(key, node, Effects); err != nil {
				return nil, err
			}
		default:
			return nil, unknownSetting(key)
		}
	}

	return f, nil
}

func (f *File) parseGroup(group string, node yaml.Node, g Group) error {
	var entries map[string]yaml.Node
	if err := node.Decode(&entries); err != nil {
		return invalidValue(group, "expected a mapping")
	}

	for key, val := range entries {
		qualified := group + "." + key

		if g == Effects && key == "vignette" {
			if err := f.parseVignette(val); err != nil {
				return err
			}
			continue
		}

		def, ok := Lookup(key)
		if !ok || def.Group != g || IsVignette(key) {
			return unknownSetting(qualified)
		}

		v, err := scalarValue(val)
		if err != nil {
			return invalidValue(qualified, err.Error())
		}
		if v.IsOff() && !def.SupportsOff {
			return invalidValue(qualified, "adjustments cannot be switched off")
		}

		f.values[key] = v
	}

	return nil
}

// parseVignette handles the nested vignette group: either the Off token,
// switching all three sub-parameters off, or a mapping with any of
// exposure/size/feather.
func (f *File) parseVignette(node yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v, err := scalarValue(node)
		if err != nil || !v.IsOff() {
			return invalidValue("effects.vignette", "expected a mapping or \"Off\"")
		}
		for _, name := range vignetteNames {
			f.values[name] = Off
		}
		return nil
	}

	var entries map[string]yaml.Node
	if err := node.Decode(&entries); err != nil {
		return invalidValue("effects.vignette", "expected a mapping or \"Off\"")
	}

	subNames := map[string]string{
		"exposure": NameVignetteExposure,
		"size":     NameVignetteSize,
		"feather":  NameVignetteFeather,
	}

	for key, val := range entries {
		qualified := "effects.vignette." + key

		name, ok := subNames[key]
		if !ok {
			return unknownSetting(qualified)
		}

		v, err := scalarValue(val)
		if err != nil {
			return invalidValue(qualified, err.Error())
		}
		if v.IsOff() {
			return invalidValue(qualified, "switch the whole vignette group off instead")
		}

		f.values[name] = v
	}

	return nil
}

// scalarValue decodes a YAML scalar as a number or the Off token.
func scalarValue(node yaml.Node) (Value, error) {
	if node.Kind != yaml.ScalarNode {
		return Value{}, fmt.Errorf("expected a number or %q", OffToken)
	}

	var f float64
	if err := node.Decode(&f); err == nil {
		return Number(f), nil
	}

	var s string
	if err := node.Decode(&s); err == nil {
		return Parse(s)
	}

	return Value{}, fmt.Errorf("expected a number or %q", OffToken)
}
