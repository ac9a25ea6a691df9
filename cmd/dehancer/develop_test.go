package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halide-labs/dehancer-cli/pkg/settings"
)

func overrideValues(t *testing.T, set map[string]string) []*string {
	t.Helper()

	values := make([]*string, len(settingFlags))
	for i, sf := range settingFlags {
		v := set[sf.long]
		values[i] = &v
	}
	return values
}

func TestParseOverrides(t *testing.T) {
	values := overrideValues(t, map[string]string{
		"set_exposure": "0.5",
		"set_grain":    "40",
		"set_bloom":    "Off",
	})

	overrides, err := parseOverrides(values)
	require.NoError(t, err)

	assert.Equal(t, settings.Overrides{
		settings.NameExposure: settings.Number(0.5),
		settings.NameGrain:    settings.Number(40),
		settings.NameBloom:    settings.Off,
	}, overrides)
}

func TestParseOverrides_Empty(t *testing.T) {
	overrides, err := parseOverrides(overrideValues(t, nil))
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestParseOverrides_InvalidValue(t *testing.T) {
	values := overrideValues(t, map[string]string{"set_contrast": "loud"})

	_, err := parseOverrides(values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--set_contrast")

	// Bad flag values belong to the validation taxonomy so main can map
	// them to the dedicated exit code.
	var verr *settings.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, settings.InvalidValue, verr.Kind)
	assert.Equal(t, settings.NameContrast, verr.Setting)
}

func TestParseOverrides_OffOnAdjustment(t *testing.T) {
	values := overrideValues(t, map[string]string{"set_exposure": "Off"})

	_, err := parseOverrides(values)
	require.Error(t, err)

	var verr *settings.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, settings.InvalidValue, verr.Kind)
}
