package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_Full(t *testing.T) {
	doc := []byte(`
adjustments:
  exposure: 0.3
  contrast: 12
effects:
  grain: 40
  bloom: Off
  vignette:
    exposure: -30
    size: 60
    feather: 10
`)

	f, err := ParseFile(doc)
	require.NoError(t, err)
	assert.Equal(t, 7, f.Len())

	v, ok := f.Get(NameExposure)
	require.True(t, ok)
	assert.InDelta(t, 0.3, v.Float(), 1e-9)

	v, ok = f.Get(NameBloom)
	require.True(t, ok)
	assert.True(t, v.IsOff())

	v, ok = f.Get(NameVignetteSize)
	require.True(t, ok)
	assert.InDelta(t, 60, v.Float(), 1e-9)

	// Keys absent from the document stay absent; defaults come in later,
	// during resolution.
	_, ok = f.Get(NameHalation)
	assert.False(t, ok)
}

func TestParseFile_Empty(t *testing.T) {
	f, err := ParseFile([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, f.Len())
}

func TestParseFile_UnknownTopLevelKey(t *testing.T) {
	_, err := ParseFile([]byte("tweaks:\n  exposure: 1\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, UnknownSetting, verr.Kind)
	assert.Equal(t, "tweaks", verr.Setting)
}

func TestParseFile_UnknownSettingKey(t *testing.T) {
	_, err := ParseFile([]byte("adjustments:\n  sharpness: 3\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, UnknownSetting, verr.Kind)
	assert.Equal(t, "adjustments.sharpness", verr.Setting)
}

func TestParseFile_SettingInWrongGroup(t *testing.T) {
	// grain is an effect; listing it under adjustments is a schema error.
	_, err := ParseFile([]byte("adjustments:\n  grain: 40\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, UnknownSetting, verr.Kind)
}

func TestParseFile_AdjustmentOffRejected(t *testing.T) {
	_, err := ParseFile([]byte("adjustments:\n  exposure: Off\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InvalidValue, verr.Kind)
	assert.Equal(t, "adjustments.exposure", verr.Setting)
}

func TestParseFile_NonNumericValue(t *testing.T) {
	_, err := ParseFile([]byte("effects:\n  grain: heavy\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InvalidValue, verr.Kind)
}

func TestParseFile_VignetteOffScalar(t *testing.T) {
	f, err := ParseFile([]byte("effects:\n  vignette: Off\n"))
	require.NoError(t, err)

	for _, name := range []string{NameVignetteExposure, NameVignetteSize, NameVignetteFeather} {
		v, ok := f.Get(name)
		require.True(t, ok, name)
		assert.True(t, v.IsOff(), name)
	}
}

func TestParseFile_VignetteSubOffRejected(t *testing.T) {
	_, err := ParseFile([]byte("effects:\n  vignette:\n    size: Off\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InvalidValue, verr.Kind)
	assert.Equal(t, "effects.vignette.size", verr.Setting)
}

func TestParseFile_VignetteUnknownSub(t *testing.T) {
	_, err := ParseFile([]byte("effects:\n  vignette:\n    radius: 12\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, UnknownSetting, verr.Kind)
	assert.Equal(t, "effects.vignette.radius", verr.Setting)
}

func TestParseFile_VignetteBadShape(t *testing.T) {
	_, err := ParseFile([]byte("effects:\n  vignette: 12\n"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InvalidValue, verr.Kind)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("effects:\n  grain: 25\n"), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)

	v, ok := f.Get(NameGrain)
	require.True(t, ok)
	assert.InDelta(t, 25, v.Float(), 1e-9)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
