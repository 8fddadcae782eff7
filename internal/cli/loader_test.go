package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadProfile_Full(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.cue")
	writeFile(t, path, `
units: [{
	symbol:    "kip"
	name:      "kip"
	dimension: "force"
	factor:    4448.2216
}]
variables: {
	phi: {value: 0.9, unit: "", description: "resistance factor"}
}
preferences: ["mm", "MPa"]
precision: {
	significant_digits: 4
	format:             "engineering"
}
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)

	require.Len(t, p.Units, 1)
	assert.Equal(t, "kip", p.Units[0].Symbol)
	assert.Equal(t, "force", p.Units[0].Dimension)
	assert.InDelta(t, 4448.2216, p.Units[0].Factor, 1e-9)
	assert.Zero(t, p.Units[0].Offset)

	require.Contains(t, p.Variables, "phi")
	assert.InDelta(t, 0.9, p.Variables["phi"].Value, 1e-12)

	assert.Equal(t, []string{"mm", "MPa"}, p.Preferences)

	require.NotNil(t, p.Precision)
	assert.Equal(t, 4, p.Precision.SignificantDigits)
	assert.Equal(t, "engineering", p.Precision.Format)
	// Defaulted by the schema.
	assert.Equal(t, 4, p.Precision.DecimalPlaces)
}

func TestLoadProfile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.cue")
	writeFile(t, path, "\n")

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Empty(t, p.Units)
	assert.Empty(t, p.Variables)
	assert.Nil(t, p.Precision)
}

func TestLoadProfile_NotFound(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestLoadProfile_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.cue")
	// factor must be non-zero.
	writeFile(t, path, `
units: [{
	symbol:    "bogus"
	name:      "bogus"
	dimension: "length"
	factor:    0
}]
`)

	_, err := LoadProfile(path)
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeSchemaFailed, le.Code)
}

func TestLoadProfile_BadFormatEnum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.cue")
	writeFile(t, path, `precision: {format: "roman"}`)

	_, err := LoadProfile(path)
	require.Error(t, err)
}

func TestLoadProfile_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.cue")
	writeFile(t, path, "units: [{")

	_, err := LoadProfile(path)
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeParseFailed, le.Code)
}
