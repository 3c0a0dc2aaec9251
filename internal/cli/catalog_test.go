package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/unitconv/internal/units"
)

func TestPrintCategories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCategories(&buf, false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(units.Categories()))
	assert.True(t, strings.HasPrefix(lines[0], "length"))
	assert.True(t, strings.HasPrefix(lines[7], "currency"))
}

func TestPrintCategoriesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCategories(&buf, true))

	var out []categoryJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 8)
	assert.Equal(t, "temperature", out[1].Name)
	assert.Equal(t, "Temperature", out[1].Title)
	assert.Equal(t, 3, out[1].Units)
}

func TestPrintUnits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUnits(&buf, units.Data, false))

	output := buf.String()
	assert.Contains(t, output, "Data units:")
	assert.Contains(t, output, "Gigabyte")
	assert.Contains(t, output, "9.313225746154785e-10")
}

func TestPrintUnitsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUnits(&buf, units.Temperature, true))

	var out []unitJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "Celsius", out[0].Name)
	assert.Equal(t, "°C", out[0].Symbol)
}

func TestUnitsCommand_ExplicitCategory(t *testing.T) {
	cmd := &UnitsCommand{Category: "weight", globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, output, "Kilogram")
}

func TestUnitsCommand_UnknownCategory(t *testing.T) {
	cmd := &UnitsCommand{Category: "energy", globals: &GlobalFlags{}}
	err := cmd.Execute(nil)
	assert.ErrorIs(t, err, units.ErrUnknownCategory)
}
