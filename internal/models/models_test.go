package models_test

import (
	"encoding/json"
	"testing"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewDriver(t *testing.T) {
	t.Run("trims and condenses", func(t *testing.T) {
		driver := models.NewDriver("  Joshua Almanza-Bracks Jr. \t")

		assert.Equal(t, "Joshua Almanza-Bracks Jr.", driver.Name)
		assert.Equal(t, "joshuaalmanzabracksjr", driver.NameCondensed)
	})

	t.Run("drops non ascii letters", func(t *testing.T) {
		driver := models.NewDriver("Zoë O'Brien 3rd")

		assert.Equal(t, "zoobrienrd", driver.NameCondensed)
	})

	t.Run("empty name", func(t *testing.T) {
		driver := models.NewDriver("   ")

		assert.Empty(t, driver.Name)
		assert.Empty(t, driver.NameCondensed)
	})
}

func TestResultEncoding(t *testing.T) {
	result := models.Result{
		TotalScore: 9,
		Matches: []models.Match{
			{Driver: "Daniel Davidson", Address: "44 Fake Dr., San Diego, CA, 92122", Score: 9, DriverIndex: 1},
		},
		LeftoverDrivers:   []models.Driver{models.NewDriver("Bob Obb")},
		LeftoverAddresses: []models.Address{{Full: "1 Main St, Town, ST, 12345", Number: 1}},
	}

	t.Run("json", func(t *testing.T) {
		body, err := json.Marshal(result)
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"totalScore": 9,
			"matches": [{"driver": "Daniel Davidson", "address": "44 Fake Dr., San Diego, CA, 92122", "score": 9}],
			"leftoverDrivers": ["Bob Obb"],
			"leftoverAddresses": ["1 Main St, Town, ST, 12345"]
		}`, string(body))
	})

	t.Run("yaml", func(t *testing.T) {
		body, err := yaml.Marshal(result)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(body, &decoded))
		assert.Equal(t, []any{"Bob Obb"}, decoded["leftoverDrivers"])
		assert.Equal(t, []any{"1 Main St, Town, ST, 12345"}, decoded["leftoverAddresses"])
		assert.NotContains(t, string(body), "driverindex")
	})
}
