package fridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultZones(t *testing.T) {
	zones := DefaultZones()

	assert.Equal(t, TotalLevels, zones.Levels())
	assert.Equal(t, map[int]int{0: -18, 1: -5, 2: 2, 3: 6, 4: 10}, zones.Map())
}

func TestZoneTable_Temperature(t *testing.T) {
	zones := DefaultZones()

	temp, err := zones.Temperature(0)
	assert.NoError(t, err)
	assert.Equal(t, -18, temp)

	_, err = zones.Temperature(5)
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = zones.Temperature(-1)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestZoneTable_Nearest(t *testing.T) {
	zones := DefaultZones()

	testCases := []struct {
		target int
		level  int
	}{
		{-18, 0},
		{-20, 0},
		{-5, 1},
		{0, 2},
		{2, 2},
		{4, 2},
		{7, 3},
		{10, 4},
		{25, 4},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.level, zones.Nearest(tc.target), "target %d°C", tc.target)
	}
}

func TestZoneTable_NearestTieBreaksLow(t *testing.T) {
	// 0°C is equidistant from levels at -2 and 2; the lower level wins.
	zones := NewZoneTable([]int{-2, 2})
	assert.Equal(t, 0, zones.Nearest(0))
}
