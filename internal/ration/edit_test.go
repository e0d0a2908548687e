package ration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEdit(t *testing.T) {
	e, err := ParseEdit("dailyQuantities.1.distribution = 35.5")
	require.NoError(t, err)
	require.Equal(t, Edit{Path: "dailyQuantities.1.distribution", Value: 35.5}, e)

	_, err = ParseEdit("splittingCount")
	require.Error(t, err)

	_, err = ParseEdit("splittingCount=two")
	require.ErrorIs(t, err, ErrValidation)
}

func TestApply_Routes(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.Apply(Edit{Path: "splittingCount", Value: 3}))
	require.NoError(t, m.Apply(Edit{Path: "splittings.2", Value: 2.5}))
	require.NoError(t, m.AddDefaultDailyQuantity())
	require.NoError(t, m.Apply(Edit{Path: "dailyQuantities.1.quantity", Value: 40}))
	require.NoError(t, m.Apply(Edit{Path: "dailyQuantities.0.distribution", Value: 80}))

	cfg := m.Snapshot()
	require.Equal(t, []float64{1, 1, 2.5}, cfg.Splittings)
	require.Equal(t, 40.0, cfg.DailyQuantities[1].Quantity)
	require.Equal(t, 80.0, cfg.DailyQuantities[0].Distribution)
	require.Equal(t, 20.0, cfg.DailyQuantities[1].Distribution)
}

func TestApply_Rejected(t *testing.T) {
	m := New(nil)
	before := m.Snapshot()

	for _, e := range []Edit{
		{Path: "splittingCount", Value: 0},
		{Path: "splittingCount", Value: 2.5},
		{Path: "splittingCount", Value: 1e12},
		{Path: "splittings.x", Value: 1},
		{Path: "splittings.0.weight", Value: 1},
		{Path: "dailyQuantities.0.colour", Value: 1},
		{Path: "dailyQuantities.0", Value: 1},
		{Path: "unknown", Value: 1},
	} {
		t.Run(e.Path, func(t *testing.T) {
			require.ErrorIs(t, m.Apply(e), ErrValidation)
		})
	}
	require.True(t, m.Snapshot().Equal(before))
}
