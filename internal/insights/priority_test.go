package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pulseinsights.org/pulsedb"
)

func TestPrioritizeStates(t *testing.T) {
	byYear := []pulsedb.InsuranceStateYear{
		{State: "gujarat", Year: 2024, Count: 50},
		{State: "karnataka", Year: 2023, Count: 1000},
		{State: "karnataka", Year: 2024, Count: 1500},
		{State: "kerala", Year: 2023, Count: 100},
		{State: "kerala", Year: 2024, Count: 300},
		{State: "maharashtra", Year: 2023, Count: 2000},
		{State: "maharashtra", Year: 2024, Count: 2100},
		{State: "punjab", Year: 2023, Count: 1000},
		{State: "punjab", Year: 2024, Count: 1100},
	}
	volumes := []pulsedb.InsuranceVolume{
		{State: "gujarat", Volume: 1000},
		{State: "karnataka", Volume: 200000},
		{State: "kerala", Volume: 5000},
		{State: "maharashtra", Volume: 300000},
		{State: "punjab", Volume: 4000},
		{State: "sikkim", Volume: 10},
	}

	got := PrioritizeStates(byYear, volumes, 2024, DefaultPriorityCriteria)
	require.Len(t, got, 5, "states without yearly counts are skipped")

	var order []string
	for _, p := range got {
		order = append(order, p.State+":"+string(p.Category))
	}
	assert.Equal(t, []string{
		"karnataka:Best",
		"maharashtra:Saturated",
		"kerala:Rising",
		"gujarat:Idle",
		"punjab:Idle",
	}, order)

	require.NotNil(t, got[0].GrowthPct)
	assert.Equal(t, 50.0, *got[0].GrowthPct)
	assert.Equal(t, "200.00 k", got[0].Volume.Text)
	assert.Equal(t, 5.0, *got[1].GrowthPct)
	assert.Nil(t, got[3].GrowthPct, "no policies the year before")
}

func TestClassifyBoundaries(t *testing.T) {
	assert.Equal(t, Idle, classify(true, 100000, 100000), "volume equal to the threshold is neither high nor low")
	assert.Equal(t, Idle, classify(false, 100000, 100000))
	assert.Equal(t, Rising, classify(true, 99999, 100000))
	assert.Equal(t, Saturated, classify(false, 100001, 100000))
	assert.Equal(t, Best, classify(true, 100001, 100000))
}

func TestPrioritizeStatesGrowthRoundsBeforeComparing(t *testing.T) {
	byYear := []pulsedb.InsuranceStateYear{
		{State: "assam", Year: 2023, Count: 300000},
		{State: "assam", Year: 2024, Count: 360001},
	}
	volumes := []pulsedb.InsuranceVolume{{State: "assam", Volume: 500000}}

	got := PrioritizeStates(byYear, volumes, 2024, DefaultPriorityCriteria)
	require.Len(t, got, 1)
	assert.Equal(t, 20.0, *got[0].GrowthPct)
	assert.Equal(t, Saturated, got[0].Category)
}
