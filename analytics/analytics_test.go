package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fleetFixture() []FleetRecord {
	return []FleetRecord{
		{Category: "Sedan", UtilizationRate: 87, AvgDistanceKm: 1200, AvgDurationDays: 3, MaintenanceEvents: 4},
		{Category: "SUV", UtilizationRate: 92, AvgDistanceKm: 1500, AvgDurationDays: 4, MaintenanceEvents: 6},
		{Category: "Economy", UtilizationRate: 76, AvgDistanceKm: 900, AvgDurationDays: 2, MaintenanceEvents: 3},
		{Category: "Van", UtilizationRate: 81, AvgDistanceKm: 1700, AvgDurationDays: 5, MaintenanceEvents: 5},
		{Category: "Luxury", UtilizationRate: 94, AvgDistanceKm: 800, AvgDurationDays: 3, MaintenanceEvents: 2},
	}
}

func TestSummarizeFleet(t *testing.T) {
	summary := SummarizeFleet(fleetFixture())

	assert.Equal(t, 86, summary.AvgUtilization) // mean of 87,92,76,81,94 rounded
	assert.Equal(t, 20, summary.TotalMaintenance)
	assert.Equal(t, "Luxury", summary.Top.Category)
	assert.InDelta(t, 1220, summary.AvgDistanceKm, 0.001)
	assert.InDelta(t, 3.4, summary.AvgDurationDays, 0.001)
}

func TestSummarizeFleet_TieKeepsFirstRecord(t *testing.T) {
	records := []FleetRecord{
		{Category: "A", UtilizationRate: 90},
		{Category: "B", UtilizationRate: 90},
	}

	summary := SummarizeFleet(records)
	assert.Equal(t, "A", summary.Top.Category)
}

func TestSummarizeFleet_Empty(t *testing.T) {
	assert.Equal(t, FleetSummary{}, SummarizeFleet(nil))
}

func TestSummarizeLocations(t *testing.T) {
	records := []LocationRecord{
		{Name: "Airport", Pickups: 487, Dropoffs: 462, Revenue: 96400, GrowthPct: 12},
		{Name: "Downtown", Pickups: 342, Dropoffs: 371, Revenue: 64800, GrowthPct: 8},
		{Name: "Central Station", Pickups: 298, Dropoffs: 305, Revenue: 51200, GrowthPct: 6},
		{Name: "Harbor", Pickups: 163, Dropoffs: 148, Revenue: 28900, GrowthPct: -2},
		{Name: "Uptown", Pickups: 120, Dropoffs: 124, Revenue: 22600, GrowthPct: 4},
	}

	summary := SummarizeLocations(records)

	assert.Equal(t, 1410, summary.TotalPickups)
	assert.Equal(t, 1410, summary.TotalDropoffs)
	assert.InDelta(t, 263900, summary.TotalRevenue, 0.001)
	assert.InDelta(t, 5.6, summary.AvgGrowthPct, 0.001)
	assert.Equal(t, "Airport", summary.Top.Name)

	require.Len(t, summary.Shares, 5)
	assert.Equal(t, "Downtown", summary.Shares[1].Name)
	assert.Equal(t, 24, summary.Shares[1].PickupSharePct) // 342 of 1410
}

func TestPercentOfTotal(t *testing.T) {
	assert.Equal(t, 24, PercentOfTotal(342, 1410))
	assert.Equal(t, 0, PercentOfTotal(10, 0))
	assert.Equal(t, 100, PercentOfTotal(5, 5))
}

func TestSummarizeRevenue_Month(t *testing.T) {
	buckets, err := SampleProvider{}.RevenueSeries(context.Background(), "month")
	require.NoError(t, err)

	summary := SummarizeRevenue("month", buckets)

	var want float64
	for _, b := range buckets {
		want += b.Amount
	}
	assert.InDelta(t, want, summary.Total, 0.001)
	assert.InDelta(t, want*0.92, summary.Previous, 0.001)
	assert.Equal(t, "Jun", summary.Top.Label)
}

func TestSummarizeRevenue_Empty(t *testing.T) {
	summary := SummarizeRevenue("day", nil)
	assert.Equal(t, "day", summary.Period)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Previous)
}

func TestSampleProvider_FleetMatchesDashboard(t *testing.T) {
	records, err := SampleProvider{}.FleetRecords(context.Background())
	require.NoError(t, err)

	summary := SummarizeFleet(records)
	assert.Equal(t, 86, summary.AvgUtilization)
	assert.Equal(t, "Luxury", summary.Top.Category)
	assert.InDelta(t, 94, summary.Top.UtilizationRate, 0.001)
}
