// Package analytics holds the pure aggregation transforms behind the admin
// dashboard widgets. Transforms are deterministic over whatever dataset a
// Provider hands them; no I/O happens here.
package analytics

import "math"

type FleetRecord struct {
	Category          string  `json:"category"`
	Vehicles          int     `json:"vehicles"`
	UtilizationRate   float64 `json:"utilization_rate"` // percent
	AvgDistanceKm     float64 `json:"avg_distance_km"`
	AvgDurationDays   float64 `json:"avg_duration_days"`
	MaintenanceEvents int     `json:"maintenance_events"`
}

type FleetSummary struct {
	AvgUtilization   int         `json:"avg_utilization"`
	AvgDistanceKm    float64     `json:"avg_distance_km"`
	AvgDurationDays  float64     `json:"avg_duration_days"`
	TotalMaintenance int         `json:"total_maintenance"`
	Top              FleetRecord `json:"top"`
}

type LocationRecord struct {
	Name      string  `json:"name"`
	Pickups   int     `json:"pickups"`
	Dropoffs  int     `json:"dropoffs"`
	Revenue   float64 `json:"revenue"`
	GrowthPct float64 `json:"growth_pct"`
}

type LocationShare struct {
	Name            string `json:"name"`
	PickupSharePct  int    `json:"pickup_share_pct"`
	RevenueSharePct int    `json:"revenue_share_pct"`
}

type LocationSummary struct {
	TotalPickups  int             `json:"total_pickups"`
	TotalDropoffs int             `json:"total_dropoffs"`
	TotalRevenue  float64         `json:"total_revenue"`
	AvgGrowthPct  float64         `json:"avg_growth_pct"`
	Top           LocationRecord  `json:"top"`
	Shares        []LocationShare `json:"shares"`
}

type RevenueBucket struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type RevenueSummary struct {
	Period   string        `json:"period"`
	Total    float64       `json:"total"`
	Previous float64       `json:"previous"`
	Top      RevenueBucket `json:"top"`
}

// priorPeriodRatio is a fixed placeholder for the previous-period comparison;
// it is not derived from real history.
const priorPeriodRatio = 0.92

// SummarizeFleet computes the fleet widget statistics. Ties for the top
// record resolve to the earliest entry.
func SummarizeFleet(records []FleetRecord) FleetSummary {
	if len(records) == 0 {
		return FleetSummary{}
	}

	var utilization, distance, duration float64
	var maintenance int
	top := records[0]

	for _, r := range records {
		utilization += r.UtilizationRate
		distance += r.AvgDistanceKm
		duration += r.AvgDurationDays
		maintenance += r.MaintenanceEvents
		if r.UtilizationRate > top.UtilizationRate {
			top = r
		}
	}

	n := float64(len(records))
	return FleetSummary{
		AvgUtilization:   int(math.Round(utilization / n)),
		AvgDistanceKm:    distance / n,
		AvgDurationDays:  duration / n,
		TotalMaintenance: maintenance,
		Top:              top,
	}
}

// SummarizeLocations totals pickups/dropoffs/revenue, averages growth, finds
// the highest-revenue record and derives per-record shares of the totals.
func SummarizeLocations(records []LocationRecord) LocationSummary {
	if len(records) == 0 {
		return LocationSummary{}
	}

	var summary LocationSummary
	var growth float64
	top := records[0]

	for _, r := range records {
		summary.TotalPickups += r.Pickups
		summary.TotalDropoffs += r.Dropoffs
		summary.TotalRevenue += r.Revenue
		growth += r.GrowthPct
		if r.Revenue > top.Revenue {
			top = r
		}
	}

	summary.AvgGrowthPct = growth / float64(len(records))
	summary.Top = top

	summary.Shares = make([]LocationShare, 0, len(records))
	for _, r := range records {
		summary.Shares = append(summary.Shares, LocationShare{
			Name:            r.Name,
			PickupSharePct:  PercentOfTotal(float64(r.Pickups), float64(summary.TotalPickups)),
			RevenueSharePct: PercentOfTotal(r.Revenue, summary.TotalRevenue),
		})
	}

	return summary
}

// SummarizeRevenue totals the buckets of one period and simulates the prior
// period as a fixed share of the current total.
func SummarizeRevenue(period string, buckets []RevenueBucket) RevenueSummary {
	summary := RevenueSummary{Period: period}
	if len(buckets) == 0 {
		return summary
	}

	top := buckets[0]
	for _, b := range buckets {
		summary.Total += b.Amount
		if b.Amount > top.Amount {
			top = b
		}
	}

	summary.Previous = summary.Total * priorPeriodRatio
	summary.Top = top
	return summary
}

// PercentOfTotal returns part as a rounded percentage of total, 0 when the
// total is zero.
func PercentOfTotal(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}
