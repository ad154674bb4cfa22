package analytics

import (
	"context"

	"carrental/models"

	"gorm.io/gorm"
)

// Provider feeds the aggregation transforms. The admin endpoints accept any
// implementation; the live one reads the database, the sample one serves a
// fixed dataset.
type Provider interface {
	FleetRecords(ctx context.Context) ([]FleetRecord, error)
	LocationRecords(ctx context.Context) ([]LocationRecord, error)
	RevenueSeries(ctx context.Context, period string) ([]RevenueBucket, error)
}

type GormProvider struct {
	DB *gorm.DB
}

func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{DB: db}
}

func (p *GormProvider) FleetRecords(ctx context.Context) ([]FleetRecord, error) {
	var records []FleetRecord

	err := p.DB.WithContext(ctx).
		Model(&models.Vehicle{}).
		Select(`category,
			COUNT(*) AS vehicles,
			ROUND(100.0 * SUM(CASE WHEN status <> 'available' THEN 1 ELSE 0 END)::numeric / COUNT(*), 1) AS utilization_rate,
			ROUND(AVG(mileage)::numeric, 1) AS avg_distance_km,
			SUM(CASE WHEN status = 'maintenance' THEN 1 ELSE 0 END) AS maintenance_events`).
		Group("category").
		Order("category ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	type durationRow struct {
		Category        string
		AvgDurationDays float64
	}
	var durations []durationRow
	err = p.DB.WithContext(ctx).
		Table("bookings").
		Select("vehicles.category AS category, ROUND(AVG(bookings.days)::numeric, 1) AS avg_duration_days").
		Joins("JOIN vehicles ON vehicles.id = bookings.vehicle_id").
		Where("bookings.status = ?", "confirmed").
		Group("vehicles.category").
		Scan(&durations).Error
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]float64, len(durations))
	for _, d := range durations {
		byCategory[d.Category] = d.AvgDurationDays
	}
	for i := range records {
		records[i].AvgDurationDays = byCategory[records[i].Category]
	}

	return records, nil
}

func (p *GormProvider) LocationRecords(ctx context.Context) ([]LocationRecord, error) {
	var locations []models.Location
	if err := p.DB.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}

	records := make([]LocationRecord, 0, len(locations))
	for _, loc := range locations {
		var pickups, dropoffs int64
		p.DB.WithContext(ctx).Model(&models.Booking{}).
			Where("pickup_location_id = ?", loc.ID).Count(&pickups)
		p.DB.WithContext(ctx).Model(&models.Booking{}).
			Where("dropoff_location_id = ?", loc.ID).Count(&dropoffs)

		var revenue float64
		p.DB.WithContext(ctx).Model(&models.Booking{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("pickup_location_id = ? AND status = ?", loc.ID, "confirmed").
			Scan(&revenue)

		var current, previous float64
		p.DB.WithContext(ctx).Model(&models.Booking{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("pickup_location_id = ? AND status = ? AND created_at >= NOW() - INTERVAL '30 days'", loc.ID, "confirmed").
			Scan(&current)
		p.DB.WithContext(ctx).Model(&models.Booking{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("pickup_location_id = ? AND status = ? AND created_at >= NOW() - INTERVAL '60 days' AND created_at < NOW() - INTERVAL '30 days'", loc.ID, "confirmed").
			Scan(&previous)

		var growth float64
		if previous > 0 {
			growth = (current - previous) / previous * 100
		}

		records = append(records, LocationRecord{
			Name:      loc.Name,
			Pickups:   int(pickups),
			Dropoffs:  int(dropoffs),
			Revenue:   revenue,
			GrowthPct: growth,
		})
	}

	return records, nil
}

func (p *GormProvider) RevenueSeries(ctx context.Context, period string) ([]RevenueBucket, error) {
	var format, cutoff string
	switch period {
	case "day":
		format, cutoff = "YYYY-MM-DD", "7 days"
	case "week":
		format, cutoff = "IYYY-\"W\"IW", "28 days"
	default:
		format, cutoff = "YYYY-MM", "6 months"
	}

	var buckets []RevenueBucket
	err := p.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Select("TO_CHAR(created_at, '"+format+"') AS label, SUM(total_amount) AS amount").
		Where("status = ? AND created_at >= NOW() - INTERVAL '"+cutoff+"'", "confirmed").
		Group("TO_CHAR(created_at, '" + format + "')").
		Order("TO_CHAR(created_at, '" + format + "') ASC").
		Scan(&buckets).Error
	return buckets, err
}

// SampleProvider serves the fixed dashboard dataset used before live data
// accumulates.
type SampleProvider struct{}

func (SampleProvider) FleetRecords(ctx context.Context) ([]FleetRecord, error) {
	return []FleetRecord{
		{Category: "Sedan", Vehicles: 24, UtilizationRate: 87, AvgDistanceKm: 1240, AvgDurationDays: 3.2, MaintenanceEvents: 4},
		{Category: "SUV", Vehicles: 18, UtilizationRate: 92, AvgDistanceKm: 1580, AvgDurationDays: 4.1, MaintenanceEvents: 6},
		{Category: "Economy", Vehicles: 30, UtilizationRate: 76, AvgDistanceKm: 980, AvgDurationDays: 2.4, MaintenanceEvents: 3},
		{Category: "Van", Vehicles: 12, UtilizationRate: 81, AvgDistanceKm: 1730, AvgDurationDays: 5.0, MaintenanceEvents: 5},
		{Category: "Luxury", Vehicles: 9, UtilizationRate: 94, AvgDistanceKm: 860, AvgDurationDays: 2.8, MaintenanceEvents: 2},
	}, nil
}

func (SampleProvider) LocationRecords(ctx context.Context) ([]LocationRecord, error) {
	return []LocationRecord{
		{Name: "Airport", Pickups: 487, Dropoffs: 462, Revenue: 96400, GrowthPct: 12.5},
		{Name: "Downtown", Pickups: 342, Dropoffs: 371, Revenue: 64800, GrowthPct: 8.2},
		{Name: "Central Station", Pickups: 298, Dropoffs: 305, Revenue: 51200, GrowthPct: 5.9},
		{Name: "Harbor", Pickups: 163, Dropoffs: 148, Revenue: 28900, GrowthPct: -2.3},
		{Name: "Uptown", Pickups: 120, Dropoffs: 124, Revenue: 22600, GrowthPct: 3.1},
	}, nil
}

func (SampleProvider) RevenueSeries(ctx context.Context, period string) ([]RevenueBucket, error) {
	switch period {
	case "day":
		return []RevenueBucket{
			{Label: "Mon", Amount: 3200}, {Label: "Tue", Amount: 2850},
			{Label: "Wed", Amount: 3100}, {Label: "Thu", Amount: 3650},
			{Label: "Fri", Amount: 4900}, {Label: "Sat", Amount: 5400},
			{Label: "Sun", Amount: 4100},
		}, nil
	case "week":
		return []RevenueBucket{
			{Label: "Week 1", Amount: 24100}, {Label: "Week 2", Amount: 26500},
			{Label: "Week 3", Amount: 25200}, {Label: "Week 4", Amount: 28900},
		}, nil
	default:
		return []RevenueBucket{
			{Label: "Jan", Amount: 82500}, {Label: "Feb", Amount: 89900},
			{Label: "Mar", Amount: 94300}, {Label: "Apr", Amount: 101800},
			{Label: "May", Amount: 118600}, {Label: "Jun", Amount: 127200},
		}, nil
	}
}
