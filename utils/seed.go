package utils

import (
	"carrental/models"

	"gorm.io/gorm"
)

func SeedDummyFleet(db *gorm.DB) {
	locations := []models.Location{
		{
			Name: "Airport",
			City: "Casablanca",
			Vehicles: []models.Vehicle{
				{Make: "Toyota", Model: "Corolla", Year: 2023, Category: "sedan", PricePerDay: 45.00, Mileage: 18400},
				{Make: "Hyundai", Model: "Tucson", Year: 2024, Category: "suv", PricePerDay: 72.00, Mileage: 9200},
				{Make: "Mercedes", Model: "E-Class", Year: 2023, Category: "luxury", PricePerDay: 140.00, Mileage: 12600},
			},
		},
		{
			Name: "Downtown",
			City: "Casablanca",
			Vehicles: []models.Vehicle{
				{Make: "Dacia", Model: "Sandero", Year: 2022, Category: "economy", PricePerDay: 28.00, Mileage: 34100},
				{Make: "Renault", Model: "Clio", Year: 2023, Category: "economy", PricePerDay: 30.00, Mileage: 21800},
			},
		},
		{
			Name: "Central Station",
			City: "Rabat",
			Vehicles: []models.Vehicle{
				{Make: "Volkswagen", Model: "Caddy", Year: 2022, Category: "van", PricePerDay: 85.00, Mileage: 46700},
				{Make: "Kia", Model: "Sportage", Year: 2024, Category: "suv", PricePerDay: 68.00, Mileage: 7300},
			},
		},
	}

	for _, l := range locations {
		var existing models.Location
		if err := db.Where("name = ?", l.Name).First(&existing).Error; err != nil {
			db.Create(&l)
		}
	}
}
