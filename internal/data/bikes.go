package data

import (
	"github.com/coastalrides/bikerental-backend/internal/models"
)

// FallbackBikes is the static catalog served when the datastore read fails
// and seeded on first migration so a fresh install has something to rent.
var FallbackBikes = []models.Bike{
	{
		Name:         "Yamaha Fascino",
		Brand:        "Yamaha",
		BikeModel:    "2024 Model",
		Type:         "Scooter",
		ImageURL:     "https://5.imimg.com/data5/OI/XF/GLADMIN-7497522/fascino-500x500.jpg",
		PricePerDay:  360,
		PricePerHour: 15,
		Rating:       4.6,
		TotalRatings: 89,
		Location:     "Malpe, Udupi",
		FuelType:     "Petrol",
		Status:       models.BikeStatusAvailable,
		Features:     []string{"Fuel Efficient", "Comfortable Seat", "LED Headlight", "Digital Display"},
		Description:  "Stylish and fuel-efficient scooter perfect for coastal rides around Malpe and Udupi.",
	},
	{
		Name:         "Honda Activa 6G",
		Brand:        "Honda",
		BikeModel:    "2023 Model",
		Type:         "Scooter",
		ImageURL:     "https://www.honda2wheelersindia.com/assets/images/activa6g.jpg",
		PricePerDay:  360,
		PricePerHour: 15,
		Rating:       4.5,
		TotalRatings: 132,
		Location:     "Malpe, Udupi",
		FuelType:     "Petrol",
		Status:       models.BikeStatusAvailable,
		Features:     []string{"Easy Handling", "Good Mileage", "Reliable Engine", "Silent Start"},
		Description:  "Dependable daily rider for exploring the beaches and coastal roads of Malpe.",
	},
	{
		Name:            "Royal Enfield Classic 350",
		Brand:           "Royal Enfield",
		BikeModel:       "2023 Model",
		Type:            "Cruiser",
		ImageURL:        "https://imgd.aeplcdn.com/664x374/n/cw/ec/1/classic350.jpg",
		PricePerDay:     800,
		PricePerHour:    35,
		Rating:          4.8,
		TotalRatings:    57,
		Location:        "Udupi",
		FuelType:        "Petrol",
		Status:          models.BikeStatusAvailable,
		Features:        []string{"Powerful Engine", "Comfortable for Long Rides", "Classic Design"},
		Description:     "Iconic cruiser for longer day trips along the Konkan coast.",
		Mileage:         "35 kmpl",
		LicenseRequired: true,
	},
	{
		Name:            "Bajaj Pulsar NS200",
		Brand:           "Bajaj",
		BikeModel:       "2024 Model",
		Type:            "Sports",
		ImageURL:        "https://imgd.aeplcdn.com/664x374/n/cw/ec/1/pulsar-ns200.jpg",
		PricePerDay:     650,
		PricePerHour:    28,
		Rating:          4.4,
		TotalRatings:    41,
		Location:        "Manipal",
		FuelType:        "Petrol",
		Status:          models.BikeStatusAvailable,
		Features:        []string{"Sporty Handling", "ABS", "Digital Console"},
		Description:     "Quick and agile for riders who want something sharper than a scooter.",
		Mileage:         "32 kmpl",
		LicenseRequired: true,
	},
}
