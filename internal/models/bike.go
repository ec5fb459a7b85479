package models

import (
	"gorm.io/gorm"
)

type BikeStatus string

const (
	BikeStatusAvailable   BikeStatus = "available"
	BikeStatusRented      BikeStatus = "rented"
	BikeStatusMaintenance BikeStatus = "maintenance"
	BikeStatusUnavailable BikeStatus = "unavailable"
)

// ValidBikeStatus reports whether s belongs to the closed status set.
func ValidBikeStatus(s string) bool {
	switch BikeStatus(s) {
	case BikeStatusAvailable, BikeStatusRented, BikeStatusMaintenance, BikeStatusUnavailable:
		return true
	}
	return false
}

type Bike struct {
	gorm.Model
	Name            string     `json:"name" gorm:"not null"`
	Brand           string     `json:"brand"`
	BikeModel       string     `json:"model" gorm:"column:model"`
	Type            string     `json:"type" gorm:"index"`
	ImageURL        string     `json:"imageUrl"`
	PricePerDay     int        `json:"pricePerDay" gorm:"not null"`
	PricePerHour    int        `json:"pricePerHour"`
	Rating          float64    `json:"rating"`
	TotalRatings    int        `json:"totalRatings"`
	Location        string     `json:"location" gorm:"index"`
	FuelType        string     `json:"fuelType"`
	Status          BikeStatus `json:"status" gorm:"not null;default:'available'"`
	Features        []string   `json:"features" gorm:"serializer:json"`
	Description     string     `json:"description"`
	Mileage         string     `json:"mileage"`
	LicenseRequired bool       `json:"licenseRequired"`
}
