package handlers

import (
	"strconv"

	"github.com/coastalrides/bikerental-backend/internal/data"
	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GetBikes lists the catalog with the storefront's filter predicates:
// location substring, type equality, daily price range, free-text search.
// Only available bikes are listed unless an explicit status is requested.
// A failed read degrades to the static fallback list rather than an error.
func GetBikes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", string(models.BikeStatusAvailable))

		query := db.Model(&models.Bike{}).Where("status = ?", status)

		if location := c.Query("location"); location != "" {
			query = query.Where("LOWER(location) LIKE LOWER(?)", "%"+location+"%")
		}
		if bikeType := c.Query("type"); bikeType != "" {
			query = query.Where("type = ?", bikeType)
		}
		if minPrice := c.Query("min_price"); minPrice != "" {
			if v, err := strconv.Atoi(minPrice); err == nil {
				query = query.Where("price_per_day >= ?", v)
			}
		}
		if maxPrice := c.Query("max_price"); maxPrice != "" {
			if v, err := strconv.Atoi(maxPrice); err == nil {
				query = query.Where("price_per_day <= ?", v)
			}
		}
		if q := c.Query("q"); q != "" {
			like := "%" + q + "%"
			query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(model) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)", like, like, like)
		}

		var bikes []models.Bike
		if err := query.Order("created_at DESC").Find(&bikes).Error; err != nil {
			log.Warn().Err(err).Msg("catalog read failed, serving static fallback")
			c.JSON(200, gin.H{"bikes": data.FallbackBikes, "fallback": true})
			return
		}

		c.JSON(200, gin.H{"bikes": bikes})
	}
}

// GetBike retrieves a single bike
func GetBike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bike models.Bike
		if err := db.First(&bike, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Bike not found"})
			return
		}

		c.JSON(200, bike)
	}
}

type bikeInput struct {
	Name            string   `json:"name" binding:"required"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Type            string   `json:"type" binding:"required"`
	ImageURL        string   `json:"imageUrl"`
	PricePerDay     int      `json:"pricePerDay" binding:"required"`
	PricePerHour    int      `json:"pricePerHour"`
	Location        string   `json:"location" binding:"required"`
	FuelType        string   `json:"fuelType"`
	Status          string   `json:"status"`
	Features        []string `json:"features"`
	Description     string   `json:"description"`
	Mileage         string   `json:"mileage"`
	LicenseRequired bool     `json:"licenseRequired"`
}

// CreateBike creates a vehicle (admin only)
func CreateBike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input bikeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.PricePerDay < 0 || input.PricePerHour < 0 {
			c.JSON(400, gin.H{"error": "Pricing values must be non-negative"})
			return
		}

		status := input.Status
		if status == "" {
			status = string(models.BikeStatusAvailable)
		}
		if !models.ValidBikeStatus(status) {
			c.JSON(400, gin.H{"error": "Invalid bike status"})
			return
		}

		bike := models.Bike{
			Name:            input.Name,
			Brand:           input.Brand,
			BikeModel:       input.Model,
			Type:            input.Type,
			ImageURL:        input.ImageURL,
			PricePerDay:     input.PricePerDay,
			PricePerHour:    input.PricePerHour,
			Location:        input.Location,
			FuelType:        input.FuelType,
			Status:          models.BikeStatus(status),
			Features:        input.Features,
			Description:     input.Description,
			Mileage:         input.Mileage,
			LicenseRequired: input.LicenseRequired,
		}

		if err := db.Create(&bike).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create bike"})
			return
		}

		c.JSON(201, bike)
	}
}

// UpdateBike updates a vehicle (admin only)
func UpdateBike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bike models.Bike
		if err := db.First(&bike, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Bike not found"})
			return
		}

		var input bikeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.PricePerDay < 0 || input.PricePerHour < 0 {
			c.JSON(400, gin.H{"error": "Pricing values must be non-negative"})
			return
		}
		if input.Status != "" && !models.ValidBikeStatus(input.Status) {
			c.JSON(400, gin.H{"error": "Invalid bike status"})
			return
		}

		bike.Name = input.Name
		bike.Brand = input.Brand
		bike.BikeModel = input.Model
		bike.Type = input.Type
		bike.ImageURL = input.ImageURL
		bike.PricePerDay = input.PricePerDay
		bike.PricePerHour = input.PricePerHour
		bike.Location = input.Location
		bike.FuelType = input.FuelType
		if input.Status != "" {
			bike.Status = models.BikeStatus(input.Status)
		}
		bike.Features = input.Features
		bike.Description = input.Description
		bike.Mileage = input.Mileage
		bike.LicenseRequired = input.LicenseRequired

		if err := db.Save(&bike).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update bike"})
			return
		}

		c.JSON(200, bike)
	}
}

// DeleteBike removes a vehicle from the catalog (admin only)
func DeleteBike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bike models.Bike
		if err := db.First(&bike, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Bike not found"})
			return
		}

		if err := db.Delete(&bike).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete bike"})
			return
		}

		c.JSON(200, gin.H{"message": "Bike deleted"})
	}
}
