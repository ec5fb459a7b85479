package handlers

import (
	"time"

	"github.com/coastalrides/bikerental-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// GetRentalQuote prices a candidate rental window without creating
// anything. The same calculator runs again at booking create, so the quote
// can never drift from the charged amount.
func GetRentalQuote() gin.HandlerFunc {
	return func(c *gin.Context) {
		start, err := time.Parse(time.RFC3339, c.Query("start"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid start time"})
			return
		}
		end, err := time.Parse(time.RFC3339, c.Query("end"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid end time"})
			return
		}
		extraHelmet := c.Query("extra_helmet") == "true"

		if err := utils.ValidateBookingWindow(start, end, time.Now()); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, utils.CalculateRentalQuote(start, end, extraHelmet))
	}
}
