package handlers

import (
	"time"

	"github.com/coastalrides/bikerental-backend/internal/services"
	"github.com/coastalrides/bikerental-backend/internal/verification"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// loadSession fetches the caller's wizard session or writes the error
// response and returns nil.
func loadSession(c *gin.Context) *verification.Session {
	userId := c.GetUint("userId")

	session, err := services.GetVerificationSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"error": "Verification session not found or expired"})
		return nil
	}
	if session.UserID != userId {
		c.JSON(403, gin.H{"error": "Unauthorized"})
		return nil
	}
	return session
}

func saveSession(c *gin.Context, session *verification.Session) bool {
	if err := services.SaveVerificationSession(c.Request.Context(), session); err != nil {
		c.JSON(500, gin.H{"error": "Failed to save verification progress"})
		return false
	}
	return true
}

// StartVerification opens a fresh wizard session at the first step
func StartVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		session := verification.NewSession(uuid.NewString(), userId)
		if !saveSession(c, session) {
			return
		}

		c.JSON(201, session)
	}
}

// GetVerification returns the current wizard state
func GetVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := loadSession(c)
		if session == nil {
			return
		}
		c.JSON(200, session)
	}
}

// SetCustomerType records nationality and advances the wizard
func SetCustomerType() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := loadSession(c)
		if session == nil {
			return
		}

		var input struct {
			Nationality string `json:"nationality" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := session.SetCustomerType(input.Nationality); err != nil {
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}
		if !saveSession(c, session) {
			return
		}

		c.JSON(200, session)
	}
}

// UploadDocuments stores the renter's identity documents and advances the
// wizard. Multipart form, one or more files under "documents".
func UploadDocuments() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := loadSession(c)
		if session == nil {
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(400, gin.H{"error": "Multipart form required"})
			return
		}

		files := form.File["documents"]
		if len(files) == 0 {
			c.JSON(400, gin.H{"error": "At least one document is required"})
			return
		}

		var urls []string
		for _, file := range files {
			url, err := services.UploadDocument(file, "verification")
			if err != nil {
				c.JSON(500, gin.H{
					"error":   "Failed to upload document",
					"details": err.Error(),
				})
				return
			}
			urls = append(urls, url)
		}

		if err := session.AttachDocuments(urls); err != nil {
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}
		if !saveSession(c, session) {
			return
		}

		c.JSON(200, session)
	}
}

// VerifyAge checks the date of birth and, on success, completes the wizard
// and mints the one-shot token booking create requires.
func VerifyAge() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := loadSession(c)
		if session == nil {
			return
		}

		var input struct {
			DateOfBirth string `json:"dateOfBirth" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid date of birth"})
			return
		}

		if err := session.VerifyAge(dob, time.Now()); err != nil {
			if err == verification.ErrUnderage {
				c.JSON(403, gin.H{"error": err.Error()})
				return
			}
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}

		session.Token = uuid.NewString()
		if !saveSession(c, session) {
			return
		}

		c.JSON(200, gin.H{
			"step":              session.Step,
			"verificationToken": session.Token,
		})
	}
}

// StepBack rewinds the wizard one step
func StepBack() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := loadSession(c)
		if session == nil {
			return
		}

		if err := session.Back(); err != nil {
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}
		if !saveSession(c, session) {
			return
		}

		c.JSON(200, session)
	}
}
