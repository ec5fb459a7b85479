package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestBooking(t *testing.T, db *gorm.DB, bikeID uint, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		UserID:         1,
		BikeID:         bikeID,
		StartDate:      start,
		EndDate:        end,
		PickupLocation: "Udupi",
		Status:         status,
		PaymentStatus:  models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestHasOverlap(t *testing.T) {
	db := setupTestDB(t)
	bike := createTestBike(t, db)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	createTestBooking(t, db, bike.ID, base, base.Add(6*time.Hour), models.BookingStatusConfirmed)

	t.Run("detects intersecting windows", func(t *testing.T) {
		conflict, err := HasOverlap(db, bike.ID, base.Add(3*time.Hour), base.Add(9*time.Hour), 0)
		require.NoError(t, err)
		assert.True(t, conflict)

		conflict, err = HasOverlap(db, bike.ID, base.Add(-2*time.Hour), base.Add(2*time.Hour), 0)
		require.NoError(t, err)
		assert.True(t, conflict)

		// Candidate fully contains the existing booking
		conflict, err = HasOverlap(db, bike.ID, base.Add(-time.Hour), base.Add(8*time.Hour), 0)
		require.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("back-to-back windows do not conflict", func(t *testing.T) {
		conflict, err := HasOverlap(db, bike.ID, base.Add(6*time.Hour), base.Add(9*time.Hour), 0)
		require.NoError(t, err)
		assert.False(t, conflict)

		conflict, err = HasOverlap(db, bike.ID, base.Add(-3*time.Hour), base, 0)
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("cancelled bookings release the window", func(t *testing.T) {
		other := createTestBike(t, db)
		createTestBooking(t, db, other.ID, base, base.Add(6*time.Hour), models.BookingStatusCancelled)

		conflict, err := HasOverlap(db, other.ID, base, base.Add(6*time.Hour), 0)
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("excluded booking does not conflict with itself", func(t *testing.T) {
		other := createTestBike(t, db)
		existing := createTestBooking(t, db, other.ID, base, base.Add(6*time.Hour), models.BookingStatusConfirmed)

		conflict, err := HasOverlap(db, other.ID, base.Add(time.Hour), base.Add(7*time.Hour), existing.ID)
		require.NoError(t, err)
		assert.False(t, conflict)
	})
}

func TestEvaluateAvailability(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no bookings means available", func(t *testing.T) {
		bike := createTestBike(t, db)

		snapshot, err := EvaluateAvailability(db, bike.ID, now)
		require.NoError(t, err)
		assert.True(t, snapshot.Available)
		assert.Nil(t, snapshot.NextAvailableAt)
	})

	t.Run("covering booking blocks and reports release time", func(t *testing.T) {
		bike := createTestBike(t, db)
		end := now.Add(5 * time.Hour)
		createTestBooking(t, db, bike.ID, now.Add(-2*time.Hour), end, models.BookingStatusActive)

		snapshot, err := EvaluateAvailability(db, bike.ID, now)
		require.NoError(t, err)
		assert.False(t, snapshot.Available)
		require.NotNil(t, snapshot.NextAvailableAt)
		assert.True(t, end.Equal(*snapshot.NextAvailableAt))
	})

	t.Run("future booking does not block now", func(t *testing.T) {
		bike := createTestBike(t, db)
		createTestBooking(t, db, bike.ID, now.Add(48*time.Hour), now.Add(54*time.Hour), models.BookingStatusConfirmed)

		snapshot, err := EvaluateAvailability(db, bike.ID, now)
		require.NoError(t, err)
		assert.True(t, snapshot.Available)
	})
}

func TestGetBikeAvailabilityCandidateWindow(t *testing.T) {
	db := setupTestDB(t)
	bike := createTestBike(t, db)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	createTestBooking(t, db, bike.ID, base, base.Add(6*time.Hour), models.BookingStatusConfirmed)

	r := gin.New()
	r.GET("/bikes/:id/availability", GetBikeAvailability(db))

	get := func(start, end time.Time) *httptest.ResponseRecorder {
		url := fmt.Sprintf("/bikes/%d/availability?start=%s&end=%s",
			bike.ID,
			start.Format(time.RFC3339),
			end.Format(time.RFC3339),
		)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		r.ServeHTTP(w, req)
		return w
	}

	w := get(base.Add(2*time.Hour), base.Add(4*time.Hour))
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"available": false}`, w.Body.String())

	w = get(base.Add(6*time.Hour), base.Add(9*time.Hour))
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"available": true}`, w.Body.String())

	// Inverted window
	w = get(base.Add(4*time.Hour), base.Add(2*time.Hour))
	assert.Equal(t, 400, w.Code)
}
