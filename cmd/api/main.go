package main

import (
	"os"
	"time"

	"github.com/coastalrides/bikerental-backend/internal/database"
	"github.com/coastalrides/bikerental-backend/internal/handlers"
	"github.com/coastalrides/bikerental-backend/internal/logging"
	"github.com/coastalrides/bikerental-backend/internal/metrics"
	"github.com/coastalrides/bikerental-backend/internal/middleware"
	"github.com/coastalrides/bikerental-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment")
	}

	log.Logger = logging.New()
	metrics.Register()

	db, err := database.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database instance")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := services.InitRedis(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Redis")
	}
	locker := services.NewBookingLocker()

	if err := services.InitStorage(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	rz := services.NewRazorpayService()

	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.Static("/uploads", "/app/uploads")
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		bikes := api.Group("/bikes")
		{
			bikes.GET("", handlers.GetBikes(db))
			bikes.GET("/:id", handlers.GetBike(db))
			bikes.GET("/:id/availability", handlers.GetBikeAvailability(db))
			bikes.GET("/availability", handlers.GetAllBikesAvailability(db))
		}

		api.GET("/pricing/quote", handlers.GetRentalQuote())

		// Gateway callbacks are authenticated by signature, not by JWT
		api.POST("/webhooks/razorpay", handlers.RazorpayWebhook(db, rz, hub))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			verif := protected.Group("/verification")
			{
				verif.POST("/start", handlers.StartVerification())
				verif.GET("/:id", handlers.GetVerification())
				verif.POST("/:id/customer-type", handlers.SetCustomerType())
				verif.POST("/:id/documents", handlers.UploadDocuments())
				verif.POST("/:id/age", handlers.VerifyAge())
				verif.POST("/:id/back", handlers.StepBack())
			}

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, locker, hub))
				bookings.GET("", handlers.GetBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.PUT("/:id", handlers.UpdateBooking(db, locker, hub))
				bookings.POST("/:id/cancel", handlers.CancelBooking(db, hub))
			}

			payments := protected.Group("/payments")
			{
				payments.POST("/order", handlers.CreatePaymentOrder(db, rz))
				payments.POST("/verify", handlers.VerifyPayment(db, rz, hub))
				payments.GET("", handlers.GetPayments(db))
			}

			// Back-office routes
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware(db))
			{
				admin.GET("/dashboard", handlers.GetDashboardStats(db))
				admin.GET("/payments", handlers.GetPaymentActivity(db))
				admin.GET("/bookings", handlers.GetAllBookings(db))
				admin.POST("/bikes", handlers.CreateBike(db))
				admin.PUT("/bikes/:id", handlers.UpdateBike(db))
				admin.DELETE("/bikes/:id", handlers.DeleteBike(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("starting server")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
