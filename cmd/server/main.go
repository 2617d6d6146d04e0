package main

import (
	"log"
	"os"
	"strings"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/handlers"
	"tailorshop/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// allowedOrigins is the React dev server plus anything listed in
// FRONTEND_ORIGINS (comma separated).
func allowedOrigins() []string {
	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	for _, o := range strings.Split(os.Getenv("FRONTEND_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()

	// Schema sync and seeding happen here, before the server accepts
	// traffic, so the first inbound request never races a migration.
	if err := database.EnsureSchema(); err != nil {
		log.Fatal("Schema setup failed:", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)
	r.POST("/auth/login", handlers.Login)

	// Only opens if we explicitly allow it in .env
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/auth/register", handlers.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	}

	// Everything below needs a bearer token.
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/customers", handlers.GetCustomers)
		api.POST("/customers", handlers.AddCustomer)
		api.PUT("/customers/:id", handlers.UpdateCustomer)
		api.DELETE("/customers/:id", handlers.DeleteCustomer)

		api.GET("/orders", handlers.GetOrders)
		api.POST("/orders", handlers.AddOrder)
		api.PUT("/orders/:id", handlers.UpdateOrder)
		api.DELETE("/orders/:id", handlers.DeleteOrder)

		api.GET("/measurements", handlers.GetMeasurements)
		api.POST("/measurements", handlers.AddMeasurement)
		api.PUT("/measurements/:id", handlers.UpdateMeasurement)
		api.DELETE("/measurements/:id", handlers.DeleteMeasurement)

		api.GET("/settings", handlers.GetSettings)
		// Shop identity and tax config are admin-only.
		api.PUT("/settings", middleware.RequireRole("admin"), handlers.UpdateSettings)

		api.GET("/billing/summary", handlers.GetBillingSummary)
		api.GET("/billing/invoice/:id", handlers.GetInvoice)
		api.POST("/billing/invoices", handlers.BatchInvoices)

		api.GET("/dashboard", handlers.GetDashboard)

		api.POST("/assistant", handlers.AskAssistant)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Println("🚀 Server starting on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
