package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"hospital-services/internal/config"
	"hospital-services/internal/metrics"
	"hospital-services/internal/models"
	"hospital-services/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig("appointment")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN}, &models.Appointment{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// Metrics registry for the remote existence checker
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupAppointmentRoutes(router, db, cfg, collector, registry)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Appointment service running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
