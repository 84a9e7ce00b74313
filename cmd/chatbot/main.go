package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"hospital-services/internal/config"
	"hospital-services/internal/routes"
	"hospital-services/internal/triage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig("chatbot")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// The triage model is read once at startup and never mutated afterwards.
	model, err := triage.Load(cfg.TriageDataDir)
	if err != nil {
		log.Fatalf("Error loading triage data: %v", err)
	}
	engine := triage.NewEngine(model)

	registry := prometheus.NewRegistry()

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupChatbotRoutes(router, engine, registry)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Chatbot service running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
