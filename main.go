package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sudipjangam/tasty-bite-pos/config"
	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/notifier"
	"github.com/sudipjangam/tasty-bite-pos/router"
	"github.com/sudipjangam/tasty-bite-pos/services"
	"github.com/sudipjangam/tasty-bite-pos/utils"
	"gorm.io/gorm"
)

const (
	sessionTTL    = 2 * time.Hour
	sweepInterval = 5 * time.Minute
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	hub := notifier.NewHub()

	sessions := services.NewSessionManager(sessionTTL)
	sessions.StartSweeper(sweepInterval)
	defer sessions.StopSweeper()

	r := router.SetupRouter(db, sessions, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.MenuCategory{},
		&models.Menu{},
		&models.Promotion{},
		&models.Room{},
		&models.Reservation{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
