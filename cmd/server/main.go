package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/dhamma-seva/registration-api/internal/auth"
	"github.com/dhamma-seva/registration-api/internal/config"
	"github.com/dhamma-seva/registration-api/internal/database"
	"github.com/dhamma-seva/registration-api/internal/handlers"
	"github.com/dhamma-seva/registration-api/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// Connect to Database
	db := database.Connect(cfg)

	if err := seedAdmin(db, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	h := handlers.Handlers{
		Intake:       handlers.NewIntakeHandler(db, log),
		Allocation:   handlers.NewAllocationHandler(db, log),
		Import:       handlers.NewImportHandler(db, log),
		Rooms:        handlers.NewRoomHandler(db, cfg, log),
		Stats:        handlers.NewStatsHandler(db),
		Courses:      handlers.NewCourseHandler(db, log),
		Participants: handlers.NewParticipantHandler(db, log),
		Expenses:     handlers.NewExpenseHandler(db),
	}

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, authHandler, h)

	// Start Server
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedAdmin creates the initial staff account when ADMIN_PASSWORD is set and
// the user does not already exist.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.StaffUser{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	return db.Create(&models.StaffUser{Username: cfg.AdminUsername, PasswordHash: hash}).Error
}
