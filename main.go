package main

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/finanzas-app/backend/internal/advice"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title			Finanzas backend
// @description	The backend for finanzas, a personal finance tracker with a financial health score.
// @license.name	MIT
func main() {
	// Load configuration from a .env file if one exists
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the data directory
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect(filepath.Join(dataDir, "gorm.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The advice endpoints are only active with a configured API key,
	// everything else works without it
	var advisor advice.Advisor
	if _, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
		gemini, err := advice.NewGeminiAdvisor(context.Background())
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		advisor = gemini
	} else {
		log.Info().Msg("GEMINI_API_KEY is not set, advice generation is disabled")
	}

	apiURL, err := url.Parse(os.Getenv("API_URL"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(apiURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"), advisor)

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
