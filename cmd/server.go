package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/eshaanmathakari/SimuLad/internal/config"
	"github.com/eshaanmathakari/SimuLad/internal/controller"
	"github.com/eshaanmathakari/SimuLad/internal/narrative"
	"github.com/eshaanmathakari/SimuLad/internal/repository"
	"github.com/eshaanmathakari/SimuLad/internal/routes"
	"github.com/eshaanmathakari/SimuLad/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	dataset, err := loadDataset(cfg)
	if err != nil {
		log.Fatalf("Error loading dataset: %v", err)
	}

	llmClient := narrative.NewClient(cfg.OllamaURL, cfg.OllamaTimeout)

	forecastService := service.NewForecastService(dataset)
	narrativeService := service.NewNarrativeService(llmClient)

	dataController := controller.NewDataController(forecastService)
	forecastController := controller.NewForecastController(forecastService, narrativeService)
	narrativeController := controller.NewNarrativeController(narrativeService)

	router := routes.SetupRouter(dataController, forecastController, narrativeController)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	log.Printf("Server is running on port %s...", cfg.Port)
	if err := http.ListenAndServe(cfg.ListenAddr(), handler); err != nil {
		log.Fatal("Error starting server:", err)
	}
}

// loadDataset reads the sensor table once at startup. The result is
// immutable and shared read-only by every request.
func loadDataset(cfg config.Config) (*repository.Dataset, error) {
	if cfg.InfluxEnabled() {
		source, err := repository.NewInfluxSource(cfg.InfluxDBURL, cfg.InfluxDBToken, cfg.InfluxDBOrg)
		if err != nil {
			return nil, err
		}
		defer source.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return source.Load(ctx, time.Unix(0, 0).UTC())
	}
	return repository.LoadCSV(cfg.DataFile)
}
