package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's environment-driven settings.
type Config struct {
	DataFile      string
	Port          string
	OllamaURL     string
	OllamaTimeout time.Duration

	// Optional read-only InfluxDB source; all three must be set together.
	InfluxDBURL   string
	InfluxDBToken string
	InfluxDBOrg   string

	CORSOrigins []string
}

// LoadConfig loads the configuration from environment variables
// (optionally a .env file).
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	cfg := Config{
		DataFile:      "merged_data.csv",
		Port:          "8081",
		OllamaURL:     "http://localhost:11434",
		OllamaTimeout: 120 * time.Second,
		CORSOrigins:   []string{"http://localhost:5173"},
	}

	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		cfg.OllamaURL = v
	}
	if v := os.Getenv("OLLAMA_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid OLLAMA_TIMEOUT: %s", v)
		}
		cfg.OllamaTimeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}

	cfg.InfluxDBURL = os.Getenv("INFLUXDB_URL")
	cfg.InfluxDBToken = os.Getenv("INFLUXDB_TOKEN")
	cfg.InfluxDBOrg = os.Getenv("INFLUXDB_ORG")
	if cfg.InfluxDBURL != "" && (cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "") {
		return Config{}, fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_URL, INFLUXDB_TOKEN, and INFLUXDB_ORG together")
	}

	return cfg, nil
}

// InfluxEnabled reports whether the InfluxDB source is configured.
func (c Config) InfluxEnabled() bool {
	return c.InfluxDBURL != ""
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%s", c.Port)
}
