package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type GeneralConfig struct {
	Env      string
	LogLevel string
	Port     int
}

type FetchConfig struct {
	// DropsAPIURL is the endpoint returning the active campaign snapshot.
	DropsAPIURL string
	// Timeout bounds the single fetch call.
	Timeout time.Duration
}

type ListingConfig struct {
	// WindowDays is the size of the recent-campaigns window.
	WindowDays int
}

type PublishConfig struct {
	// OutputPath is where the one-shot run writes the rendered listing.
	// An empty value means standard output.
	OutputPath string
}

type appConfig struct {
	GeneralConfig GeneralConfig
	FetchConfig   FetchConfig
	ListingConfig ListingConfig
	PublishConfig PublishConfig
}

// LoadConfigs loads the configurations from the environment variables
func LoadConfigs() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env files: %v", err)
	}

	loadGeneralConfigs()
	loadFetchConfigs()
	loadListingConfigs()
	loadPublishConfigs()
}

var AppConfigInstance appConfig

func loadGeneralConfigs() {
	AppConfigInstance.GeneralConfig.Env = getEnv("APP_ENV", "dev")
	AppConfigInstance.GeneralConfig.LogLevel = getEnv("LOG_LEVEL", "info")
	AppConfigInstance.GeneralConfig.Port = getEnvInt("PORT", 8080)
}

func loadFetchConfigs() {
	AppConfigInstance.FetchConfig.DropsAPIURL = getEnv("DROPS_API_URL", "https://twitch-drops-api.sunkwi.com/drops")
	AppConfigInstance.FetchConfig.Timeout = getEnvDuration("FETCH_TIMEOUT", 30*time.Second)
}

func loadListingConfigs() {
	AppConfigInstance.ListingConfig.WindowDays = getEnvInt("RECENT_WINDOW_DAYS", 7)
}

func loadPublishConfigs() {
	AppConfigInstance.PublishConfig.OutputPath = getEnv("OUTPUT_PATH", "DROPS.md")
}

// getEnv returns the environment variable value if it exists, otherwise returns the fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns the environment variable value as int if it exists, otherwise returns the fallback value
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration returns the environment variable value as duration if it exists, otherwise returns the fallback value
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
