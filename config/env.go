package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds runtime settings that are not part of the session parameters
type Env struct {
	OutputDir    string
	RowGroupSize int
	Tracker      string
	RecordPath   string
	RunDB        string
}

// LoadEnv reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func LoadEnv() *Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("can't load .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the settings from the process environment only
func FromEnv() *Env {
	return &Env{
		OutputDir:    getEnv("DROPTRACKER_OUTPUT_DIR", "."),
		RowGroupSize: getEnvAsInt("DROPTRACKER_ROW_GROUP_SIZE", 3),
		Tracker:      strings.ToLower(getEnv("DROPTRACKER_TRACKER", "csrt")),
		RecordPath:   getEnv("DROPTRACKER_RECORD", ""),
		RunDB:        getEnv("DROPTRACKER_RUN_DB", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}
