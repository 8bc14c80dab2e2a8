package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort      int
	RedisHost    string
	RedisPort    int
	RedisEnabled bool
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	appPort, err := strconv.Atoi(os.Getenv("APP_PORT"))
	if err != nil {
		appPort = 3004
	}

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	redisEnabled, err := strconv.ParseBool(os.Getenv("REDIS_ENABLED"))
	if err != nil {
		redisEnabled = false
	}

	return Config{
		AppPort:      appPort,
		RedisHost:    redisHost,
		RedisPort:    redisPort,
		RedisEnabled: redisEnabled,
	}
}
