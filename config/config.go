package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv loads a local .env file if one exists. In deployed environments
// variables come from the process environment directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}
}
