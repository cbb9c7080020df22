package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	FirebaseCredentialsPath string
	AWSRegion               string
	AWSAccessKeyID          string
	AWSSecretKey            string
	AWSEndpointURL          string
	AssetBucket             string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first so its values are visible below;
// variables already set in the process environment take precedence.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		AWSRegion:               getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:          getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:            getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointURL:          getEnv("AWS_ENDPOINT_URL", ""),
		AssetBucket:             getEnv("ASSET_BUCKET", "loopline-assets"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
