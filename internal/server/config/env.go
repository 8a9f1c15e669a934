package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields with values from environment variables.
// A .env file in the working directory is loaded first, so containerized
// and local runs can share the same variable names.
//
// Supported variables:
//
//	ENDPOINT_ADDR                    HTTP bind address (e.g., ":8080")
//	DATABASE_DSN                     PostgreSQL DSN
//	SECRET_KEY                       JWT HMAC secret key
//	ACCESS_TOKEN_VALIDITY_DURATION   Go duration string (e.g., "15m")
//	REFRESH_TOKEN_VALIDITY_DURATION  Go duration string (e.g., "168h")
//	S3_ROOT_USER / S3_ROOT_PASSWORD  object storage credentials
//	S3_BUCKET / S3_REGION / S3_BASE_ENDPOINT
//
// Unset variables leave the current value untouched. Malformed duration
// values panic so misconfiguration surfaces at startup.
func parseEnv(config *Config) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	config.EndpointAddr = getEnv("ENDPOINT_ADDR", config.EndpointAddr)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.AccessTokenValidityDuration = getEnvAsDuration("ACCESS_TOKEN_VALIDITY_DURATION", config.AccessTokenValidityDuration)
	config.RefreshTokenValidityDuration = getEnvAsDuration("REFRESH_TOKEN_VALIDITY_DURATION", config.RefreshTokenValidityDuration)
	config.S3RootUser = getEnv("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = getEnv("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = getEnv("S3_BUCKET", config.S3Bucket)
	config.S3Region = getEnv("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", config.S3BaseEndpoint)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
