package config

import "os"

const (
	appNameVar     = "APP_NAME"
	apiBaseURLVar  = "API_BASE_URL"
	storagePathVar = "STORAGE_PATH"
	redisAddrVar   = "REDIS_ADDR"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Storefront Session")
}

// GetAPIBaseURL returns the base URL of the storefront backend
// (e.g. "https://api.nepdora.com"). Every API call is made against it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8000")
}

// GetStoragePath returns the file used for durable credential storage when
// no redis address is configured.
func (EnvVars) GetStoragePath() string {
	return GetEnv(storagePathVar, "./data/session.json")
}

// GetRedisAddr returns the redis address for shared credential storage.
// Empty means file-backed storage is used instead.
func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
