package config

type Config interface {
	EnvConfig
	HostConfig
}

type EnvConfig interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetStoragePath() string
	GetRedisAddr() string
	GetEnv() string
}

type HostConfig interface {
	GetLocalHostSuffix() string
	GetProductionHostSuffix() string
}

type mainConfig struct {
	EnvVars
	Hosts
}

func New() Config {
	return mainConfig{}
}
