package config

import "os"

type Config struct {
	ListenAddr string
	APIURL     string
	LogLevel   string
	LogFormat  string
	LogFile    string
}

func Load() *Config {
	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8000"),
		APIURL:     getEnv("API_URL", "http://localhost:8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
		LogFile:    getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
