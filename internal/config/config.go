package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                  string
	GoogleCredentialsFile string
	PerplexityAPIKey      string
	PerplexityBaseURL     string
	PerplexityModel       string
	LanguageCode          string
	SampleRateHertz       int
	AudioChannelCount     int
	MaxUploadBytes        int64
	RequestTimeout        time.Duration
}

func LoadConfig() (Config, error) {
	cfg := Config{}

	cfg.Port = envOrDefault("PORT", "3000")
	cfg.GoogleCredentialsFile = envOrDefault("GOOGLE_APPLICATION_CREDENTIALS", "myjson.json")
	cfg.PerplexityAPIKey = os.Getenv("PERPLEXITY_API_KEY")
	cfg.PerplexityBaseURL = envOrDefault("PERPLEXITY_BASE_URL", "https://api.perplexity.ai")
	cfg.PerplexityModel = envOrDefault("PERPLEXITY_MODEL", "sonar-pro")
	cfg.LanguageCode = envOrDefault("LANGUAGE_CODE", "en-US")

	sampleRate, err := parseIntEnv("SAMPLE_RATE_HERTZ", 44100)
	if err != nil {
		return Config{}, fmt.Errorf("parse SAMPLE_RATE_HERTZ: %w", err)
	}
	cfg.SampleRateHertz = int(sampleRate)

	channels, err := parseIntEnv("AUDIO_CHANNELS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIO_CHANNELS: %w", err)
	}
	cfg.AudioChannelCount = int(channels)

	maxUploadMB, err := parseIntEnv("MAX_UPLOAD_MB", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_UPLOAD_MB: %w", err)
	}
	cfg.MaxUploadBytes = maxUploadMB * 1024 * 1024

	timeoutSeconds, err := parseIntEnv("REQUEST_TIMEOUT_SECONDS", 120)
	if err != nil {
		return Config{}, fmt.Errorf("parse REQUEST_TIMEOUT_SECONDS: %w", err)
	}
	cfg.RequestTimeout = time.Duration(timeoutSeconds) * time.Second

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
