package config

import (
	"errors"
	"strings"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr           string
	AllowedOrigins       []string
	UpstreamBaseURL      string
	UpstreamAPIKey       string
	TranscriptionModel   string
	RequestTimeout       time.Duration
	TranscriptionTimeout time.Duration
	MaxUploadBytes       int64
	TurnGapSeconds       float64
	LogLevel             string
}

type envConfig struct {
	ListenAddr string `env:"LISTEN_ADDR"`
	// Port is honored when LISTEN_ADDR is unset, for platforms that
	// inject PORT.
	Port                        string  `env:"PORT"`
	AllowedOrigins              string  `env:"ALLOWED_ORIGINS" envDefault:"*"`
	UpstreamBaseURL             string  `env:"UPSTREAM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	UpstreamAPIKey              string  `env:"UPSTREAM_API_KEY"`
	TranscriptionModel          string  `env:"TRANSCRIPTION_MODEL" envDefault:"whisper-large-v3"`
	RequestTimeoutSeconds       int     `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"300"`
	TranscriptionTimeoutSeconds int     `env:"TRANSCRIPTION_TIMEOUT_SECONDS" envDefault:"240"`
	MaxUploadBytes              int64   `env:"MAX_UPLOAD_BYTES" envDefault:"26214400"`
	TurnGapSeconds              float64 `env:"TURN_GAP_SECONDS" envDefault:"1.5"`
	LogLevel                    string  `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	var raw envConfig
	if err := cenv.Parse(&raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:           listenAddr(raw.ListenAddr, raw.Port),
		AllowedOrigins:       splitOrigins(raw.AllowedOrigins),
		UpstreamBaseURL:      strings.TrimRight(strings.TrimSpace(raw.UpstreamBaseURL), "/"),
		UpstreamAPIKey:       strings.TrimSpace(raw.UpstreamAPIKey),
		TranscriptionModel:   strings.TrimSpace(raw.TranscriptionModel),
		RequestTimeout:       time.Duration(raw.RequestTimeoutSeconds) * time.Second,
		TranscriptionTimeout: time.Duration(raw.TranscriptionTimeoutSeconds) * time.Second,
		MaxUploadBytes:       raw.MaxUploadBytes,
		TurnGapSeconds:       raw.TurnGapSeconds,
		LogLevel:             strings.ToLower(strings.TrimSpace(raw.LogLevel)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func listenAddr(addr, port string) string {
	addr = strings.TrimSpace(addr)
	if addr != "" {
		return addr
	}
	if port = strings.TrimSpace(port); port != "" {
		return ":" + port
	}
	return ":8000"
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	if len(c.AllowedOrigins) == 0 {
		return errors.New("ALLOWED_ORIGINS must not be empty")
	}
	if c.UpstreamBaseURL == "" {
		return errors.New("UPSTREAM_BASE_URL must not be empty")
	}
	if c.TranscriptionModel == "" {
		return errors.New("TRANSCRIPTION_MODEL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be > 0")
	}
	if c.TranscriptionTimeout <= 0 {
		return errors.New("TRANSCRIPTION_TIMEOUT_SECONDS must be > 0")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be > 0")
	}
	if c.TurnGapSeconds <= 0 {
		return errors.New("TURN_GAP_SECONDS must be > 0")
	}
	return nil
}
