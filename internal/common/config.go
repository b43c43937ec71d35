package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR   OCRConfig
	Model ModelConfig
	Parse ParseConfig
}

// OCRConfig holds text-extraction configuration
type OCRConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	TessdataDir   string
	DPI           int
	MaxPages      int
	Timeout       time.Duration
}

// ModelConfig holds classifier configuration
type ModelConfig struct {
	ArtifactPath string
	MaxFeatures  int
	PhoneRegion  string
}

// ParseConfig holds orchestrator configuration
type ParseConfig struct {
	PreviewChars int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
		},
		Model: ModelConfig{
			ArtifactPath: getEnv("MODEL_PATH", "models/document_classifier.gob"),
			MaxFeatures:  getEnvAsInt("MODEL_MAX_FEATURES", 1000),
			PhoneRegion:  getEnv("PHONE_REGION", "US"),
		},
		Parse: ParseConfig{
			PreviewChars: getEnvAsInt("PARSE_PREVIEW_CHARS", 1000),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Model.MaxFeatures <= 0 {
		return NewAppError("CONFIG_ERROR", "MODEL_MAX_FEATURES must be positive", ErrInvalidInput)
	}
	if c.Parse.PreviewChars <= 0 {
		return NewAppError("CONFIG_ERROR", "PARSE_PREVIEW_CHARS must be positive", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	return nil
}
