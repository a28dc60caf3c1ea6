package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	Extract  ExtractConfig
	Fields   FieldsConfig
	Export   ExportConfig
}

// DatabaseConfig holds the results-store configuration.
type DatabaseConfig struct {
	Path string // sqlite file path; empty means in-memory
}

// OCRConfig holds OCR-related configuration.
type OCRConfig struct {
	Tesseract   string // binary name or absolute path
	Pdftoppm    string // binary name or absolute path
	Languages   string // tesseract language spec, e.g. "por+eng"
	TessdataDir string
	DPI         int  // rasterization DPI for scanned PDF pages
	PSM         int  // tesseract page segmentation mode; 0 = engine default
	Enhance     bool // contrast/sharpen preprocessing before OCR
}

// ExtractConfig holds text-acquisition configuration.
type ExtractConfig struct {
	MinTextLen int // embedded page text below this length triggers OCR
	MaxPages   int // 0 = no limit
}

// FieldsConfig holds field-extraction configuration.
type FieldsConfig struct {
	PatternsPath      string // optional JSON pattern file overriding the built-in rules
	MinRegistroDigits int
	MinGuiaDigits     int
}

// ExportConfig holds export configuration.
type ExportConfig struct {
	CSVWithBOM bool
	SheetName  string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("GUIAS_DB_PATH", ""),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("GUIAS_TESSERACT", "tesseract"),
			Pdftoppm:    getEnv("GUIAS_PDFTOPPM", "pdftoppm"),
			Languages:   getEnv("GUIAS_OCR_LANGS", "por+eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			DPI:         getEnvAsInt("GUIAS_OCR_DPI", 300),
			PSM:         getEnvAsInt("GUIAS_OCR_PSM", 0),
			Enhance:     getEnvAsBool("GUIAS_OCR_ENHANCE", true),
		},
		Extract: ExtractConfig{
			MinTextLen: getEnvAsInt("GUIAS_MIN_TEXT_LEN", 50),
			MaxPages:   getEnvAsInt("GUIAS_MAX_PAGES", 0),
		},
		Fields: FieldsConfig{
			PatternsPath:      getEnv("GUIAS_PATTERNS_PATH", ""),
			MinRegistroDigits: getEnvAsInt("GUIAS_MIN_REGISTRO_DIGITS", 6),
			MinGuiaDigits:     getEnvAsInt("GUIAS_MIN_GUIA_DIGITS", 6),
		},
		Export: ExportConfig{
			CSVWithBOM: getEnvAsBool("GUIAS_CSV_BOM", true),
			SheetName:  getEnv("GUIAS_SHEET_NAME", "Dados Extraídos"),
		},
	}
}

// Helper functions for environment variable parsing.
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.OCR.Tesseract == "" {
		return NewAppError("CONFIG_ERROR", "GUIAS_TESSERACT must not be empty", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "GUIAS_OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.Extract.MinTextLen < 0 {
		return NewAppError("CONFIG_ERROR", "GUIAS_MIN_TEXT_LEN must not be negative", ErrInvalidInput)
	}
	if c.Fields.MinRegistroDigits < 4 || c.Fields.MinRegistroDigits > 10 {
		return NewAppError("CONFIG_ERROR", "GUIAS_MIN_REGISTRO_DIGITS must be between 4 and 10", ErrInvalidInput)
	}
	if c.Fields.MinGuiaDigits < 4 || c.Fields.MinGuiaDigits > 10 {
		return NewAppError("CONFIG_ERROR", "GUIAS_MIN_GUIA_DIGITS must be between 4 and 10", ErrInvalidInput)
	}
	return nil
}
