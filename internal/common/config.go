package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/invoice-ocr/constants"
)

// Config holds all application configuration
type Config struct {
	OCR    OCRConfig    `yaml:"ocr"`
	PDF    PDFConfig    `yaml:"pdf"`
	Azure  AzureConfig  `yaml:"azure"`
	AWS    AWSConfig    `yaml:"aws"`
	Report ReportConfig `yaml:"report"`
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Engine        string        `yaml:"engine"` // tesseract | gosseract | azure
	Tesseract     string        `yaml:"tesseract_bin"`
	Lang          string        `yaml:"lang"`
	TessdataDir   string        `yaml:"tessdata_dir"`
	PSM           int           `yaml:"psm"`
	OEM           int           `yaml:"oem"`
	Timeout       time.Duration `yaml:"timeout"`
	Preprocess    bool          `yaml:"preprocess"`
	Normalize     bool          `yaml:"normalize"`
	TSVConfidence bool          `yaml:"tsv_confidence"`
}

// PDFConfig holds poppler tool configuration for PDF invoices
type PDFConfig struct {
	Pdftotext string `yaml:"pdftotext_bin"`
	Pdftoppm  string `yaml:"pdftoppm_bin"`
	DPI       int    `yaml:"dpi"`
	MaxPages  int    `yaml:"max_pages"`
}

// AzureConfig holds Azure Computer Vision credentials
type AzureConfig struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
}

// AWSConfig holds settings for s3:// image references
type AWSConfig struct {
	Region string `yaml:"region"`
}

// ReportConfig holds report output defaults
type ReportConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "" = infer from Path extension
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Engine:    "tesseract",
			Tesseract: "tesseract",
			Lang:      "eng",
		},
		PDF: PDFConfig{
			Pdftotext: "pdftotext",
			Pdftoppm:  "pdftoppm",
			DPI:       300,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Report: ReportConfig{
			Path: constants.DefaultReportPath,
		},
	}
}

// LoadConfig builds the configuration from defaults, then the optional YAML
// file at path, then environment variables (a .env file in the working
// directory is loaded first and never overrides variables already set).
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewAppError(string(constants.KindConfig), "load .env", err)
	}

	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, NewAppError(string(constants.KindConfig), "read config file", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, NewAppError(string(constants.KindConfig), fmt.Sprintf("parse config file %s", path), err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.OCR.Engine = getEnv("OCR_ENGINE", c.OCR.Engine)
	c.OCR.Tesseract = getEnv("TESSERACT_BIN", c.OCR.Tesseract)
	c.OCR.Lang = getEnv("TESSERACT_LANG", c.OCR.Lang)
	c.OCR.TessdataDir = getEnv("TESSDATA_PREFIX", c.OCR.TessdataDir)
	c.OCR.PSM = getEnvAsInt("TESSERACT_PSM", c.OCR.PSM)
	c.OCR.OEM = getEnvAsInt("TESSERACT_OEM", c.OCR.OEM)
	c.OCR.Timeout = getEnvAsDuration("OCR_TIMEOUT", c.OCR.Timeout)
	c.OCR.Preprocess = getEnvAsBool("OCR_PREPROCESS", c.OCR.Preprocess)
	c.OCR.Normalize = getEnvAsBool("OCR_NORMALIZE", c.OCR.Normalize)
	c.OCR.TSVConfidence = getEnvAsBool("OCR_TSV_CONFIDENCE", c.OCR.TSVConfidence)

	c.PDF.Pdftotext = getEnv("PDFTOTEXT_BIN", c.PDF.Pdftotext)
	c.PDF.Pdftoppm = getEnv("PDFTOPPM_BIN", c.PDF.Pdftoppm)
	c.PDF.DPI = getEnvAsInt("PDF_DPI", c.PDF.DPI)
	c.PDF.MaxPages = getEnvAsInt("PDF_MAX_PAGES", c.PDF.MaxPages)

	c.Azure.Endpoint = getEnv("AZURE_VISION_ENDPOINT", c.Azure.Endpoint)
	c.Azure.Key = getEnv("AZURE_VISION_KEY", c.Azure.Key)

	c.AWS.Region = getEnv("AWS_REGION", c.AWS.Region)

	c.Report.Path = getEnv("REPORT_PATH", c.Report.Path)
	c.Report.Format = getEnv("REPORT_FORMAT", c.Report.Format)
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
	switch c.OCR.Engine {
	case "tesseract", "gosseract":
	case "azure":
		if c.Azure.Endpoint == "" || c.Azure.Key == "" {
			return NewAppError(string(constants.KindConfig), "AZURE_VISION_ENDPOINT and AZURE_VISION_KEY are required for the azure engine", ErrInvalidInput)
		}
	default:
		return NewAppError(string(constants.KindConfig), fmt.Sprintf("unknown OCR engine %q", c.OCR.Engine), ErrInvalidInput)
	}
	if c.OCR.Lang == "" {
		return NewAppError(string(constants.KindConfig), "TESSERACT_LANG is required", ErrInvalidInput)
	}
	if c.OCR.Timeout < 0 {
		return NewAppError(string(constants.KindConfig), "OCR_TIMEOUT must not be negative", ErrInvalidInput)
	}
	if _, ok := constants.ParseReportFormat(c.Report.Format); c.Report.Format != "" && !ok {
		return NewAppError(string(constants.KindConfig), fmt.Sprintf("unknown report format %q", c.Report.Format), ErrInvalidInput)
	}
	if c.Report.Path == "" {
		return NewAppError(string(constants.KindConfig), "REPORT_PATH is required", ErrInvalidInput)
	}
	return nil
}
