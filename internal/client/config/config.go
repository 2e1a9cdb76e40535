package config

import "os"

// Config holds runtime settings for the extractor.
//
// ServerDateFilter selects how a month is narrowed down: when true the
// year/month are sent to the portal, when false every page is requested
// unfiltered and rides are filtered locally against the month window.
//
// ProgressEvery is the download progress cadence in received chunks.
//
// The S3* fields configure the optional invoice archive; it is disabled while
// S3Bucket is empty.
type Config struct {
	BaseURL          string `json:"base_url" env:"INVOICES_BASE_URL"`
	APIVersion       string `json:"api_version" env:"INVOICES_API_VERSION"`
	DeviceName       string `json:"device_name" env:"INVOICES_DEVICE_NAME"`
	DeviceOSVersion  string `json:"device_os_version" env:"INVOICES_DEVICE_OS_VERSION"`
	TokenFile        string `json:"token_file" env:"INVOICES_TOKEN_FILE"`
	OutputDir        string `json:"output_dir" env:"INVOICES_OUTPUT_DIR"`
	PageLimit        int    `json:"page_limit" env:"INVOICES_PAGE_LIMIT"`
	ServerDateFilter bool   `json:"server_date_filter" env:"INVOICES_SERVER_DATE_FILTER"`
	ProgressEvery    int    `json:"progress_every" env:"INVOICES_PROGRESS_EVERY"`
	LogLevel         string `json:"log_level" env:"INVOICES_LOG_LEVEL"`

	S3Bucket       string `json:"s3_bucket" env:"INVOICES_S3_BUCKET"`
	S3Region       string `json:"s3_region" env:"INVOICES_S3_REGION"`
	S3BaseEndpoint string `json:"s3_base_endpoint" env:"INVOICES_S3_BASE_ENDPOINT"`
	S3AccessKey    string `json:"s3_access_key" env:"INVOICES_S3_ACCESS_KEY"`
	S3SecretKey    string `json:"s3_secret_key" env:"INVOICES_S3_SECRET_KEY"`
	S3Prefix       string `json:"s3_prefix" env:"INVOICES_S3_PREFIX"`
}

// LoadDefaults populates c with the values the portal web app uses.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://node.bolt.eu/business-portal"
	c.APIVersion = "BP.11.61"
	c.DeviceName = "Chrome (Windows)"
	c.DeviceOSVersion = "106.0.0.0"
	c.TokenFile = "token.json"
	c.OutputDir = "."
	c.PageLimit = 100
	c.ServerDateFilter = true
	c.ProgressEvery = 16
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
	c.S3Prefix = "invoices"
}

// ArchiveEnabled reports whether downloaded invoices are mirrored to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config from defaults, then the JSON file, the
// environment and finally the command-line flags. It panics on a
// malformed source.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
