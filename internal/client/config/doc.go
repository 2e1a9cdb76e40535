// Package config loads runtime configuration for the invoice extractor.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (INVOICES_*), read with cleanenv.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-t string   token cache file
//	-o string   base output directory for invoices
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "base_url": "https://node.bolt.eu/business-portal",
//	  "api_version": "BP.11.61",
//	  "token_file": "token.json",
//	  "output_dir": ".",
//	  "page_limit": 100,
//	  "server_date_filter": true,
//	  "progress_every": 16,
//	  "log_level": "info",
//	  "s3_bucket": "invoices",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/"
//	}
//
// Fields absent from the file keep their previous value.
package config
