package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with INVOICES_* environment variables. Unset
// variables leave the field untouched.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
