package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/invoicextractor/internal/flagx"
)

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Nothing happens when neither flag is given; read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		panic(err)
	}
}
