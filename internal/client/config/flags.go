package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/invoicextractor/internal/flagx"
)

// parseFlags overlays cfg with -t, -o and -l from args. Other arguments are
// ignored so the JSON loader's -c/-config do not trip the parser.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-t", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "token cache file")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "base output directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
