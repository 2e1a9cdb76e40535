package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/invoicextractor/internal/buildinfo"
	"github.com/dmitrijs2005/invoicextractor/internal/client/cli"
	"github.com/dmitrijs2005/invoicextractor/internal/client/config"
	"github.com/dmitrijs2005/invoicextractor/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
