package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/invoicextractor/internal/client/archive"
	"github.com/dmitrijs2005/invoicextractor/internal/client/client"
	"github.com/dmitrijs2005/invoicextractor/internal/client/config"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/invoicextractor/internal/client/services"
	"github.com/dmitrijs2005/invoicextractor/internal/logging"
)

// App holds the collaborators of one extraction run.
type App struct {
	config      *config.Config
	log         logging.Logger
	client      client.Client
	authService services.AuthService
	rideService services.RideService
	archiver    archive.Archiver
	reader      *bufio.Reader
	out         io.Writer

	tokens    *models.TokenPair
	refreshed bool
}

// NewApp wires the portal client, token cache, ride collector and archive
// from c. Prompts read stdin and status goes to stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	apiClient := client.NewPortalClient(c, log)
	repo := tokens.NewFileRepository(c.TokenFile)

	arch, err := archive.New(ctx, c, log)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		log:         log,
		client:      apiClient,
		authService: services.NewAuthService(apiClient, repo, log),
		rideService: services.NewRideService(apiClient, c, log),
		archiver:    arch,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}
