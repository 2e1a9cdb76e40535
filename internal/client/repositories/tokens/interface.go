// Package tokens persists the refresh/access token pair between runs.
package tokens

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("token pair not found")

type Repository interface {
	Load(ctx context.Context) (*models.TokenPair, error)
	Save(ctx context.Context, pair *models.TokenPair) error
}
