package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/invoicextractor/internal/client/client"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/invoicextractor/internal/logging"
	"github.com/dmitrijs2005/invoicextractor/internal/shared"
)

// Prompter collects what the interactive login needs from the operator.
// The returned password is wiped by the caller once it has been sent.
type Prompter interface {
	Credentials(ctx context.Context) (username string, password []byte, err error)
	VerificationCode(ctx context.Context, token *models.AuthenticationToken) (string, error)
}

// AuthService is the token cache.
//
// Contract:
//   - LoadOrAuthenticate: return the persisted pair as is, without touching
//     the network; when nothing is persisted, run the password -> SMS ->
//     refresh token -> access token login, persist the pair and return it.
//   - Refresh: obtain a new access token for pair.RefreshToken, replace
//     pair.AccessToken in place, persist the pair and update the client's
//     session identifier from the new token.
type AuthService interface {
	LoadOrAuthenticate(ctx context.Context, p Prompter) (*models.TokenPair, error)
	Refresh(ctx context.Context, pair *models.TokenPair) error
}

type authService struct {
	client client.Client
	repo   tokens.Repository
	log    logging.Logger
}

// NewAuthService returns an AuthService persisting tokens in repo.
func NewAuthService(client client.Client, repo tokens.Repository, log logging.Logger) AuthService {
	return &authService{client: client, repo: repo, log: log}
}

func (a *authService) LoadOrAuthenticate(ctx context.Context, p Prompter) (*models.TokenPair, error) {
	pair, err := a.repo.Load(ctx)
	switch {
	case err == nil:
		a.log.Info(ctx, "using cached tokens")
		return pair, nil
	case errors.Is(err, tokens.ErrNotFound):
		a.log.Info(ctx, "no cached tokens, logging in")
	default:
		a.log.Warn(ctx, "token cache unreadable, logging in again", "error", err)
	}

	pair, err = a.login(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := a.repo.Save(ctx, pair); err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}
	return pair, nil
}

func (a *authService) login(ctx context.Context, p Prompter) (*models.TokenPair, error) {
	username, password, err := p.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	started, err := a.client.StartAuthentication(ctx, username, password)
	shared.WipeByteArray(password)
	if err != nil {
		return nil, err
	}

	code, err := p.VerificationCode(ctx, started)
	if err != nil {
		return nil, err
	}

	refresh, err := a.client.CompleteAuthentication(ctx, code, started.VerificationToken)
	if err != nil {
		return nil, err
	}

	access, err := a.client.GetAccessToken(ctx, refresh.RefreshToken)
	if err != nil {
		return nil, err
	}

	a.log.Info(ctx, "logged in")
	return &models.TokenPair{RefreshToken: refresh.RefreshToken, AccessToken: access.AccessToken}, nil
}

func (a *authService) Refresh(ctx context.Context, pair *models.TokenPair) error {
	access, err := a.client.GetAccessToken(ctx, pair.RefreshToken)
	if err != nil {
		return err
	}

	pair.AccessToken = access.AccessToken
	if err := a.repo.Save(ctx, pair); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}

	updated := a.client.UpdateSessionID(pair.AccessToken)
	a.log.Info(ctx, "access token refreshed", "session_updated", updated)
	return nil
}
