package client

import (
	"context"

	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/netx"
)

// RideQuery selects one page of ride history. Year and Month are optional
// server-side filters and are left out of the request when zero.
type RideQuery struct {
	CompanyID int
	Year      int
	Month     int
	Page      int
	Limit     int
}

type Client interface {
	StartAuthentication(ctx context.Context, username string, password []byte) (*models.AuthenticationToken, error)
	CompleteAuthentication(ctx context.Context, code, verificationToken string) (*models.RefreshTokenData, error)
	GetAccessToken(ctx context.Context, refreshToken string) (*models.AccessTokenData, error)
	GetUserInfo(ctx context.Context, accessToken string) (*models.UserInfo, error)
	GetAssociatedCompanies(ctx context.Context, accessToken string) ([]models.Company, error)
	GetRidePage(ctx context.Context, accessToken string, q RideQuery) (*models.RideList, error)
	DownloadFile(ctx context.Context, url, dst string, sink netx.ProgressSink) error
	UpdateSessionID(accessToken string) bool
	SessionID() string
}
