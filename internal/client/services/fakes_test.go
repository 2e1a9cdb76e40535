package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/invoicextractor/internal/client/client"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/netx"
)

// fakeClient implements client.Client for service tests. It records the
// order of calls in calls.
type fakeClient struct {
	calls []string

	StartRet *models.AuthenticationToken
	StartErr error

	CompleteRet *models.RefreshTokenData
	CompleteErr error

	// AccessTokens are handed out in order by GetAccessToken.
	AccessTokens []string
	AccessErr    error

	// Pages are served by page number; a missing page is an error.
	Pages    map[int]*models.RideList
	PageErrs map[int]error

	LastStartUser     string
	LastStartPassword string
	LastCode          string
	LastVerification  string
	LastRefreshToken  string
	RideQueries       []client.RideQuery

	SessionUpdatable bool
	sessionID        string
}

func (f *fakeClient) StartAuthentication(_ context.Context, username string, password []byte) (*models.AuthenticationToken, error) {
	f.calls = append(f.calls, "start")
	f.LastStartUser, f.LastStartPassword = username, string(password)
	return f.StartRet, f.StartErr
}

func (f *fakeClient) CompleteAuthentication(_ context.Context, code, verificationToken string) (*models.RefreshTokenData, error) {
	f.calls = append(f.calls, "complete")
	f.LastCode, f.LastVerification = code, verificationToken
	return f.CompleteRet, f.CompleteErr
}

func (f *fakeClient) GetAccessToken(_ context.Context, refreshToken string) (*models.AccessTokenData, error) {
	f.calls = append(f.calls, "access")
	f.LastRefreshToken = refreshToken
	if f.AccessErr != nil {
		return nil, f.AccessErr
	}
	if len(f.AccessTokens) == 0 {
		return nil, errors.New("no access token scripted")
	}
	tok := f.AccessTokens[0]
	f.AccessTokens = f.AccessTokens[1:]
	return &models.AccessTokenData{AccessToken: tok}, nil
}

func (f *fakeClient) GetUserInfo(context.Context, string) (*models.UserInfo, error) {
	f.calls = append(f.calls, "user")
	return &models.UserInfo{}, nil
}

func (f *fakeClient) GetAssociatedCompanies(context.Context, string) ([]models.Company, error) {
	f.calls = append(f.calls, "companies")
	return nil, nil
}

func (f *fakeClient) GetRidePage(_ context.Context, _ string, q client.RideQuery) (*models.RideList, error) {
	f.calls = append(f.calls, fmt.Sprintf("page%d", q.Page))
	f.RideQueries = append(f.RideQueries, q)
	if err := f.PageErrs[q.Page]; err != nil {
		return nil, err
	}
	p, ok := f.Pages[q.Page]
	if !ok {
		return nil, fmt.Errorf("page %d not scripted", q.Page)
	}
	return p, nil
}

func (f *fakeClient) DownloadFile(context.Context, string, string, netx.ProgressSink) error {
	return nil
}

func (f *fakeClient) UpdateSessionID(accessToken string) bool {
	f.calls = append(f.calls, "session")
	if !f.SessionUpdatable {
		return false
	}
	f.sessionID = "session-of-" + accessToken
	return true
}

func (f *fakeClient) SessionID() string { return f.sessionID }

// fakePrompter answers the interactive login.
type fakePrompter struct {
	Username string
	Password string
	Code     string
	Err      error

	credentialsAsked int
	codeAsked        int
	codeToken        *models.AuthenticationToken
}

func (p *fakePrompter) Credentials(context.Context) (string, []byte, error) {
	p.credentialsAsked++
	if p.Err != nil {
		return "", nil, p.Err
	}
	return p.Username, []byte(p.Password), nil
}

func (p *fakePrompter) VerificationCode(_ context.Context, token *models.AuthenticationToken) (string, error) {
	p.codeAsked++
	p.codeToken = token
	return p.Code, nil
}
