package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/invoicextractor/internal/client/client"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/netx"
)

type download struct {
	url, dst string
}

// fakeClient scripts the portal for workflow tests and records the order
// of calls.
type fakeClient struct {
	calls []string

	// UserErrs are returned by successive GetUserInfo calls; once drained
	// the call succeeds.
	UserErrs  []error
	Companies []models.Company
	Pages     map[int]*models.RideList
	// AccessTokens are handed out in order by GetAccessToken.
	AccessTokens []string
	DownloadErr  error

	downloads    []download
	userTokens   []string
	sessionToken string
}

func (f *fakeClient) StartAuthentication(context.Context, string, []byte) (*models.AuthenticationToken, error) {
	f.calls = append(f.calls, "start")
	return &models.AuthenticationToken{VerificationToken: "vt"}, nil
}

func (f *fakeClient) CompleteAuthentication(context.Context, string, string) (*models.RefreshTokenData, error) {
	f.calls = append(f.calls, "complete")
	return &models.RefreshTokenData{RefreshToken: "rt"}, nil
}

func (f *fakeClient) GetAccessToken(context.Context, string) (*models.AccessTokenData, error) {
	f.calls = append(f.calls, "access")
	if len(f.AccessTokens) == 0 {
		return nil, fmt.Errorf("no access token scripted")
	}
	tok := f.AccessTokens[0]
	f.AccessTokens = f.AccessTokens[1:]
	return &models.AccessTokenData{AccessToken: tok}, nil
}

func (f *fakeClient) GetUserInfo(_ context.Context, accessToken string) (*models.UserInfo, error) {
	f.calls = append(f.calls, "user")
	f.userTokens = append(f.userTokens, accessToken)
	if len(f.UserErrs) > 0 {
		err := f.UserErrs[0]
		f.UserErrs = f.UserErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &models.UserInfo{ID: 42, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, nil
}

func (f *fakeClient) GetAssociatedCompanies(context.Context, string) ([]models.Company, error) {
	f.calls = append(f.calls, "companies")
	return f.Companies, nil
}

func (f *fakeClient) GetRidePage(_ context.Context, _ string, q client.RideQuery) (*models.RideList, error) {
	f.calls = append(f.calls, fmt.Sprintf("page%d", q.Page))
	p, ok := f.Pages[q.Page]
	if !ok {
		return nil, fmt.Errorf("page %d not scripted", q.Page)
	}
	return p, nil
}

func (f *fakeClient) DownloadFile(_ context.Context, url, dst string, sink netx.ProgressSink) error {
	f.calls = append(f.calls, "download")
	f.downloads = append(f.downloads, download{url: url, dst: dst})
	if f.DownloadErr != nil {
		return f.DownloadErr
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if sink != nil {
		sink.Progress(100)
	}
	return os.WriteFile(dst, []byte("%PDF"), 0o644)
}

func (f *fakeClient) UpdateSessionID(accessToken string) bool {
	f.calls = append(f.calls, "session")
	f.sessionToken = accessToken
	return true
}

func (f *fakeClient) SessionID() string { return f.sessionToken }

// recordingArchiver remembers the keys it was asked to store.
type recordingArchiver struct {
	keys  []string
	paths []string
	err   error
}

func (r *recordingArchiver) Archive(_ context.Context, key, localPath string) error {
	r.keys = append(r.keys, key)
	r.paths = append(r.paths, localPath)
	return r.err
}
