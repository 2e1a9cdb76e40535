package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/invoicextractor/internal/client/config"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/logging"
	"github.com/dmitrijs2005/invoicextractor/internal/netx"
	"github.com/dmitrijs2005/invoicextractor/internal/timex"
	"github.com/google/uuid"
)

const (
	pathStartAuthentication    = "/businessPortal/startAuthentication"
	pathCompleteAuthentication = "/businessPortal/completeAuthentication"
	pathGetAccessToken         = "/businessPortal/getAccessToken"
	pathGetUserInfo            = "/businessPortalUser/getUserInfo/"
	pathGetCompanies           = "/businessPortalUser/getAssociatedCompaniesForUser/"
	pathGetRidesHistory        = "/businessPortal/getRidesHistory/"
)

// now is a test seam for the session identifier timestamp.
var now = time.Now

// HTTPClient is the Client implementation for the business portal JSON API.
type HTTPClient struct {
	baseURL       string
	version       string
	device        models.Device
	sessionID     string
	progressEvery int
	http          *http.Client
	log           logging.Logger
}

// NewPortalClient builds a client for cfg.BaseURL with a new random device
// identifier and an initial session identifier.
func NewPortalClient(cfg *config.Config, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		version: cfg.APIVersion,
		device: models.Device{
			UID:       uuid.NewString(),
			Name:      cfg.DeviceName,
			OSVersion: cfg.DeviceOSVersion,
		},
		sessionID:     uuid.NewString() + "b" + strconv.FormatInt(timex.ToSeconds(now()), 10),
		progressEvery: cfg.ProgressEvery,
		http:          &http.Client{},
		log:           log,
	}
}

// SessionID returns the identifier sent with every call.
func (c *HTTPClient) SessionID() string {
	return c.sessionID
}

// StartAuthentication posts the credentials and returns the verification token
// for the SMS step.
func (c *HTTPClient) StartAuthentication(ctx context.Context, username string, password []byte) (*models.AuthenticationToken, error) {
	req := models.StartAuthenticationRequest{Device: c.device, Username: username, Password: string(password)}
	return call[models.AuthenticationToken](ctx, c, http.MethodPost, "start authentication", pathStartAuthentication, nil, "", req, ErrAuthentication)
}

// CompleteAuthentication exchanges the SMS code for a refresh token.
func (c *HTTPClient) CompleteAuthentication(ctx context.Context, code, verificationToken string) (*models.RefreshTokenData, error) {
	req := models.CompleteAuthenticationRequest{Device: c.device, Code: code, VerificationToken: verificationToken}
	return call[models.RefreshTokenData](ctx, c, http.MethodPost, "complete authentication", pathCompleteAuthentication, nil, "", req, ErrAuthentication)
}

// GetAccessToken issues a new access token for refreshToken.
func (c *HTTPClient) GetAccessToken(ctx context.Context, refreshToken string) (*models.AccessTokenData, error) {
	req := models.RefreshTokenData{RefreshToken: refreshToken}
	return call[models.AccessTokenData](ctx, c, http.MethodPost, "get access token", pathGetAccessToken, nil, "", req, ErrAuthentication)
}

// GetUserInfo returns the signed-in portal user.
func (c *HTTPClient) GetUserInfo(ctx context.Context, accessToken string) (*models.UserInfo, error) {
	return call[models.UserInfo](ctx, c, http.MethodGet, "get user info", pathGetUserInfo, nil, accessToken, nil, ErrAPI)
}

// GetAssociatedCompanies lists the companies the user belongs to.
func (c *HTTPClient) GetAssociatedCompanies(ctx context.Context, accessToken string) ([]models.Company, error) {
	list, err := call[models.CompanyList](ctx, c, http.MethodGet, "get associated companies", pathGetCompanies, nil, accessToken, nil, ErrAPI)
	if err != nil {
		return nil, err
	}
	return list.Companies, nil
}

// GetRidePage fetches one page of ride history. Page defaults to 1 and limit
// to 100; zero year and month are left out of the query.
func (c *HTTPClient) GetRidePage(ctx context.Context, accessToken string, q RideQuery) (*models.RideList, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 100
	}

	query := url.Values{}
	query.Set("company_id", strconv.Itoa(q.CompanyID))
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("page", strconv.Itoa(q.Page))
	if q.Year > 0 {
		query.Set("year", strconv.Itoa(q.Year))
	}
	if q.Month > 0 {
		query.Set("month", strconv.Itoa(q.Month))
	}

	return call[models.RideList](ctx, c, http.MethodGet, "get rides history", pathGetRidesHistory, query, accessToken, nil, ErrAPI)
}

// DownloadFile streams a pre-signed invoice URL to dst, overwriting it.
// No Authorization header is sent.
func (c *HTTPClient) DownloadFile(ctx context.Context, url, dst string, sink netx.ProgressSink) error {
	n, err := netx.Download(ctx, c.http, url, dst, sink, c.progressEvery)
	if err != nil {
		return fmt.Errorf("%w: download %s: %w", ErrRequest, dst, err)
	}
	c.log.Debug(ctx, "file downloaded", "path", dst, "bytes", n)
	return nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("version", c.version)
	q.Set("session_id", c.sessionID)
	return c.baseURL + path + "?" + q.Encode()
}

// call performs one envelope round trip. failKind classifies a non-OK
// envelope; on authenticated calls (accessToken != "") the NOT_AUTHORIZED
// message and HTTP 401 are reported as ErrUnauthorized instead.
func call[T any](
	ctx context.Context,
	c *HTTPClient,
	method, op, path string,
	query url.Values,
	accessToken string,
	body any,
	failKind error,
) (*T, error) {

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	authenticated := accessToken != ""
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, op, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "portal call", "op", op, "status", resp.StatusCode)

	if authenticated && resp.StatusCode == http.StatusUnauthorized {
		return nil, &APIError{Op: op, Code: resp.StatusCode, Message: models.MessageNotAuthorized, Kind: ErrUnauthorized}
	}

	var env models.Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %s: %s: %w", ErrDecode, op, resp.Status, err)
	}

	if env.OK() {
		return env.Data, nil
	}

	return nil, mapEnvelope(op, env.Code, env.Message, authenticated, failKind)
}

func mapEnvelope(op string, code int, message string, authenticated bool, failKind error) error {
	kind := failKind
	if authenticated && message == models.MessageNotAuthorized {
		kind = ErrUnauthorized
	}
	if message == "" {
		message = "bad request when calling " + op
	}
	return &APIError{Op: op, Code: code, Message: message, Kind: kind}
}
