package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/invoicextractor/internal/client/client"
	"github.com/dmitrijs2005/invoicextractor/internal/client/config"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/invoicextractor/internal/client/services"
	"github.com/dmitrijs2005/invoicextractor/internal/logging"
	"github.com/dmitrijs2005/invoicextractor/internal/timex"
)

type testApp struct {
	*App
	out      *bytes.Buffer
	repo     *tokens.FileRepository
	archiver *recordingArchiver
}

func newTestApp(t *testing.T, fc *fakeClient, input string) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.OutputDir = t.TempDir()
	cfg.TokenFile = filepath.Join(t.TempDir(), "token.json")

	log := logging.Discard()
	repo := tokens.NewFileRepository(cfg.TokenFile)
	out := &bytes.Buffer{}
	arch := &recordingArchiver{}

	app := &App{
		config:      cfg,
		log:         log,
		client:      fc,
		authService: services.NewAuthService(fc, repo, log),
		rideService: services.NewRideService(fc, cfg, log),
		archiver:    arch,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
	}
	return &testApp{App: app, out: out, repo: repo, archiver: arch}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	getPassword = func(string, io.Writer) ([]byte, error) {
		return []byte(pw), nil
	}
}

func stubNow(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	t.Cleanup(func() { now = old })
	now = func() time.Time { return at }
}

func cachePair(t *testing.T, ta *testApp) {
	t.Helper()
	require.NoError(t, ta.repo.Save(context.Background(), &models.TokenPair{RefreshToken: "rt", AccessToken: "stale"}))
}

var orderedAt = time.Date(2024, 3, 15, 12, 30, 45, 0, time.UTC)

func invoicedRide(id string, at time.Time) models.Ride {
	return models.Ride{
		ID:             id,
		OrderTimestamp: timex.TickTime{Time: at},
		UserInvoices:   []models.UserInvoice{{Link: "https://invoices.example/" + id}},
	}
}

func onePage(rides ...models.Ride) map[int]*models.RideList {
	return map[int]*models.RideList{1: {List: rides, Pagination: models.Pagination{TotalPages: 1}}}
}

func TestRun_FirstLoginDownloadsInvoices(t *testing.T) {
	stubPassword(t, "secret")
	fc := &fakeClient{
		AccessTokens: []string{"at-1"},
		Companies:    []models.Company{{ID: 7, Name: "Acme"}, {ID: 8, Name: "Other"}},
		Pages:        onePage(invoicedRide("r1", orderedAt)),
	}
	ta := newTestApp(t, fc, "alice\n1234\n2024\n3\n\n\n")

	require.NoError(t, ta.Run(context.Background()))

	assert.Equal(t, []string{"start", "complete", "access", "session", "user", "companies", "page1", "download"}, fc.calls)

	saved, err := ta.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.TokenPair{RefreshToken: "rt", AccessToken: "at-1"}, saved)

	want := filepath.Join(ta.config.OutputDir, "2024-03", "2024-03-15-12-30-45.pdf")
	require.Len(t, fc.downloads, 1)
	assert.Equal(t, download{url: "https://invoices.example/r1", dst: want}, fc.downloads[0])
	assert.FileExists(t, want)

	assert.Equal(t, []string{"invoices/2024-03/2024-03-15-12-30-45.pdf"}, ta.archiver.keys)

	out := ta.out.String()
	assert.Contains(t, out, "User: Ada Lovelace <ada@example.com> (id 42)")
	assert.Contains(t, out, "Company: Acme (id 7)")
	assert.Contains(t, out, "Downloaded 1 invoice(s)")
	assert.True(t, strings.HasSuffix(out, "Press Enter to exit"))
}

func TestRun_RefreshesOnceOnUnauthorized(t *testing.T) {
	fc := &fakeClient{
		UserErrs:     []error{client.ErrUnauthorized},
		AccessTokens: []string{"fresh"},
		Companies:    []models.Company{{ID: 7, Name: "Acme"}},
		Pages:        onePage(),
	}
	ta := newTestApp(t, fc, "2024\n3\n\n")
	cachePair(t, ta)

	require.NoError(t, ta.Run(context.Background()))

	assert.Equal(t, []string{"session", "user", "access", "session", "user", "companies", "page1"}, fc.calls)
	assert.Equal(t, []string{"stale", "fresh"}, fc.userTokens)

	saved, err := ta.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", saved.AccessToken)
}

func TestRun_SecondUnauthorizedIsFatal(t *testing.T) {
	fc := &fakeClient{
		UserErrs:     []error{client.ErrUnauthorized, client.ErrUnauthorized},
		AccessTokens: []string{"fresh", "never"},
	}
	ta := newTestApp(t, fc, "\n")
	cachePair(t, ta)

	err := ta.Run(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageResolveIdentity, se.Stage)

	assert.Equal(t, []string{"session", "user", "access", "session", "user"}, fc.calls)
	assert.Contains(t, ta.out.String(), "Error: resolve identity")
}

func TestRun_NoInvoicesFound(t *testing.T) {
	fc := &fakeClient{
		Companies: []models.Company{{ID: 7, Name: "Acme"}},
		Pages:     onePage(models.Ride{ID: "no-invoice", OrderTimestamp: timex.TickTime{Time: orderedAt}}),
	}
	ta := newTestApp(t, fc, "2024\n3\n\n")
	cachePair(t, ta)

	require.NoError(t, ta.Run(context.Background()))

	assert.NotContains(t, fc.calls, "download")
	assert.Empty(t, fc.downloads)
	assert.Contains(t, ta.out.String(), "No invoices found for 2024-03")
}

func TestRun_NoCompanyIsFatal(t *testing.T) {
	fc := &fakeClient{}
	ta := newTestApp(t, fc, "\n")
	cachePair(t, ta)

	err := ta.Run(context.Background())
	require.ErrorIs(t, err, ErrNoCompany)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageResolveCompany, se.Stage)
	assert.NotContains(t, fc.calls, "page1")
}

func TestRun_InvalidPeriodFallsBackToCurrent(t *testing.T) {
	stubNow(t, time.Date(2025, 7, 9, 10, 0, 0, 0, time.Local))
	fc := &fakeClient{
		Companies: []models.Company{{ID: 7, Name: "Acme"}},
		Pages:     onePage(),
	}
	ta := newTestApp(t, fc, "next year\n13\n\n")
	cachePair(t, ta)

	require.NoError(t, ta.Run(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "Invalid year. Assuming current year")
	assert.Contains(t, out, "Invalid month. Assuming current month")
	assert.Contains(t, out, "No invoices found for 2025-07")
}

func TestRun_DownloadFailureAborts(t *testing.T) {
	fc := &fakeClient{
		Companies:   []models.Company{{ID: 7, Name: "Acme"}},
		Pages:       onePage(invoicedRide("r1", orderedAt), invoicedRide("r2", orderedAt.Add(-time.Hour))),
		DownloadErr: client.ErrRequest,
	}
	ta := newTestApp(t, fc, "2024\n3\n\n\n")
	cachePair(t, ta)

	err := ta.Run(context.Background())
	require.ErrorIs(t, err, client.ErrRequest)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageDownload, se.Stage)
	assert.Len(t, fc.downloads, 1)
	assert.Empty(t, ta.archiver.keys)
}

func TestRun_ArchiveFailureDoesNotStopDownloads(t *testing.T) {
	fc := &fakeClient{
		Companies: []models.Company{{ID: 7, Name: "Acme"}},
		Pages:     onePage(invoicedRide("r1", orderedAt), invoicedRide("r2", orderedAt.Add(-time.Hour))),
	}
	ta := newTestApp(t, fc, "2024\n3\n\n\n")
	ta.archiver.err = errors.New("bucket missing")
	cachePair(t, ta)

	require.NoError(t, ta.Run(context.Background()))
	assert.Len(t, fc.downloads, 2)
	assert.Len(t, ta.archiver.keys, 2)
	assert.Contains(t, ta.out.String(), "Downloaded 2 invoice(s)")
}

func TestOutputBase(t *testing.T) {
	existing := t.TempDir()

	tests := []struct {
		name  string
		input string
		want  func(ta *testApp) string
	}{
		{name: "empty uses default", input: "\n", want: func(ta *testApp) string { return ta.config.OutputDir }},
		{name: "missing uses default", input: filepath.Join(existing, "nope") + "\n", want: func(ta *testApp) string { return ta.config.OutputDir }},
		{name: "existing is used", input: existing + "\n", want: func(*testApp) string { return existing }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, &fakeClient{}, tt.input)
			got, err := ta.outputBase()
			require.NoError(t, err)
			assert.Equal(t, tt.want(ta), got)
		})
	}
}

func TestStageError(t *testing.T) {
	err := &StageError{Stage: StageCollectRides, Err: os.ErrDeadlineExceeded}
	assert.Equal(t, "collect rides: "+os.ErrDeadlineExceeded.Error(), err.Error())
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}
