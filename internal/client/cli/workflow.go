package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/invoicextractor/internal/client/archive"
	"github.com/dmitrijs2005/invoicextractor/internal/client/client"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/filex"
)

// Stage names a step of the extraction pipeline.
type Stage string

const (
	StageAcquireTokens   Stage = "acquire tokens"
	StageUpdateSession   Stage = "update session"
	StageResolveIdentity Stage = "resolve identity"
	StageResolveCompany  Stage = "resolve company"
	StagePromptPeriod    Stage = "prompt period"
	StageCollectRides    Stage = "collect rides"
	StageDownload        Stage = "download"
)

// StageError is the single failure exit of a stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

var ErrNoCompany = errors.New("no company is associated with this user")

// now is a test seam for the default period.
var now = time.Now

const fileTimeLayout = "2006-01-02-15-04-05"

// Run drives one extraction and waits for Enter before returning.
// The returned error, if any, has already been shown to the operator.
func (a *App) Run(ctx context.Context) error {
	a.printBanner()

	err := a.extract(ctx)
	if err != nil {
		a.log.Error(ctx, "extraction failed", "error", err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}

	a.waitForEnter()
	return err
}

func (a *App) printBanner() {
	fmt.Fprintln(a.out, "==========================================")
	fmt.Fprintln(a.out, "====     Business Invoice Extractor   ====")
	fmt.Fprintln(a.out, "==========================================")
	fmt.Fprintln(a.out)
}

func (a *App) waitForEnter() {
	fmt.Fprint(a.out, "Press Enter to exit")
	_, _ = a.reader.ReadString('\n')
}

func (a *App) extract(ctx context.Context) error {
	pair, err := a.authService.LoadOrAuthenticate(ctx, a)
	if err != nil {
		return &StageError{Stage: StageAcquireTokens, Err: err}
	}
	a.tokens = pair

	if !a.client.UpdateSessionID(pair.AccessToken) {
		a.log.Debug(ctx, "access token carries no session claims", "stage", StageUpdateSession)
	}

	user, err := authorized(ctx, a, func(token string) (*models.UserInfo, error) {
		return a.client.GetUserInfo(ctx, token)
	})
	if err != nil {
		return &StageError{Stage: StageResolveIdentity, Err: err}
	}
	fmt.Fprintf(a.out, "User: %s <%s> (id %d)\n", user.Name(), user.Email, user.ID)

	companies, err := authorized(ctx, a, func(token string) ([]models.Company, error) {
		return a.client.GetAssociatedCompanies(ctx, token)
	})
	if err != nil {
		return &StageError{Stage: StageResolveCompany, Err: err}
	}
	if len(companies) == 0 {
		return &StageError{Stage: StageResolveCompany, Err: ErrNoCompany}
	}
	company := companies[0]
	fmt.Fprintf(a.out, "Company: %s (id %d)\n", company.Name, company.ID)

	year, month, err := a.promptPeriod()
	if err != nil {
		return &StageError{Stage: StagePromptPeriod, Err: err}
	}

	rides, err := authorized(ctx, a, func(token string) ([]models.Ride, error) {
		return a.rideService.CollectMonth(ctx, token, company.ID, year, month)
	})
	if err != nil {
		return &StageError{Stage: StageCollectRides, Err: err}
	}

	if len(rides) == 0 {
		fmt.Fprintf(a.out, "No invoices found for %d-%02d\n", year, month)
		return nil
	}
	fmt.Fprintf(a.out, "Found %d invoice(s)\n", len(rides))

	dir, n, err := a.download(ctx, rides, year, month)
	if err != nil {
		return &StageError{Stage: StageDownload, Err: err}
	}
	fmt.Fprintf(a.out, "Downloaded %d invoice(s) to %s\n", n, dir)
	return nil
}

// authorized runs call with the current access token. The first
// ErrUnauthorized of the run refreshes the token and retries once; any
// later one is returned to the caller.
func authorized[T any](ctx context.Context, a *App, call func(accessToken string) (T, error)) (T, error) {
	v, err := call(a.tokens.AccessToken)
	if err == nil || !errors.Is(err, client.ErrUnauthorized) || a.refreshed {
		return v, err
	}

	a.refreshed = true
	a.log.Info(ctx, "access token rejected, refreshing")
	if err := a.authService.Refresh(ctx, a.tokens); err != nil {
		var zero T
		return zero, fmt.Errorf("refresh access token: %w", err)
	}
	return call(a.tokens.AccessToken)
}

// promptPeriod reads year and month. Malformed or out-of-range answers fall
// back to the current year or month with a warning.
func (a *App) promptPeriod() (int, int, error) {
	current := now()

	year, err := GetInteger(a.reader, "Type a year", a.out)
	switch {
	case errors.Is(err, ErrInvalidNumber), err == nil && (year < 1 || year > 9999):
		fmt.Fprintln(a.out, "Invalid year. Assuming current year")
		year = current.Year()
	case err != nil:
		return 0, 0, err
	}

	month, err := GetInteger(a.reader, "Type a month (integer between 1 and 12)", a.out)
	switch {
	case errors.Is(err, ErrInvalidNumber), err == nil && (month < 1 || month > 12):
		fmt.Fprintln(a.out, "Invalid month. Assuming current month")
		month = int(current.Month())
	case err != nil:
		return 0, 0, err
	}

	return year, month, nil
}

// outputBase asks for the folder the month folder is created in. An empty
// answer or a folder that does not exist selects the configured default.
func (a *App) outputBase() (string, error) {
	base, err := getSimpleText(a.reader, "Type the output folder (empty for default)", a.out)
	if err != nil {
		return "", err
	}
	if base == "" || !filex.DirExists(base) {
		return a.config.OutputDir, nil
	}
	return base, nil
}

// download stores every ride's invoice as {base}/{yyyy-MM}/{order time}.pdf
// in collection order and mirrors it to the archive. An archive failure is
// logged and does not stop the run.
func (a *App) download(ctx context.Context, rides []models.Ride, year, month int) (string, int, error) {
	base, err := a.outputBase()
	if err != nil {
		return "", 0, err
	}

	folder := fmt.Sprintf("%d-%02d", year, month)
	dir := filepath.Join(base, folder)

	count := 0
	for i, r := range rides {
		name := r.OrderTimestamp.UTC().Format(fileTimeLayout) + ".pdf"
		dst := filepath.Join(dir, name)

		p := &progressPrinter{w: a.out, label: fmt.Sprintf("[%d/%d] %s", i+1, len(rides), name)}
		if err := a.client.DownloadFile(ctx, r.Invoice(), dst, p); err != nil {
			p.finish()
			return dir, count, fmt.Errorf("ride %s: %w", r.ID, err)
		}
		p.finish()
		count++

		if err := a.archiver.Archive(ctx, archive.Key(a.config.S3Prefix, folder, name), dst); err != nil {
			a.log.Warn(ctx, "archive upload failed", "file", dst, "error", err)
		}
	}
	return dir, count, nil
}
