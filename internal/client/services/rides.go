package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/invoicextractor/internal/client/client"
	"github.com/dmitrijs2005/invoicextractor/internal/client/config"
	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/logging"
	"github.com/dmitrijs2005/invoicextractor/internal/timex"
)

// tick is the resolution of ride timestamps.
const tick = time.Second / time.Duration(timex.TicksPerSecond)

// Window is an inclusive [Start, End] time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow spans the calendar month in UTC, ending on its last tick.
func MonthWindow(year, month int) Window {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-tick)
	return Window{Start: start, End: end}
}

// Contains reports whether t lies in w, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// KeepRide reports whether r belongs in the output: it must have an invoice
// and, when w is given, an order timestamp inside w.
func KeepRide(r models.Ride, w *Window) bool {
	if r.Invoice() == "" {
		return false
	}
	return w == nil || w.Contains(r.OrderTimestamp.Time)
}

func filterRides(list []models.Ride, w *Window) []models.Ride {
	kept := make([]models.Ride, 0, len(list))
	for _, r := range list {
		if KeepRide(r, w) {
			kept = append(kept, r)
		}
	}
	return kept
}

// RideService collects the invoiced rides of a month.
type RideService interface {
	CollectMonth(ctx context.Context, accessToken string, companyID, year, month int) ([]models.Ride, error)
}

type rideService struct {
	client           client.Client
	limit            int
	serverDateFilter bool
	log              logging.Logger
}

// NewRideService returns a RideService using the page size and date filter
// mode from cfg.
func NewRideService(client client.Client, cfg *config.Config, log logging.Logger) RideService {
	return &rideService{
		client:           client,
		limit:            cfg.PageLimit,
		serverDateFilter: cfg.ServerDateFilter,
		log:              log,
	}
}

// CollectMonth walks the ride history page by page, strictly sequentially.
//
// Page 1 fixes the number of pages. Pages 2..total are requested in order and
// the walk stops at the first page, page 1 included, that has no invoiced
// ride left after filtering; the server lists rides newest first, so nothing
// useful is expected beyond it. Any failure discards what was collected so
// far.
//
// With server-side date filtering the month is sent with the query,
// otherwise each page is filtered locally against MonthWindow.
func (s *rideService) CollectMonth(ctx context.Context, accessToken string, companyID, year, month int) ([]models.Ride, error) {
	q := client.RideQuery{CompanyID: companyID, Page: 1, Limit: s.limit}

	var window *Window
	if s.serverDateFilter {
		q.Year, q.Month = year, month
	} else {
		w := MonthWindow(year, month)
		window = &w
	}

	first, err := s.client.GetRidePage(ctx, accessToken, q)
	if err != nil {
		return nil, err
	}

	rides := filterRides(first.List, window)
	total := first.Pagination.TotalPages
	s.log.Debug(ctx, "page fetched", "page", 1, "total_pages", total, "kept", len(rides))

	if len(rides) == 0 {
		return rides, nil
	}

	for page := 2; page <= total; page++ {
		q.Page = page
		next, err := s.client.GetRidePage(ctx, accessToken, q)
		if err != nil {
			return nil, err
		}

		kept := filterRides(next.List, window)
		s.log.Debug(ctx, "page fetched", "page", page, "total_pages", total, "kept", len(kept))
		if len(kept) == 0 {
			break
		}
		rides = append(rides, kept...)
	}

	return rides, nil
}
