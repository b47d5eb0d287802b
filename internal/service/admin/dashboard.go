package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ruru-backoffice/internal/domain"
)

// RecentLimit is the number of transactions shown on the dashboard.
const RecentLimit = 5

// Dashboard is the admin landing page data.
type Dashboard struct {
	Counts domain.Counts        `json:"counts"`
	Recent []domain.Transaction `json:"recent"`
}

// Dashboard loads the totals and the latest transactions in parallel.
func (s *Service) Dashboard(ctx context.Context, api API) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := api.Counts(gctx)
		if err != nil {
			return err
		}
		d.Counts = c
		return nil
	})
	g.Go(func() error {
		p, err := api.ListTransactions(gctx, domain.PageRequest{Page: 1, Limit: RecentLimit})
		if err != nil {
			return err
		}
		d.Recent = p.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	if len(d.Recent) > RecentLimit {
		d.Recent = d.Recent[:RecentLimit]
	}
	return d, nil
}
