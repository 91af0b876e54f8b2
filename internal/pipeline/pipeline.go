// Package pipeline orchestrates one digest run: fetch, filter, assemble,
// deliver.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/civicupdates/civic-digest-service/internal/digest"
	"github.com/civicupdates/civic-digest-service/internal/domain"
	"github.com/civicupdates/civic-digest-service/internal/observability"
)

// Fetcher retrieves the raw records for each dataset.
type Fetcher interface {
	Licenses(ctx context.Context, area domain.SearchArea, window domain.ReportingWindow) ([]domain.LicenseRecord, error)
	Inspections(ctx context.Context, window domain.ReportingWindow) ([]domain.InspectionRecord, error)
	Permits(ctx context.Context, area domain.SearchArea, window domain.ReportingWindow) ([]domain.PermitRecord, error)
}

// Sender delivers one HTML message to a single recipient.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Section titles, in digest order.
const (
	licensesTitle    = "New Business Licenses"
	inspectionsTitle = "New Food Inspection Results"
	permitsTitle     = "New Filming Permits"
)

// Pipeline runs the weekly digest end to end.
type Pipeline struct {
	fetcher    Fetcher
	sender     Sender
	styles     digest.Styles
	area       domain.SearchArea
	recipients []string
	location   *time.Location
	logger     *slog.Logger
	metrics    *observability.Metrics

	// DryRunOutput, when non-nil, receives the assembled HTML instead of it
	// being mailed.
	DryRunOutput io.Writer
}

// New creates a Pipeline over the given collaborators.
func New(fetcher Fetcher, sender Sender, styles digest.Styles, area domain.SearchArea, recipients []string, location *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		sender:     sender,
		styles:     styles,
		area:       area,
		recipients: recipients,
		location:   location,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run executes one fetch-assemble-deliver cycle. The three dataset fetches
// run in parallel; any failure cancels the rest and aborts the run before a
// single message is sent.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	window := domain.CurrentWindow(p.location)
	p.logger.Info("run started",
		"window_start", window.Start.Format("2006-01-02"),
		"window_end", window.End.Format("2006-01-02"),
		"radius_m", p.area.RadiusMeters,
	)

	var licenses, inspections, permits domain.Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := p.fetcher.Licenses(gctx, p.area, window)
		if err != nil {
			return err
		}
		p.metrics.RowsFetched.WithLabelValues("licenses").Add(float64(len(recs)))
		licenses = domain.NormalizeLicenses(recs)
		return nil
	})
	g.Go(func() error {
		recs, err := p.fetcher.Inspections(gctx, window)
		if err != nil {
			return err
		}
		p.metrics.RowsFetched.WithLabelValues("inspections").Add(float64(len(recs)))
		kept := domain.FilterWithinArea(recs, p.area)
		p.metrics.GeofilterDropped.Add(float64(len(recs) - len(kept)))
		inspections = domain.NormalizeInspections(kept)
		return nil
	})
	g.Go(func() error {
		recs, err := p.fetcher.Permits(gctx, p.area, window)
		if err != nil {
			return err
		}
		p.metrics.RowsFetched.WithLabelValues("permits").Add(float64(len(recs)))
		permits = domain.NormalizePermits(recs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch datasets: %w", err)
	}

	html, err := digest.Assemble(p.styles, []digest.Section{
		{Title: licensesTitle, Table: licenses},
		{Title: inspectionsTitle, Table: inspections},
		{Title: permitsTitle, Table: permits},
	})
	if err != nil {
		return err
	}

	if p.DryRunOutput != nil {
		_, err := io.WriteString(p.DryRunOutput, html)
		return err
	}

	if err := p.deliver(window.Subject(), html); err != nil {
		return err
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	return nil
}

// deliver sends the digest to every recipient. A failed recipient does not
// stop the rest; all failures are reported together and fail the run.
func (p *Pipeline) deliver(subject, html string) error {
	var errs []error
	for _, to := range p.recipients {
		if err := p.sender.Send(to, subject, html); err != nil {
			p.metrics.EmailsSent.WithLabelValues("error").Inc()
			p.logger.Error("delivery failed", "to", to, "error", err)
			errs = append(errs, err)
			continue
		}
		p.metrics.EmailsSent.WithLabelValues("success").Inc()
	}

	if len(errs) > 0 {
		return fmt.Errorf("deliver digest: %w", errors.Join(errs...))
	}
	p.logger.Info("digest delivered", "recipients", len(p.recipients))
	return nil
}
