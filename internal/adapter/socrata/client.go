// Package socrata queries dataset resources on the city's open-data portal.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/civicupdates/civic-digest-service/internal/domain"
	"github.com/civicupdates/civic-digest-service/internal/observability"
)

// Dataset resource IDs on the portal.
const (
	licensesDataset    = "uupf-x98q"
	inspectionsDataset = "4ijn-s7e5"
	permitsDataset     = "c2az-nhru"
)

// Server-side value filters applied to each dataset.
var (
	licenseApplicationTypes  = []string{"ISSUE"}
	inspectionFacilityTypes  = []string{"Restaurant"}
	inspectionResultOutcomes = []string{"Pass", "Pass w/ Conditions", "Fail"}
	permitExcludedMilestones = []string{"Cancelled"}
)

// Client fetches dataset rows from the portal's resource endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a portal client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Licenses fetches business licenses issued during the window within the
// search area.
func (c *Client) Licenses(ctx context.Context, area domain.SearchArea, window domain.ReportingWindow) ([]domain.LicenseRecord, error) {
	where := CombineAnd(
		WithinCircle("location", area.Latitude, area.Longitude, area.RadiusMeters),
		DateBetween("date_issued", window.Start),
		ValueIn("application_type", licenseApplicationTypes),
	)

	var recs []domain.LicenseRecord
	if err := c.fetch(ctx, "licenses", licensesDataset, where, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Inspections fetches food inspection results from the window. The resource
// has no radius operator, so callers apply domain.FilterWithinArea to the
// returned records.
func (c *Client) Inspections(ctx context.Context, window domain.ReportingWindow) ([]domain.InspectionRecord, error) {
	where := CombineAnd(
		DateBetween("inspection_date", window.Start),
		ValueIn("facility_type", inspectionFacilityTypes),
		ValueIn("results", inspectionResultOutcomes),
	)

	var recs []domain.InspectionRecord
	if err := c.fetch(ctx, "inspections", inspectionsDataset, where, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Permits fetches filming permits starting in the window within the search
// area, excluding cancelled applications.
func (c *Client) Permits(ctx context.Context, area domain.SearchArea, window domain.ReportingWindow) ([]domain.PermitRecord, error) {
	where := CombineAnd(
		WithinCircle("location", area.Latitude, area.Longitude, area.RadiusMeters),
		DateBetween("applicationstartdate", window.Start),
		ValueNotIn("currentmilestone", permitExcludedMilestones),
	)

	var recs []domain.PermitRecord
	if err := c.fetch(ctx, "permits", permitsDataset, where, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// fetch issues one GET against a dataset resource and decodes the JSON array
// body into out. Any non-200 status or undecodable body is fatal for the run.
func (c *Client) fetch(ctx context.Context, dataset, resourceID, where string, out any) error {
	start := time.Now()
	params := url.Values{"$where": {where}}
	fullURL := fmt.Sprintf("%s/%s.json?%s", c.baseURL, resourceID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(dataset, "error").Inc()
		return fmt.Errorf("fetch %s: %w", dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.FetchRequests.WithLabelValues(dataset, "error").Inc()
		return fmt.Errorf("portal error for %s: status %d: %s", dataset, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.FetchRequests.WithLabelValues(dataset, "error").Inc()
		return fmt.Errorf("decode %s response: %w", dataset, err)
	}

	c.metrics.FetchRequests.WithLabelValues(dataset, "success").Inc()
	c.metrics.FetchDuration.WithLabelValues(dataset).Observe(time.Since(start).Seconds())
	c.logger.Debug("dataset fetched", "dataset", dataset, "where", where)
	return nil
}
