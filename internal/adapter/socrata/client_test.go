package socrata

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicupdates/civic-digest-service/internal/domain"
	"github.com/civicupdates/civic-digest-service/internal/observability"
)

var (
	testSearchArea = domain.SearchArea{Latitude: 41.88, Longitude: -87.63, RadiusMeters: 2750}
	testWindow     = domain.ReportingWindow{
		Start: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetrics())
}

func TestClient_Licenses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uupf-x98q.json", r.URL.Path)

		where := r.URL.Query().Get("$where")
		assert.Contains(t, where, "within_circle(location, 41.88, -87.63, 2750)")
		assert.Contains(t, where, "date_issued >= '2024-03-03T00:00:00.000'")
		assert.Contains(t, where, "date_issued < '2024-03-10T00:00:00.000'")
		assert.Contains(t, where, "application_type IN ('ISSUE')")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"legal_name":"Acme Ltd","doing_business_as_name":"Acme Coffee","address":"1 W MAIN ST","license_start_date":"2024-03-04T00:00:00.000","expiration_date":"2026-03-15T00:00:00.000","business_activity":"Retail Food"}
		]`))
	}))
	defer srv.Close()

	recs, err := testClient(srv.URL).Licenses(context.Background(), testSearchArea, testWindow)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, "Acme Ltd", recs[0].LegalName)
	assert.Equal(t, "Acme Coffee", recs[0].DBAName)
	assert.Equal(t, "Retail Food", recs[0].BusinessActivity)
}

func TestClient_Inspections_NoRadiusPredicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/4ijn-s7e5.json", r.URL.Path)

		// The inspections resource cannot filter by radius server-side; that
		// predicate must never appear in its query.
		where := r.URL.Query().Get("$where")
		assert.NotContains(t, where, "within_circle")
		assert.Contains(t, where, "facility_type IN ('Restaurant')")
		assert.Contains(t, where, "results IN ('Pass', 'Pass w/ Conditions', 'Fail')")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"dba_name":"LOU'S","aka_name":"LOU'S","latitude":"41.881","longitude":"-87.631"}]`))
	}))
	defer srv.Close()

	recs, err := testClient(srv.URL).Inspections(context.Background(), testWindow)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "41.881", recs[0].Latitude)
}

func TestClient_Permits_ExcludesCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/c2az-nhru.json", r.URL.Path)

		where := r.URL.Query().Get("$where")
		assert.Contains(t, where, "currentmilestone NOT IN ('Cancelled')")
		assert.Contains(t, where, "applicationstartdate >= '2024-03-03T00:00:00.000'")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"primarycontactlast":"SMITH","streetnumberfrom":"600","streetnumberto":"698"}]`))
	}))
	defer srv.Close()

	recs, err := testClient(srv.URL).Permits(context.Background(), testSearchArea, testWindow)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "SMITH", recs[0].PrimaryContactLast)
}

func TestClient_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	recs, err := testClient(srv.URL).Licenses(context.Background(), testSearchArea, testWindow)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Inspections(context.Background(), testWindow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Permits(context.Background(), testSearchArea, testWindow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetrics())

	_, err := c.Licenses(context.Background(), testSearchArea, testWindow)
	require.Error(t, err)
}
