package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/fittracker/internal/training"
)

func TestFetchPackages(t *testing.T) {
	var gotSince string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/packages", r.URL.Path)
		gotSince = r.URL.Query().Get("since")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"type":"RUN","data":[15000,1,75]},{"type":"SWM","data":[720,1,80,25,40]}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 5*time.Second)
	since := time.Date(2026, 10, 17, 6, 30, 0, 0, time.UTC)

	packages, err := c.FetchPackages(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17T06:30:00Z", gotSince)
	assert.Equal(t, []training.Package{
		{Type: "RUN", Data: []float64{15000, 1, 75}},
		{Type: "SWM", Data: []float64{720, 1, 80, 25, 40}},
	}, packages)
}

func TestFetchPackages_NoSince(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("since"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	packages, err := NewClient(srv.URL, time.Second).FetchPackages(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, packages)
}

func TestFetchPackages_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).FetchPackages(context.Background(), time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "gateway down")
}

func TestFetchPackages_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second).FetchPackages(ctx, time.Time{})
	assert.Error(t, err)
}
