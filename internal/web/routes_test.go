package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/fittracker/internal/database"
	"github.com/sstent/fittracker/internal/parser"
	"github.com/sstent/fittracker/internal/sync"
)

func newTestRouter(t *testing.T) (*gin.Engine, *database.SQLiteDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := sync.NewSyncService(db, nil, "", parser.Profile{WeightKg: 75, HeightCm: 180}, logger)
	return NewRouter(NewWebHandler(db, svc, logger)), db
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	do(router, http.MethodPost, "/api/trainings", `{"type":"RUN","data":[15000,1,75]}`)
	rec := do(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fittracker_trainings_recorded_total")
}

func TestCreateTraining(t *testing.T) {
	router, db := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/trainings", `{"type":"SWM","data":[720,1,80,25,40]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		ID       string  `json:"id"`
		Kind     string  `json:"kind"`
		Calories float64 `json:"calories"`
		Message  string  `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SWM", body.Kind)
	assert.InDelta(t, 336.0, body.Calories, 1e-9)
	assert.Equal(t,
		"Training type: Swimming; Duration: 1.000 h; Distance: 0.994 km; Avg speed: 1.000 km/h; Calories: 336.000.",
		body.Message)

	stored, err := db.GetWorkout(context.Background(), body.ID)
	require.NoError(t, err)
	assert.Equal(t, sync.SourceAPI, stored.Source)
}

func TestCreateTraining_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown type", `{"type":"YOG","data":[1,1,1]}`, "unknown workout type"},
		{"wrong arity", `{"type":"WLK","data":[9000,1,75]}`, "invalid parameter count"},
		{"malformed", `{"type":`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/api/trainings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestTrainingListAndDetail(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []string{
		`{"type":"RUN","data":[15000,1,75]}`,
		`{"type":"RUN","data":[5000,0.5,75]}`,
		`{"type":"WLK","data":[9000,1,75,180]}`,
	} {
		require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/trainings", body).Code)
	}

	rec := do(router, http.MethodGet, "/api/trainings?type=RUN&sort=distance&order=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []database.Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 2)
	assert.InDelta(t, 3.25, runs[0].Distance, 1e-9)

	rec = do(router, http.MethodGet, "/api/trainings?limit=1", "")
	var page []database.Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page, 1)

	rec = do(router, http.MethodGet, "/api/trainings/"+runs[1].ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Training type: Running; Duration: 1.000 h; Distance: 9.750 km")

	rec = do(router, http.MethodGet, "/api/trainings/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/api/trainings?type=BIKE", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrainingList_Empty(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/trainings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTrainingList_InvalidPaging(t *testing.T) {
	router, _ := newTestRouter(t)
	do(router, http.MethodPost, "/api/trainings", `{"type":"RUN","data":[15000,1,75]}`)

	for _, query := range []string{
		"limit=abc",
		"limit=",
		"limit=0",
		"limit=-3",
		"limit=1.5",
		"offset=abc",
		"offset=-1",
	} {
		t.Run(query, func(t *testing.T) {
			rec := do(router, http.MethodGet, "/api/trainings?"+query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}

	rec := do(router, http.MethodGet, "/api/trainings?limit=10&offset=0", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsAndSync(t *testing.T) {
	router, _ := newTestRouter(t)

	do(router, http.MethodPost, "/api/trainings", `{"type":"RUN","data":[15000,1,75]}`)

	rec := do(router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats database.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByKind["RUN"])

	rec = do(router, http.MethodPost, "/api/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recorded":0,"rejected":0,"files":0}`, rec.Body.String())
}
