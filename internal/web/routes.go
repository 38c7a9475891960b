package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sstent/fittracker/internal/database"
	"github.com/sstent/fittracker/internal/sync"
	"github.com/sstent/fittracker/internal/training"
)

const defaultLimit = 50

type Recorder interface {
	Record(ctx context.Context, pkg training.Package, source string) (*database.Workout, error)
	Sync(ctx context.Context) (sync.Result, error)
}

type WebHandler struct {
	db     database.Database
	syncer Recorder
	logger *slog.Logger
}

type workoutResponse struct {
	*database.Workout
	Message string `json:"message"`
}

func NewWebHandler(db database.Database, syncer Recorder, logger *slog.Logger) *WebHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebHandler{
		db:     db,
		syncer: syncer,
		logger: logger,
	}
}

// NewRouter builds the gin engine serving the API.
func NewRouter(h *WebHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

func (h *WebHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/trainings", h.CreateTraining)
	api.GET("/trainings", h.TrainingList)
	api.GET("/trainings/:id", h.TrainingDetail)
	api.GET("/stats", h.Stats)
	api.POST("/sync", h.Sync)
}

func (h *WebHandler) CreateTraining(c *gin.Context) {
	var pkg training.Package
	if err := c.ShouldBindJSON(&pkg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workout, err := h.syncer.Record(c.Request.Context(), pkg, sync.SourceAPI)
	if err != nil {
		if isPackageError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to record training", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, workoutResponse{Workout: workout, Message: workout.Info().Message()})
}

func (h *WebHandler) TrainingList(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultLimit, 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offset, err := queryInt(c, "offset", 0, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := c.Query("type")
	if kind != "" {
		if _, err := training.ParseKind(kind); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	workouts, err := h.db.FilterWorkouts(c.Request.Context(), database.WorkoutFilters{
		Kind:      kind,
		Source:    c.Query("source"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	})
	if err != nil {
		h.logger.Error("failed to list trainings", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if workouts == nil {
		workouts = []database.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WebHandler) TrainingDetail(c *gin.Context) {
	workout, err := h.db.GetWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get training", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, workoutResponse{Workout: workout, Message: workout.Info().Message()})
}

func (h *WebHandler) Stats(c *gin.Context) {
	stats, err := h.db.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get stats", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *WebHandler) Sync(c *gin.Context) {
	result, err := h.syncer.Sync(c.Request.Context())
	if err != nil {
		h.logger.Error("sync failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func isPackageError(err error) bool {
	return errors.Is(err, training.ErrUnknownWorkoutType) ||
		errors.Is(err, training.ErrInvalidParameterCount) ||
		errors.Is(err, training.ErrInvalidParameter)
}

// queryInt reads an optional integer query parameter no smaller than lowest.
func queryInt(c *gin.Context, name string, def, lowest int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lowest {
		return 0, fmt.Errorf("%s must be an integer >= %d, got %q", name, lowest, raw)
	}
	return v, nil
}
