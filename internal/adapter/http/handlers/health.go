package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/internal/adapter/http/middleware"
)

const (
	StatusOk           = "ok"
	StatusDown         = "down"
	StatusDisabled     = "disabled"
	healthCheckTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Mysql string `json:"mysql"`
	Redis string `json:"redis"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

// NewHealthHandler accepts a nil redis client when caching is disabled.
func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	statusCode := http.StatusOK
	message := StatusOk

	if !h.checkConnectionToDatabase(ctx) {
		statusCode = http.StatusServiceUnavailable
		message = StatusDown
	}

	c.JSON(statusCode, dto.Envelope{
		Success: statusCode == http.StatusOK,
		Data: HealthBasic{
			AppName:           os.Getenv("APP_NAME"),
			AppVersion:        getAppVersion(),
			CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
			Message:           message,
		},
		Message: message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	databaseStatus := StatusDown
	if h.checkConnectionToDatabase(ctx) {
		databaseStatus = StatusOk
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Data: HealthAdvanced{
			AppName:           os.Getenv("APP_NAME"),
			AppVersion:        getAppVersion(),
			CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
			Language:          middleware.GetLang(c),
			Status: HealthServices{
				Mysql: databaseStatus,
				Redis: h.redisStatus(ctx),
			},
		},
		Message: StatusOk,
	})
}

func (h *HealthHandler) checkConnectionToDatabase(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	// Avoid hanging health checks if the database stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return h.db.PingContext(timeoutCtx) == nil
}

func (h *HealthHandler) redisStatus(ctx context.Context) string {
	if h.redis == nil {
		return StatusDisabled
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := h.redis.Ping(timeoutCtx).Err(); err != nil {
		return StatusDown
	}
	return StatusOk
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
