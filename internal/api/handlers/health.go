package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/udyamlens/udyamlens/internal/database"
	"github.com/udyamlens/udyamlens/internal/narrative"
)

var startTime = time.Now()

// HealthHandler reports service and system health.
type HealthHandler struct {
	db        *database.PostgresDB
	redis     *database.RedisClient
	narrative *narrative.Client
	version   string
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Services  map[string]string `json:"services"`
	System    SystemStats       `json:"system"`
}

type SystemStats struct {
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	CPUPercent        float64 `json:"cpu_percent"`
}

func NewHealthHandler(db *database.PostgresDB, redis *database.RedisClient, narrativeClient *narrative.Client, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		narrative: narrativeClient,
		version:   version,
	}
}

// HealthCheck reports dependency status and basic host stats.
// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	services := make(map[string]string)

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			services["database"] = "unhealthy: " + err.Error()
		} else {
			services["database"] = "healthy"
		}
	} else {
		services["database"] = "unhealthy: not configured"
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			services["redis"] = "unhealthy: " + err.Error()
		} else {
			services["redis"] = "healthy"
		}
	} else {
		services["redis"] = "unhealthy: not configured"
	}

	// The narrative service is optional; not configured is not a failure.
	if h.narrative != nil && h.narrative.Enabled() {
		services["narrative"] = "configured"
	} else {
		services["narrative"] = "disabled"
	}

	status := "healthy"
	for name, s := range services {
		if name == "narrative" {
			continue
		}
		if s != "healthy" {
			status = "unhealthy"
			break
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.version,
		Uptime:    time.Since(startTime).String(),
		Services:  services,
		System:    systemStats(),
	})
}

// LivenessCheck only confirms the process responds.
// GET /health/live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func systemStats() SystemStats {
	var stats SystemStats
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryUsedPercent = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	return stats
}
