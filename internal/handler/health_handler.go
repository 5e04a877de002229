package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doc-intel-go/internal/service"
)

const serviceBanner = "Document Intelligence Backend"

// HealthHandler 提供存活与依赖状态检查。
type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler 创建一个新的 HealthHandler 实例。
func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Root 同时服务 / 与 /health。
func (h *HealthHandler) Root(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	db := "unavailable"
	if report.DatabaseOK {
		db = "ok"
	}
	c.JSON(http.StatusOK, gin.H{"message": serviceBanner, "db": db})
}

// Test 报告后端、数据库以及各可选依赖的状态。
func (h *HealthHandler) Test(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	database := service.StatusNotAvailable
	if report.DatabaseOK {
		database = service.StatusConnected
	}
	body := gin.H{"backend": "running", "database": database}
	for name, status := range report.Dependencies {
		body[name] = status
	}
	c.JSON(http.StatusOK, body)
}
