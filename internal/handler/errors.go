// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"doc-intel-go/internal/repository"
	"doc-intel-go/internal/service"
	"doc-intel-go/pkg/log"
)

// 错误响应中的固定消息。
const (
	msgStoreUnavailable = "Database not available"
	msgNotFound         = "Not found"
	msgInternal         = "Internal server error"
)

// respondError 将业务错误映射为 HTTP 状态码与 {"error": msg} 响应体。
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrStoreUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgStoreUnavailable})
	case errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, service.ErrEmptyQuery), errors.Is(err, service.ErrNoFiles):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrArchiveDisabled), errors.Is(err, service.ErrFulltextDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Errorf("%s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}
