// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"doc-intel-go/pkg/log"
)

// RequestLogger 是一个 Gin 中间件，记录每个请求的摘要信息。
// 上传请求体可能很大，这里只记录字节数，不记录内容。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		log.Infow("HTTP Request Log",
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"requestBytes", c.Request.ContentLength,
			"responseBytes", c.Writer.Size(),
			"errors", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
