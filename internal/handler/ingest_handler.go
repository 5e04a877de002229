package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"doc-intel-go/internal/service"
	"doc-intel-go/pkg/log"
)

// IngestHandler 负责处理文档上传摄取的请求。
type IngestHandler struct {
	ingestService service.IngestService
}

// NewIngestHandler 创建一个新的 IngestHandler 实例。
func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// Ingest 处理 multipart 上传，表单字段 files 可以重复。
func (h *IngestHandler) Ingest(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 multipart 请求"})
		return
	}

	headers := form.File["files"]
	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取上传文件"})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取上传文件"})
			return
		}
		files = append(files, service.UploadedFile{Name: fh.Filename, Data: data})
	}

	inserted, err := h.ingestService.Ingest(c.Request.Context(), files)
	if err != nil {
		respondError(c, "Ingest", err)
		return
	}
	log.Infof("[IngestHandler] 摄取完成, 文档数: %d", inserted)
	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}
