package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doc-intel-go/internal/service"
)

// DocumentHandler 负责处理所有与文档管理相关的 API 请求。
type DocumentHandler struct {
	docService service.DocumentService
}

// NewDocumentHandler 创建一个新的 DocumentHandler 实例。
func NewDocumentHandler(docService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// List 返回全部文档记录。
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docService.List(c.Request.Context())
	if err != nil {
		respondError(c, "ListDocuments", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Delete 删除一个文档及其分块。
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.docService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "DeleteDocument", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Download 返回原始文件的预签名下载链接。
func (h *DocumentHandler) Download(c *gin.Context) {
	info, err := h.docService.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "DownloadDocument", err)
		return
	}
	c.JSON(http.StatusOK, info)
}
