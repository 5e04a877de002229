package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doc-intel-go/internal/service"
	"doc-intel-go/pkg/log"
)

// SearchHandler 结构体定义了搜索相关的处理器。
type SearchHandler struct {
	searchService service.SearchService
	defaultTopK   int
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService, defaultTopK int) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		defaultTopK:   defaultTopK,
	}
}

// Search 处理稀疏向量检索请求。
func (h *SearchHandler) Search(c *gin.Context) {
	query, topK, ok := h.parseParams(c)
	if !ok {
		return
	}

	res, err := h.searchService.Search(c.Request.Context(), query, topK)
	if err != nil {
		respondError(c, "Search", err)
		return
	}
	log.Infof("[SearchHandler] 检索成功, query: '%s', 返回 %d 条结果", query, len(res.Matches))
	c.JSON(http.StatusOK, res)
}

// Fulltext 处理 Elasticsearch 镜像上的关键词检索请求。
func (h *SearchHandler) Fulltext(c *gin.Context) {
	query, topK, ok := h.parseParams(c)
	if !ok {
		return
	}

	matches, err := h.searchService.Fulltext(c.Request.Context(), query, topK)
	if err != nil {
		respondError(c, "Fulltext", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// parseParams 读取 query 与 top_k。失败时已写入 400 响应。
func (h *SearchHandler) parseParams(c *gin.Context) (string, int, bool) {
	query := c.Query("query")
	if query == "" {
		log.Warnf("[SearchHandler] 搜索请求失败: query 参数为空")
		c.JSON(http.StatusBadRequest, gin.H{"error": "query 参数不能为空"})
		return "", 0, false
	}

	topK := h.defaultTopK
	if raw, ok := c.GetQuery("top_k"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top_k 必须是非负整数"})
			return "", 0, false
		}
		topK = n
	}
	return query, topK, true
}
