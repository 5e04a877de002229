package service

import (
	"context"

	"doc-intel-go/internal/model"
	"doc-intel-go/internal/retrieval"
)

// FulltextSearcher 在关键词镜像上执行检索，由 pkg/es 实现。
type FulltextSearcher interface {
	Search(ctx context.Context, query string, size int) ([]model.Match, error)
}

// SearchService 接口定义了检索相关的业务操作。
type SearchService interface {
	Search(ctx context.Context, query string, topK int) (*model.SearchResponse, error)
	Fulltext(ctx context.Context, query string, topK int) ([]model.Match, error)
}

type searchService struct {
	retriever *retrieval.Retriever
	fulltext  FulltextSearcher
}

// NewSearchService 创建一个新的 SearchService 实例。fulltext 可以为 nil。
func NewSearchService(retriever *retrieval.Retriever, fulltext FulltextSearcher) SearchService {
	return &searchService{retriever: retriever, fulltext: fulltext}
}

// Search 执行稀疏向量检索。topK <= 0 时返回空结果。
func (s *searchService) Search(ctx context.Context, query string, topK int) (*model.SearchResponse, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.retriever.Search(ctx, query, topK)
}

// Fulltext 在 Elasticsearch 镜像上执行关键词检索。
func (s *searchService) Fulltext(ctx context.Context, query string, topK int) ([]model.Match, error) {
	if s.fulltext == nil {
		return nil, ErrFulltextDisabled
	}
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		return []model.Match{}, nil
	}
	return s.fulltext.Search(ctx, query, topK)
}
