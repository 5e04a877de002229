package retrieval

import (
	"context"
	"fmt"

	"doc-intel-go/internal/model"
)

// DefaultScanLimit 是每次查询最多扫描的分块数。
const DefaultScanLimit = 2000

// ChunkReader 按存储顺序读取最多 limit 个分块。
type ChunkReader interface {
	FindChunks(ctx context.Context, limit int) ([]model.Chunk, error)
}

// Options 控制检索的扫描上限与截断长度，零值使用默认值。
type Options struct {
	ScanLimit       int
	SnippetMaxChars int
	AnswerMaxChars  int
}

func (o Options) withDefaults() Options {
	if o.ScanLimit <= 0 {
		o.ScanLimit = DefaultScanLimit
	}
	if o.SnippetMaxChars <= 0 {
		o.SnippetMaxChars = DefaultSnippetMaxChars
	}
	if o.AnswerMaxChars <= 0 {
		o.AnswerMaxChars = DefaultAnswerMaxChars
	}
	return o
}

// Retriever 在存储的分块上执行稀疏向量检索。
type Retriever struct {
	chunks ChunkReader
	opts   Options
}

// NewRetriever 创建一个新的 Retriever 实例。
func NewRetriever(chunks ChunkReader, opts Options) *Retriever {
	return &Retriever{chunks: chunks, opts: opts.withDefaults()}
}

// Search 将查询向量化，扫描至多 ScanLimit 个分块并返回排序后的命中与拼接回答。
func (r *Retriever) Search(ctx context.Context, query string, topK int) (*model.SearchResponse, error) {
	candidates, err := r.chunks.FindChunks(ctx, r.opts.ScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate chunks: %w", err)
	}

	matches := Rank(Vectorize(query), candidates, topK, r.opts.SnippetMaxChars)
	return &model.SearchResponse{
		Matches: matches,
		Answer:  model.Answer{Text: SynthesizeAnswer(matches, r.opts.AnswerMaxChars)},
	}, nil
}
