package retrieval

import (
	"context"
	"fmt"

	"doc-intel-go/internal/model"
)

// ChunkWriter 逐条写入分块。
type ChunkWriter interface {
	InsertChunk(ctx context.Context, chunk *model.Chunk) error
}

// Indexer 对文档文本切块、向量化并逐条持久化。
type Indexer struct {
	chunks    ChunkWriter
	chunkSize int
}

// NewIndexer 创建一个新的 Indexer 实例。chunkSize <= 0 时使用 DefaultChunkSize。
func NewIndexer(chunks ChunkWriter, chunkSize int) *Indexer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Indexer{chunks: chunks, chunkSize: chunkSize}
}

// Index 写入 docID 对应文本的全部分块，返回写入数量。
// 中途失败时已写入的分块不会回滚。
func (ix *Indexer) Index(ctx context.Context, docID, title, text string) (int, error) {
	pieces := ChunkAndVectorize(text, ix.chunkSize)
	for i, p := range pieces {
		chunk := &model.Chunk{
			DocID:     docID,
			Text:      p.Text,
			Embedding: p.Vector,
			Metadata: map[string]interface{}{
				model.MetaKeyTitle: title,
				model.MetaKeyChunk: i,
			},
		}
		if err := ix.chunks.InsertChunk(ctx, chunk); err != nil {
			return i, fmt.Errorf("failed to insert chunk %d of document %s: %w", i, docID, err)
		}
	}
	return len(pieces), nil
}
