// Package pipeline 定义了把文档生命周期事件同步到全文检索镜像的处理流程。
package pipeline

import (
	"context"
	"fmt"

	"doc-intel-go/internal/model"
	"doc-intel-go/pkg/es"
	"doc-intel-go/pkg/events"
	"doc-intel-go/pkg/log"
)

// ChunkSource 按文档读取已存储的分块。
type ChunkSource interface {
	FindByDocID(ctx context.Context, docID string) ([]model.Chunk, error)
}

// KeywordIndex 是全文检索镜像的写接口。
type KeywordIndex interface {
	IndexChunk(ctx context.Context, doc model.EsChunk) error
	DeleteByDocID(ctx context.Context, docID string) error
}

// Processor 封装了镜像同步的所有依赖和逻辑。
type Processor struct {
	chunks ChunkSource
	index  KeywordIndex
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(chunks ChunkSource, index KeywordIndex) *Processor {
	return &Processor{chunks: chunks, index: index}
}

// Handle 处理一条文档事件。未知类型的事件直接忽略。
func (p *Processor) Handle(ctx context.Context, event events.DocumentEvent) error {
	switch event.Type {
	case events.TypeDocumentIngested:
		return p.mirror(ctx, event)
	case events.TypeDocumentDeleted:
		log.Infof("[Processor] 删除镜像分块, doc_id: %s", event.DocID)
		if err := p.index.DeleteByDocID(ctx, event.DocID); err != nil {
			return fmt.Errorf("删除镜像分块失败: %w", err)
		}
		return nil
	default:
		log.Warnf("[Processor] 忽略未知事件类型: %s", event.Type)
		return nil
	}
}

func (p *Processor) mirror(ctx context.Context, event events.DocumentEvent) error {
	log.Infof("[Processor] 开始镜像文档, doc_id: %s, title: %s", event.DocID, event.Title)

	// 先清理旧记录，重复投递时保持幂等
	if err := p.index.DeleteByDocID(ctx, event.DocID); err != nil {
		log.Warnf("[Processor] 清理旧镜像失败 (doc_id=%s): %v", event.DocID, err)
	}

	chunks, err := p.chunks.FindByDocID(ctx, event.DocID)
	if err != nil {
		return fmt.Errorf("从数据库读取分块失败: %w", err)
	}

	for i, c := range chunks {
		title := event.Title
		if t, ok := c.Metadata[model.MetaKeyTitle].(string); ok && t != "" {
			title = t
		}
		n := metaInt(c.Metadata[model.MetaKeyChunk], i)
		doc := model.EsChunk{
			ChunkKey: es.ChunkKey(event.DocID, n),
			DocID:    event.DocID,
			Title:    title,
			Chunk:    n,
			Text:     c.Text,
		}
		if err := p.index.IndexChunk(ctx, doc); err != nil {
			return fmt.Errorf("索引块 %d 失败: %w", n, err)
		}
	}

	log.Infof("[Processor] 文档镜像完成, doc_id: %s, 分块数: %d", event.DocID, len(chunks))
	return nil
}

// metaInt 读取元数据中的整数。JSON 解码后数字是 float64。
func metaInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}
