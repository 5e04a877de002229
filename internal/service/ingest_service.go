package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"doc-intel-go/internal/model"
	"doc-intel-go/internal/repository"
	"doc-intel-go/internal/retrieval"
	"doc-intel-go/pkg/events"
	"doc-intel-go/pkg/log"
	"doc-intel-go/pkg/storage"
)

// UploadedFile 是一次摄取请求中的单个文件。
type UploadedFile struct {
	Name string
	Data []byte
}

// IngestService 接口定义了文档摄取的业务操作。
type IngestService interface {
	Ingest(ctx context.Context, files []UploadedFile) (int, error)
}

type ingestService struct {
	docRepo   repository.DocumentRepository
	indexer   *retrieval.Indexer
	archive   FileArchive
	publisher EventPublisher
}

// NewIngestService 创建一个新的 IngestService 实例。archive 与 publisher 可以为 nil。
func NewIngestService(docRepo repository.DocumentRepository, indexer *retrieval.Indexer, archive FileArchive, publisher EventPublisher) IngestService {
	return &ingestService{
		docRepo:   docRepo,
		indexer:   indexer,
		archive:   archive,
		publisher: publisher,
	}
}

// DecodeText 以 UTF-8 解码内容，丢弃非法字节。
func DecodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// Ingest 依次处理每个文件，返回成功写入的文档数。
// 请求校验先于存储检查：没有文件时总是返回 ErrNoFiles。
// 中途失败时，之前写入的文档和分块不会回滚。
func (s *ingestService) Ingest(ctx context.Context, files []UploadedFile) (int, error) {
	if len(files) == 0 {
		return 0, ErrNoFiles
	}

	inserted := 0
	for _, f := range files {
		tableCount := 0
		doc := &model.Document{
			Title:      f.Name,
			TableCount: &tableCount,
			Metadata:   datatypes.JSONMap{model.MetaKeySize: len(f.Data)},
		}
		docID, err := s.docRepo.Create(ctx, doc)
		if err != nil {
			return inserted, fmt.Errorf("failed to create document %q: %w", f.Name, err)
		}

		n, err := s.indexer.Index(ctx, docID, f.Name, DecodeText(f.Data))
		if err != nil {
			return inserted, err
		}
		log.Infof("文档摄取成功: doc_id=%s, title=%s, 分块数=%d", docID, f.Name, n)
		inserted++

		s.archiveFile(ctx, docID, f)
		s.publish(ctx, events.DocumentEvent{
			Type:   events.TypeDocumentIngested,
			DocID:  docID,
			Title:  f.Name,
			Chunks: n,
			At:     now().UTC(),
		})
	}
	return inserted, nil
}

func (s *ingestService) archiveFile(ctx context.Context, docID string, f UploadedFile) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Put(ctx, storage.ObjectName(docID, f.Name), f.Data); err != nil {
		log.Warnf("归档原始文件失败: doc_id=%s, err=%v", docID, err)
	}
}

func (s *ingestService) publish(ctx context.Context, event events.DocumentEvent) {
	publishEvent(ctx, s.publisher, event)
}

func publishEvent(ctx context.Context, publisher EventPublisher, event events.DocumentEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warnf("发布文档事件失败: type=%s, doc_id=%s, err=%v", event.Type, event.DocID, err)
	}
}
