package service

import (
	"context"
	"errors"
	"time"

	"doc-intel-go/internal/model"
	"doc-intel-go/internal/repository"
	"doc-intel-go/pkg/events"
	"doc-intel-go/pkg/log"
	"doc-intel-go/pkg/storage"
)

// DownloadURLExpiry 是预签名下载链接的有效期。
const DownloadURLExpiry = time.Hour

// DownloadInfoDTO 封装了文件下载链接所需的信息。
type DownloadInfoDTO struct {
	FileName    string `json:"fileName"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int    `json:"expiresIn"`
}

// DocumentService 接口定义了文档管理相关的业务操作。
type DocumentService interface {
	List(ctx context.Context) ([]model.Document, error)
	Delete(ctx context.Context, id string) error
	DownloadURL(ctx context.Context, id string) (*DownloadInfoDTO, error)
}

type documentService struct {
	docRepo   repository.DocumentRepository
	chunkRepo repository.ChunkRepository
	archive   FileArchive
	publisher EventPublisher
}

// NewDocumentService 创建一个新的 DocumentService 实例。archive 与 publisher 可以为 nil。
func NewDocumentService(docRepo repository.DocumentRepository, chunkRepo repository.ChunkRepository, archive FileArchive, publisher EventPublisher) DocumentService {
	return &documentService{
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
		archive:   archive,
		publisher: publisher,
	}
}

// List 返回全部文档。
func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	docs, err := s.docRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []model.Document{}
	}
	return docs, nil
}

// Delete 删除文档及其全部分块。
// 无论文档是否存在都会删除 doc_id 匹配的分块；没有文档被删除时返回 ErrDocumentNotFound。
func (s *documentService) Delete(ctx context.Context, id string) error {
	// 归档对象名需要标题，删除前先取出
	var title string
	if s.archive != nil {
		if doc, err := s.docRepo.FindByID(ctx, id); err == nil {
			title = doc.Title
		}
	}

	deleted, err := s.docRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	removed, chunkErr := s.chunkRepo.DeleteByDocID(ctx, id)
	if chunkErr != nil {
		log.Errorf("删除文档分块失败: doc_id=%s, err=%v", id, chunkErr)
	}
	if deleted == 0 {
		return errors.Join(ErrDocumentNotFound, chunkErr)
	}
	if chunkErr != nil {
		return chunkErr
	}
	log.Infof("文档删除成功: doc_id=%s, 分块数=%d", id, removed)

	docID := id
	if native, ok := repository.NativeID(id); ok {
		docID = native
	}
	if s.archive != nil && title != "" {
		if err := s.archive.Remove(ctx, storage.ObjectName(docID, title)); err != nil {
			log.Warnf("删除归档文件失败: doc_id=%s, err=%v", docID, err)
		}
	}
	publishEvent(ctx, s.publisher, events.DocumentEvent{
		Type:  events.TypeDocumentDeleted,
		DocID: docID,
		Title: title,
		At:    now().UTC(),
	})
	return nil
}

// DownloadURL 为文档的原始文件生成预签名下载链接。
func (s *documentService) DownloadURL(ctx context.Context, id string) (*DownloadInfoDTO, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.archive.PresignedURL(ctx, storage.ObjectName(doc.ID, doc.Title), doc.Title, DownloadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &DownloadInfoDTO{
		FileName:    doc.Title,
		DownloadURL: url,
		ExpiresIn:   int(DownloadURLExpiry.Seconds()),
	}, nil
}
