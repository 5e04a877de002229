package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"doc-intel-go/internal/model"
)

// ErrDocumentNotFound 表示按标识找不到文档。
var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository 接口定义了 documents 集合的数据操作。
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) (string, error)
	FindAll(ctx context.Context) ([]model.Document, error)
	FindByID(ctx context.Context, id string) (*model.Document, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository 创建一个新的 DocumentRepository 实例。db 为 nil 时所有操作返回 ErrStoreUnavailable。
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create 插入一条文档记录并返回存储生成的标识。
func (r *documentRepository) Create(ctx context.Context, doc *model.Document) (string, error) {
	if r.db == nil {
		return "", ErrStoreUnavailable
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return "", err
	}
	return doc.ID, nil
}

// FindAll 返回全部文档记录，按创建时间升序。
func (r *documentRepository) FindAll(ctx context.Context) ([]model.Document, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	var docs []model.Document
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&docs).Error
	return docs, err
}

// FindByID 根据标识查找文档。
func (r *documentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	var doc model.Document
	err := r.db.WithContext(ctx).Where("id = ?", lookupID(id)).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteByID 删除一条文档记录并返回删除数量。
// 标识能解析为 UUID 时按规范形式删除，否则按原始字符串删除。
func (r *documentRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	if r.db == nil {
		return 0, ErrStoreUnavailable
	}
	res := r.db.WithContext(ctx).Where("id = ?", lookupID(id)).Delete(&model.Document{})
	return res.RowsAffected, res.Error
}
