package repository

import (
	"context"

	"gorm.io/gorm"

	"doc-intel-go/internal/model"
)

// ChunkRepository 定义了对 chunks 表的数据操作接口。
type ChunkRepository interface {
	InsertChunk(ctx context.Context, chunk *model.Chunk) error
	FindChunks(ctx context.Context, limit int) ([]model.Chunk, error)
	FindByDocID(ctx context.Context, docID string) ([]model.Chunk, error)
	DeleteByDocID(ctx context.Context, docID string) (int64, error)
}

type chunkRepository struct {
	db *gorm.DB
}

// NewChunkRepository 创建一个新的 ChunkRepository 实例。
func NewChunkRepository(db *gorm.DB) ChunkRepository {
	return &chunkRepository{db: db}
}

// InsertChunk 写入单个分块。
func (r *chunkRepository) InsertChunk(ctx context.Context, chunk *model.Chunk) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}
	return r.db.WithContext(ctx).Create(chunk).Error
}

// FindChunks 按写入顺序返回最多 limit 个分块，limit <= 0 表示不限制。
func (r *chunkRepository) FindChunks(ctx context.Context, limit int) ([]model.Chunk, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	var chunks []model.Chunk
	q := r.db.WithContext(ctx).Order("id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&chunks).Error
	return chunks, err
}

// FindByDocID 返回某个文档的全部分块。
func (r *chunkRepository) FindByDocID(ctx context.Context, docID string) ([]model.Chunk, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	var chunks []model.Chunk
	err := r.db.WithContext(ctx).Where("doc_id = ?", lookupID(docID)).Order("id asc").Find(&chunks).Error
	return chunks, err
}

// DeleteByDocID 删除某个文档的全部分块并返回删除数量。
func (r *chunkRepository) DeleteByDocID(ctx context.Context, docID string) (int64, error) {
	if r.db == nil {
		return 0, ErrStoreUnavailable
	}
	res := r.db.WithContext(ctx).Where("doc_id = ?", lookupID(docID)).Delete(&model.Chunk{})
	return res.RowsAffected, res.Error
}
