// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"time"

	"gorm.io/datatypes"
)

// 元数据中使用的键。
const (
	MetaKeySize  = "size"
	MetaKeyTitle = "title"
	MetaKeyChunk = "chunk"
)

// Document 对应于 documents 表，每个被摄入的文件对应一条记录。
// Pages 与 TableCount 为占位字段，摄入流程不会填充。
type Document struct {
	ID         string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title      string            `gorm:"type:varchar(255);not null" json:"title"`
	Pages      *int              `json:"pages"`
	TableCount *int              `gorm:"default:0" json:"table_count"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Document) TableName() string {
	return "documents"
}
