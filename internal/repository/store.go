// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"doc-intel-go/internal/model"
)

// ErrStoreUnavailable 表示持久化存储未连接。
var ErrStoreUnavailable = errors.New("store unavailable")

// NativeID 将边界上的字符串标识转换为存储使用的规范 UUID 形式。
// 无法解析时返回 false，调用方应退回到按原始字符串匹配。
func NativeID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// lookupID 优先使用规范 UUID，失败时退回原始字符串。
func lookupID(id string) string {
	if native, ok := NativeID(id); ok {
		return native
	}
	return id
}

// Migrate 创建或更新 documents 与 chunks 表结构。
func Migrate(db *gorm.DB) error {
	if db == nil {
		return ErrStoreUnavailable
	}
	return db.AutoMigrate(&model.Document{}, &model.Chunk{})
}
