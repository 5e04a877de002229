// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"time"

	"doc-intel-go/internal/repository"
	"doc-intel-go/pkg/events"
)

var (
	// ErrDocumentNotFound 表示没有文档被找到或删除。
	ErrDocumentNotFound = repository.ErrDocumentNotFound
	// ErrEmptyQuery 表示查询字符串为空。
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrNoFiles 表示一次摄取请求没有携带任何文件。
	ErrNoFiles = errors.New("no files provided")
	// ErrArchiveDisabled 表示未启用原始文件归档。
	ErrArchiveDisabled = errors.New("file archive is disabled")
	// ErrFulltextDisabled 表示未启用全文检索镜像。
	ErrFulltextDisabled = errors.New("fulltext search is disabled")
)

// FileArchive 是原始文件归档的能力，由 pkg/storage 实现。
type FileArchive interface {
	Put(ctx context.Context, objectName string, data []byte) error
	Remove(ctx context.Context, objectName string) error
	PresignedURL(ctx context.Context, objectName, fileName string, expiry time.Duration) (string, error)
}

// EventPublisher 发布文档生命周期事件，由 pkg/kafka 实现。
type EventPublisher interface {
	Publish(ctx context.Context, event events.DocumentEvent) error
}

// now 便于测试替换。
var now = time.Now
