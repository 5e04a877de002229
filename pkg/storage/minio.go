// Package storage 提供了与对象存储服务（MinIO）交互的功能，用于归档原始上传文件。
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"doc-intel-go/internal/config"
	"doc-intel-go/pkg/log"
)

// Archive 封装了 MinIO 客户端与存储桶。
type Archive struct {
	client *minio.Client
	bucket string
}

// ObjectName 返回文档原始文件在存储桶中的对象名。
func ObjectName(docID, fileName string) string {
	return fmt.Sprintf("documents/%s/%s", docID, fileName)
}

// InitMinIO 初始化 MinIO 客户端并确保指定的存储桶存在。
func InitMinIO(ctx context.Context, cfg config.MinIOConfig) (*Archive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 客户端失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查 MinIO 存储桶失败: %w", err)
	}
	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建 MinIO 存储桶失败: %w", err)
		}
	}
	log.Infof("MinIO 客户端初始化成功, bucket: %s", cfg.BucketName)
	return &Archive{client: client, bucket: cfg.BucketName}, nil
}

// Put 上传对象内容。
func (a *Archive) Put(ctx context.Context, objectName string, data []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	return err
}

// Remove 删除一个对象。
func (a *Archive) Remove(ctx context.Context, objectName string) error {
	return a.client.RemoveObject(ctx, a.bucket, objectName, minio.RemoveObjectOptions{})
}

// PresignedURL 生成对象的临时下载链接。
func (a *Archive) PresignedURL(ctx context.Context, objectName, fileName string, expiry time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	u, err := a.client.PresignedGetObject(ctx, a.bucket, objectName, expiry, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Ping 检查存储桶是否可访问。
func (a *Archive) Ping(ctx context.Context) error {
	_, err := a.client.BucketExists(ctx, a.bucket)
	return err
}
