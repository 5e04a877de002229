package main

import (
	"context"
	"os"
	"path/filepath"

	"doc-intel-go/internal/service"
	"doc-intel-go/pkg/log"
)

// seedDocuments 扫描目录下的文件并通过正常摄取流程导入。
// 标题已存在的文件会被跳过，重复启动不会产生重复文档。
func seedDocuments(ctx context.Context, dir string, docs service.DocumentService, ingest service.IngestService) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Infof("seedDocuments: 目录 '%s' 不存在或不可用，跳过初始化导入", dir)
		return
	}

	existing, err := docs.List(ctx)
	if err != nil {
		log.Warnf("seedDocuments: 读取已有文档失败，跳过初始化导入: %v", err)
		return
	}
	seen := make(map[string]bool, len(existing))
	for _, d := range existing {
		seen[d.Title] = true
	}

	walkErr := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := d.Name()
		if seen[name] {
			log.Infof("seedDocuments: 已存在，跳过: %s", name)
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("seedDocuments: 读取文件失败: %s, err=%v", path, err)
			return nil
		}
		if _, err := ingest.Ingest(ctx, []service.UploadedFile{{Name: name, Data: data}}); err != nil {
			log.Warnf("seedDocuments: 导入失败: %s, err=%v", path, err)
			return nil
		}
		seen[name] = true
		log.Infof("seedDocuments: 导入完成: %s", name)
		return nil
	})
	if walkErr != nil {
		log.Warnf("seedDocuments: 遍历目录发生错误: %v", walkErr)
	}
}
