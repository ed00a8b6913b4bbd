// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"
)

// PreviewDocumentRepository 预览文档存储，供沙箱 iframe 按 id 拉取
type PreviewDocumentRepository interface {
	// Save 保存文档；ttl <= 0 时使用实现的默认过期
	Save(ctx context.Context, previewID, document string, ttl time.Duration) error
	// Get 不存在时返回 errors.ErrPreviewNotFound
	Get(ctx context.Context, previewID string) (string, error)
	Delete(ctx context.Context, previewID string) error
}
