// Package memory 提供进程内存储实现，Redis 未启用时使用
package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"z-comp-ai-api/internal/domain/repository"
	apperrors "z-comp-ai-api/pkg/errors"
)

// PreviewDocumentStore 基于 go-cache 的预览文档存储
type PreviewDocumentStore struct {
	items *cache.Cache
}

var _ repository.PreviewDocumentRepository = (*PreviewDocumentStore)(nil)

// NewPreviewDocumentStore 创建存储；defaultTTL 用于未指定 ttl 的写入
func NewPreviewDocumentStore(defaultTTL time.Duration) *PreviewDocumentStore {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &PreviewDocumentStore{
		items: cache.New(defaultTTL, defaultTTL/2),
	}
}

func (s *PreviewDocumentStore) Save(_ context.Context, previewID, document string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	s.items.Set(previewID, document, ttl)
	return nil
}

func (s *PreviewDocumentStore) Get(_ context.Context, previewID string) (string, error) {
	v, ok := s.items.Get(previewID)
	if !ok {
		return "", apperrors.ErrPreviewNotFound
	}
	return v.(string), nil
}

func (s *PreviewDocumentStore) Delete(_ context.Context, previewID string) error {
	s.items.Delete(previewID)
	return nil
}
