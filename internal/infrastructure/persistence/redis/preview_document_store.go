package redis

import (
	"context"
	"time"

	"z-comp-ai-api/internal/domain/repository"
	apperrors "z-comp-ai-api/pkg/errors"
)

const previewNamespace = "preview"

// PreviewDocumentStore 多实例共享的预览文档存储
type PreviewDocumentStore struct {
	client     *Client
	defaultTTL time.Duration
}

var _ repository.PreviewDocumentRepository = (*PreviewDocumentStore)(nil)

// NewPreviewDocumentStore 创建存储
func NewPreviewDocumentStore(client *Client, defaultTTL time.Duration) *PreviewDocumentStore {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &PreviewDocumentStore{client: client, defaultTTL: defaultTTL}
}

func (s *PreviewDocumentStore) Save(ctx context.Context, previewID, document string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	return s.client.Set(ctx, s.client.Key(previewNamespace, previewID), document, ttl)
}

func (s *PreviewDocumentStore) Get(ctx context.Context, previewID string) (string, error) {
	doc, err := s.client.Get(ctx, s.client.Key(previewNamespace, previewID))
	if err != nil {
		if IsNil(err) {
			return "", apperrors.ErrPreviewNotFound
		}
		return "", apperrors.Wrap(err, apperrors.CodeCacheError, "failed to load preview document")
	}
	return doc, nil
}

func (s *PreviewDocumentStore) Delete(ctx context.Context, previewID string) error {
	return s.client.Del(ctx, s.client.Key(previewNamespace, previewID))
}
