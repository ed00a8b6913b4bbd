package panel

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"z-comp-ai-api/internal/application/generation"
	apperrors "z-comp-ai-api/pkg/errors"
)

// DefaultIdleTTL 面板空闲过期时间
const DefaultIdleTTL = time.Hour

// Store 进程内面板存储，访问即续期
type Store struct {
	items       *cache.Cache
	transformer generation.Transformer
	opts        Options
}

// NewStore 创建面板存储
func NewStore(transformer generation.Transformer, opts Options, idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Store{
		items:       cache.New(idleTTL, idleTTL/2),
		transformer: transformer,
		opts:        opts,
	}
}

// Create 新建面板
func (s *Store) Create() *Panel {
	p := New(uuid.NewString(), s.transformer, s.opts)
	s.items.SetDefault(p.ID(), p)
	return p
}

// Get 获取面板并续期
func (s *Store) Get(id string) (*Panel, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, apperrors.ErrPanelNotFound
	}
	p := v.(*Panel)
	s.items.SetDefault(id, p)
	return p, nil
}

// Delete 删除面板
func (s *Store) Delete(id string) {
	s.items.Delete(id)
}

// Len 当前面板数
func (s *Store) Len() int {
	return s.items.ItemCount()
}
