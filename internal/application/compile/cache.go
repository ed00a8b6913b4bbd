package compile

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"z-comp-ai-api/pkg/metrics"
)

// compileOutcome 缓存项，成功与失败都会被记住
type compileOutcome struct {
	script string
	err    error
}

// CachedCompiler 以源码摘要为键的编译结果缓存
type CachedCompiler struct {
	inner Compiler
	memo  *cache.Cache
	group singleflight.Group
}

// NewCachedCompiler 包装编译器；ttl <= 0 时不过期
func NewCachedCompiler(inner Compiler, ttl time.Duration) *CachedCompiler {
	expiration := ttl
	if expiration <= 0 {
		expiration = cache.NoExpiration
	}
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &CachedCompiler{
		inner: inner,
		memo:  cache.New(expiration, cleanup),
	}
}

// Compile 同一源码并发请求只编译一次
func (c *CachedCompiler) Compile(source string) (string, error) {
	key := sourceKey(source)
	if v, ok := c.memo.Get(key); ok {
		metrics.CompileCacheHits.Inc()
		out := v.(compileOutcome)
		return out.script, out.err
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		script, err := c.inner.Compile(source)
		out := compileOutcome{script: script, err: err}
		c.memo.SetDefault(key, out)
		return out, nil
	})
	out := v.(compileOutcome)
	return out.script, out.err
}

// Len 当前缓存条目数
func (c *CachedCompiler) Len() int {
	return c.memo.ItemCount()
}

func sourceKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
