package preview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-comp-ai-api/internal/application/compile"
	"z-comp-ai-api/internal/domain/entity"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/metrics"
)

type fakeDocs struct {
	mu      sync.Mutex
	docs    map[string]string
	saveErr error
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{docs: map[string]string{}}
}

func (f *fakeDocs) Save(_ context.Context, id, doc string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.docs[id] = doc
	return nil
}

func (f *fakeDocs) Get(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return "", apperrors.ErrPreviewNotFound
	}
	return doc, nil
}

func (f *fakeDocs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func newTestService(docs *fakeDocs) *Service {
	compiler := compile.NewCachedCompiler(compile.NewAdapter(compile.Options{VerifyExportShape: true}), time.Minute)
	return NewService(compiler, NewAssembler(RuntimeConfig{}, ""), docs, ServiceConfig{
		ExitTransition: 20 * time.Millisecond,
		DocumentTTL:    time.Minute,
	})
}

func TestService_OpenAndDismiss(t *testing.T) {
	ctx := context.Background()
	docs := newFakeDocs()
	svc := newTestService(docs)
	defer svc.Close()

	id, state, err := svc.Open(ctx, "<h1>Hello</h1>", framework(t, "HTML & CSS"))
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, entity.PhaseHTMLPassthrough, state.Phase)

	doc, err := svc.Document(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hello</h1>", doc)

	state, err = svc.SetViewMode(id, entity.ViewMobile)
	require.NoError(t, err)
	assert.Equal(t, entity.ViewMobile, state.ViewMode)

	state, err = svc.Dismiss(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseClosing, state.Phase)

	_, err = svc.Dismiss(ctx, id)
	assert.True(t, errors.Is(err, apperrors.ErrDismissInProgress))

	require.Eventually(t, func() bool {
		_, err := svc.Get(id)
		return errors.Is(err, apperrors.ErrPreviewNotFound)
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Document(ctx, id)
	assert.True(t, errors.Is(err, apperrors.ErrPreviewNotFound))
}

func TestService_ReloadDropsDocument(t *testing.T) {
	ctx := context.Background()
	docs := newFakeDocs()
	svc := newTestService(docs)
	defer svc.Close()

	id, _, err := svc.Open(ctx, "function Component() { return <b>hi</b>; }", framework(t, "JSX with TailwindCSS"))
	require.NoError(t, err)
	_, err = svc.Document(ctx, id)
	require.NoError(t, err)

	state, err := svc.Reload(ctx, id, "void main() {}", framework(t, "Dart & Flutter"))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseUnsupported, state.Phase)

	_, err = svc.Document(ctx, id)
	assert.True(t, errors.Is(err, apperrors.ErrPreviewNotFound))
}

func TestService_UnknownPreview(t *testing.T) {
	svc := newTestService(newFakeDocs())
	defer svc.Close()

	_, err := svc.Get("nope")
	assert.True(t, errors.Is(err, apperrors.ErrPreviewNotFound))
	_, err = svc.SetViewMode("nope", entity.ViewTablet)
	assert.True(t, errors.Is(err, apperrors.ErrPreviewNotFound))
	_, err = svc.Dismiss(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperrors.ErrPreviewNotFound))
}

func TestService_OpenRejectsEmptyCode(t *testing.T) {
	svc := newTestService(newFakeDocs())
	defer svc.Close()

	_, _, err := svc.Open(context.Background(), "", framework(t, "HTML & CSS"))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParam))
}

func openPreviews(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.PreviewsOpen.Write(&m))
	return m.GetGauge().GetValue()
}

func TestService_OpenStoreFailureKeepsGauge(t *testing.T) {
	docs := newFakeDocs()
	docs.saveErr = errors.New("redis down")
	svc := newTestService(docs)
	defer svc.Close()

	before := openPreviews(t)
	_, _, err := svc.Open(context.Background(), "<h1>Hello</h1>", framework(t, "HTML & CSS"))
	require.Error(t, err)
	assert.True(t, apperrors.IsAppError(err))
	assert.Equal(t, before, openPreviews(t))
	assert.Zero(t, svc.surfaces.ItemCount())
}

func TestService_DetachedSurfaceNotRevived(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeDocs())
	defer svc.Close()

	id, _, err := svc.Open(ctx, "<h1>Hello</h1>", framework(t, "HTML & CSS"))
	require.NoError(t, err)
	v, ok := svc.surfaces.Get(id)
	require.True(t, ok)
	surface := v.(*Surface)

	_, err = svc.Dismiss(ctx, id)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return surface.State().Phase == entity.PhaseIdle
	}, time.Second, 5*time.Millisecond)

	// 续期与脱离交错时，已脱离的预览面会被写回登记
	svc.surfaces.SetDefault(id, surface)

	_, err = svc.Reload(ctx, id, "<p>again</p>", framework(t, "HTML & CSS"))
	assert.True(t, errors.Is(err, apperrors.ErrPreviewNotFound))
	_, ok = svc.surfaces.Get(id)
	assert.False(t, ok)
}
