package preview

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-comp-ai-api/internal/application/compile"
	"z-comp-ai-api/internal/domain/entity"
	apperrors "z-comp-ai-api/pkg/errors"
)

func framework(t *testing.T, value string) entity.FrameworkOption {
	t.Helper()
	f, ok := entity.LookupFramework(value)
	require.True(t, ok, value)
	return f
}

func newTestSurface(opts ...SurfaceOption) *Surface {
	compiler := compile.NewAdapter(compile.Options{VerifyExportShape: true})
	return NewSurface("s1", compiler, NewAssembler(RuntimeConfig{}, ""), opts...)
}

func TestSurface_HTMLPassthrough(t *testing.T) {
	s := newTestSurface()

	state, err := s.Load("<button>Click</button>", framework(t, "HTML & CSS"))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseHTMLPassthrough, state.Phase)
	assert.Equal(t, "<button>Click</button>", state.Document)
	assert.Empty(t, state.CompileError)
}

func TestSurface_JSXCompiled(t *testing.T) {
	s := newTestSurface()

	state, err := s.Load(`function Component() { return <div className="p-2">Hi</div>; }`, framework(t, "JSX with TailwindCSS"))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseJSXCompiled, state.Phase)
	assert.Empty(t, state.CompileError)
	assert.Equal(t, 1, strings.Count(state.Document, DefaultRuntime.ReactURL))
	assert.Equal(t, 1, strings.Count(state.Document, DefaultRuntime.ReactDOMURL))
	assert.Contains(t, state.Document, "React.createElement(Component)")
	assert.Contains(t, state.Document, `React.createElement("div"`)
}

func TestSurface_JSXFailed(t *testing.T) {
	s := newTestSurface()

	state, err := s.Load("function Component() { return <div><span></div>; }", framework(t, "JSX with TailwindCSS"))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseJSXFailed, state.Phase)
	assert.NotEmpty(t, state.CompileError)
	assert.Empty(t, state.Document)

	_, err = s.SetViewMode(entity.ViewMobile)
	assert.True(t, errors.Is(err, apperrors.ErrViewportUnavailable))
}

func TestSurface_Unsupported(t *testing.T) {
	s := newTestSurface()
	code := "class MyComponent extends StatelessWidget {}"

	state, err := s.Load(code, framework(t, "Dart & Flutter"))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseUnsupported, state.Phase)
	assert.Equal(t, code, state.Source)
	assert.Equal(t, "dart", state.Language)
	assert.Empty(t, state.Document)

	_, err = s.SetViewMode(entity.ViewTablet)
	assert.True(t, errors.Is(err, apperrors.ErrViewportUnavailable))
}

func TestSurface_LoadRejectsEmptyCode(t *testing.T) {
	s := newTestSurface()
	_, err := s.Load("   ", framework(t, "HTML & CSS"))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParam))
	assert.Equal(t, entity.PhaseIdle, s.State().Phase)
}

func TestSurface_ViewModeSurvivesReload(t *testing.T) {
	s := newTestSurface()
	html := framework(t, "HTML & TailwindCSS")

	_, err := s.Load("<p>one</p>", html)
	require.NoError(t, err)
	state, err := s.SetViewMode(entity.ViewTablet)
	require.NoError(t, err)
	assert.Equal(t, entity.ViewTablet, state.ViewMode)

	state, err = s.Load("<p>two</p>", html)
	require.NoError(t, err)
	assert.Equal(t, entity.ViewTablet, state.ViewMode)
	assert.Equal(t, "<p>two</p>", state.Document)
}

func TestSurface_ReloadRecomputes(t *testing.T) {
	s := newTestSurface()

	_, err := s.Load("function Component() { return <div><span></div>; }", framework(t, "JSX with TailwindCSS"))
	require.NoError(t, err)

	state, err := s.Load("<p>ok</p>", framework(t, "HTML & CSS"))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseHTMLPassthrough, state.Phase)
	assert.Empty(t, state.CompileError)
}

func TestSurface_Dismiss(t *testing.T) {
	var detached atomic.Int32
	s := newTestSurface(
		WithExitTransition(30*time.Millisecond),
		WithDetachHook(func(id string) {
			assert.Equal(t, "s1", id)
			detached.Add(1)
		}),
	)

	assert.True(t, errors.Is(s.Dismiss(), apperrors.ErrPreviewClosed))

	_, err := s.Load("<p>x</p>", framework(t, "HTML & CSS"))
	require.NoError(t, err)

	require.NoError(t, s.Dismiss())
	assert.Equal(t, entity.PhaseClosing, s.State().Phase)

	// closing 期间再次关闭与重新加载都被拒绝，状态不变
	assert.True(t, errors.Is(s.Dismiss(), apperrors.ErrDismissInProgress))
	_, err = s.Load("<p>y</p>", framework(t, "HTML & CSS"))
	assert.True(t, errors.Is(err, apperrors.ErrDismissInProgress))
	_, err = s.SetViewMode(entity.ViewMobile)
	assert.True(t, errors.Is(err, apperrors.ErrViewportUnavailable))
	assert.Equal(t, entity.PhaseClosing, s.State().Phase)

	require.Eventually(t, func() bool {
		return s.State().Phase == entity.PhaseIdle
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), detached.Load())
	assert.Empty(t, s.State().Document)

	// 脱离后可以重新打开
	state, err := s.Load("<p>z</p>", framework(t, "HTML & CSS"))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseHTMLPassthrough, state.Phase)
}

func TestSurface_StopCancelsDetach(t *testing.T) {
	var detached atomic.Int32
	s := newTestSurface(
		WithExitTransition(20*time.Millisecond),
		WithDetachHook(func(string) { detached.Add(1) }),
	)
	_, err := s.Load("<p>x</p>", framework(t, "HTML & CSS"))
	require.NoError(t, err)
	require.NoError(t, s.Dismiss())
	s.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), detached.Load())
}
