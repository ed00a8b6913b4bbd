package compile

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "z-comp-ai-api/pkg/errors"
)

func newTestAdapter() *Adapter {
	return NewAdapter(Options{VerifyExportShape: true})
}

func TestAdapter_Compile_Minimal(t *testing.T) {
	script, err := newTestAdapter().Compile("function Component() { return null; }")
	require.NoError(t, err)
	assert.Contains(t, script, "function Component()")
	assert.Contains(t, script, "return null")
}

func TestAdapter_Compile_Idempotent(t *testing.T) {
	src := `function Component() {
  return <div className="p-4"><h1>Hi</h1><>frag</></div>;
}`
	a := newTestAdapter()
	first, err := a.Compile(src)
	require.NoError(t, err)
	second, err := a.Compile(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, `React.createElement("div"`)
	assert.Contains(t, first, "React.Fragment")
	assert.NotContains(t, first, "<h1>")
}

func TestAdapter_Compile_SyntaxError(t *testing.T) {
	_, err := newTestAdapter().Compile("function Component() { return <div><span></div>; }")
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindSyntax, ce.Kind)
	assert.True(t, strings.HasPrefix(ce.Message, "component.jsx:"), ce.Message)
	assert.Greater(t, ce.Line, 0)
	assert.True(t, errors.Is(err, apperrors.ErrCompileFailed))
	assert.False(t, errors.Is(err, apperrors.ErrUnexpectedExportShape))
}

func TestAdapter_Compile_ExportShape(t *testing.T) {
	src := "function App() { return <p>x</p>; }"

	_, err := newTestAdapter().Compile(src)
	require.Error(t, err)
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindExportShape, ce.Kind)
	assert.True(t, errors.Is(err, apperrors.ErrUnexpectedExportShape))

	// 关闭校验时照常输出
	script, err := NewAdapter(Options{}).Compile(src)
	require.NoError(t, err)
	assert.Contains(t, script, "function App()")
}

func TestAdapter_Compile_CustomComponentName(t *testing.T) {
	a := NewAdapter(Options{ComponentName: "Widget", VerifyExportShape: true})
	assert.Equal(t, "Widget", a.ComponentName())

	_, err := a.Compile("const Widget = () => <i/>;")
	require.NoError(t, err)

	_, err = a.Compile("function Component() { return null; }")
	assert.True(t, errors.Is(err, apperrors.ErrUnexpectedExportShape))
}

func TestAdapter_Compile_ModuleSyntax(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains []string
	}{
		{
			name: "react imports become globals",
			src: `import React, { useState } from 'react';
import './styles.css';

export default function Component() {
  const [n, setN] = useState(0);
  return <button onClick={() => setN(n + 1)}>{n}</button>;
}`,
			contains: []string{"= React;", "useState", "function Component()", `React.createElement("button"`},
		},
		{
			name: "default export under another name",
			src: `export default function App() {
  return <div />;
}`,
			contains: []string{"function App()", "const Component = App;"},
		},
		{
			name: "default export identifier",
			src: `const Card = () => <section />;
export default Card;`,
			contains: []string{"const Component = Card;"},
		},
		{
			name:     "anonymous default export",
			src:      `export default () => <span>ok</span>;`,
			contains: []string{"const Component = ", `React.createElement("span"`},
		},
		{
			name: "export list aliased as default",
			src: `const Card = () => <section />;
export { Card as default };`,
			contains: []string{"const Card = ", "const Component = Card;"},
		},
		{
			name: "export list of the component",
			src: `function Component() { return <p>hi</p>; }
export {
  Component,
};`,
			contains: []string{"function Component()", `React.createElement("p"`},
		},
		{
			name: "named exports",
			src: `export const Badge = () => <b />;
export function Component() { return <Badge />; }`,
			contains: []string{"const Badge = ", "function Component()"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := newTestAdapter().Compile(tt.src)
			require.NoError(t, err)
			assert.NotContains(t, script, "import ")
			assert.NotContains(t, script, "export ")
			for _, s := range tt.contains {
				assert.Contains(t, script, s)
			}
		})
	}
}

func TestNormalizeModuleSyntax_KeepsLineNumbers(t *testing.T) {
	src := "import {\n  useState,\n  useEffect as useFx\n} from \"react\";\nfunction Component() {}"
	out := normalizeModuleSyntax(src, DefaultComponentName)
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
	assert.Contains(t, out, "const { useState, useEffect: useFx } = React;")

	src = "function Component() {}\nexport {\n  Component\n};\n"
	out = normalizeModuleSyntax(src, DefaultComponentName)
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
	assert.NotContains(t, out, "export")
}

func TestRewriteImport(t *testing.T) {
	tests := []struct {
		clause string
		module string
		want   string
	}{
		{"React", "react", ""},
		{"* as R", "react", "const R = React;"},
		{"{ useState }", "react", "const { useState } = React;"},
		{"React, { useMemo as memo }", "react", "const { useMemo: memo } = React;"},
		{"{ motion }", "framer-motion", ""},
	}
	for _, tt := range tests {
		t.Run(tt.clause+"@"+tt.module, func(t *testing.T) {
			assert.Equal(t, tt.want, rewriteImport(tt.clause, tt.module))
		})
	}
}

type countingCompiler struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (c *countingCompiler) Compile(source string) (string, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	if c.err != nil {
		return "", c.err
	}
	return "compiled:" + source, nil
}

func TestCachedCompiler_Memoizes(t *testing.T) {
	inner := &countingCompiler{delay: 20 * time.Millisecond}
	c := NewCachedCompiler(inner, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := c.Compile("x")
			assert.NoError(t, err)
			assert.Equal(t, "compiled:x", out)
		}()
	}
	wg.Wait()

	out, err := c.Compile("x")
	require.NoError(t, err)
	assert.Equal(t, "compiled:x", out)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestCachedCompiler_RemembersFailures(t *testing.T) {
	inner := &countingCompiler{err: &CompileError{Kind: KindSyntax, Message: "boom"}}
	c := NewCachedCompiler(inner, 0)

	for i := 0; i < 3; i++ {
		_, err := c.Compile("bad")
		require.Error(t, err)
		assert.Equal(t, "boom", err.Error())
	}
	assert.Equal(t, int32(1), inner.calls.Load())
}
