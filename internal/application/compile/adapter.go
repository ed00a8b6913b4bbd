// Package compile 将生成的 JSX 源码转换为可直接执行的脚本
package compile

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/metrics"
)

// DefaultComponentName 生成脚本约定声明的组件名
const DefaultComponentName = "Component"

const sourceFile = "component.jsx"

// Compiler JSX 编译器
type Compiler interface {
	Compile(source string) (string, error)
}

// ErrorKind 编译错误类别
type ErrorKind string

const (
	KindSyntax      ErrorKind = "syntax"
	KindExportShape ErrorKind = "export_shape"
)

// CompileError 结构化编译错误，Message 为转换器原文
type CompileError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *CompileError) Error() string {
	return e.Message
}

// Unwrap 映射到统一错误码
func (e *CompileError) Unwrap() error {
	if e.Kind == KindExportShape {
		return apperrors.ErrUnexpectedExportShape
	}
	return apperrors.ErrCompileFailed
}

// Options 编译选项
type Options struct {
	// ComponentName 期望的顶层组件名，为空时使用 DefaultComponentName
	ComponentName string
	// VerifyExportShape 编译后校验组件声明
	VerifyExportShape bool
}

// Adapter 基于 esbuild 的 JSX 转换（classic React 预设）
type Adapter struct {
	componentName string
	verify        bool
	declPattern   *regexp.Regexp
}

// NewAdapter 创建编译适配器
func NewAdapter(opts Options) *Adapter {
	name := strings.TrimSpace(opts.ComponentName)
	if name == "" {
		name = DefaultComponentName
	}
	return &Adapter{
		componentName: name,
		verify:        opts.VerifyExportShape,
		declPattern:   declarationPattern(name),
	}
}

// ComponentName 期望的组件名
func (a *Adapter) ComponentName() string {
	return a.componentName
}

// Compile 转换源码；失败时返回 *CompileError，不产生部分输出
func (a *Adapter) Compile(source string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.CompileDuration.Observe(time.Since(start).Seconds())
	}()

	result := api.Transform(normalizeModuleSyntax(source, a.componentName), api.TransformOptions{
		Loader:      api.LoaderJSX,
		JSX:         api.JSXTransform,
		JSXFactory:  "React.createElement",
		JSXFragment: "React.Fragment",
		Sourcefile:  sourceFile,
		Charset:     api.CharsetUTF8,
		LogLevel:    api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		metrics.CompileTotal.WithLabelValues(string(KindSyntax)).Inc()
		return "", syntaxError(result.Errors[0])
	}

	script := string(result.Code)
	if a.verify && !a.declPattern.MatchString(script) {
		metrics.CompileTotal.WithLabelValues(string(KindExportShape)).Inc()
		return "", &CompileError{
			Kind:    KindExportShape,
			Message: fmt.Sprintf("unexpected export shape: no top-level declaration of %q found", a.componentName),
		}
	}

	metrics.CompileTotal.WithLabelValues("success").Inc()
	return script, nil
}

func syntaxError(msg api.Message) *CompileError {
	ce := &CompileError{Kind: KindSyntax, Message: msg.Text}
	if loc := msg.Location; loc != nil {
		ce.Line = loc.Line
		ce.Column = loc.Column
		ce.Message = fmt.Sprintf("%s:%d:%d: %s", loc.File, loc.Line, loc.Column, msg.Text)
	}
	return ce
}

// declarationPattern esbuild 输出的顶层声明从行首开始
func declarationPattern(name string) *regexp.Regexp {
	n := regexp.QuoteMeta(name)
	return regexp.MustCompile(`(?m)^(?:function\s+` + n + `\s*\(|(?:const|let|var)\s+` + n + `\s*=|class\s+` + n + `\b)`)
}
