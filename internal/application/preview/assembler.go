// Package preview 负责预览文档组装与预览面状态
package preview

import (
	"regexp"
	"strings"
	"text/template"

	"z-comp-ai-api/internal/application/compile"
)

// RuntimeConfig 预览文档引用的外部脚本与样式
type RuntimeConfig struct {
	ReactURL    string
	ReactDOMURL string
	StylesURL   string
}

// DefaultRuntime React 18 UMD 与 Tailwind CDN
var DefaultRuntime = RuntimeConfig{
	ReactURL:    "https://unpkg.com/react@18/umd/react.development.js",
	ReactDOMURL: "https://unpkg.com/react-dom@18/umd/react-dom.development.js",
	StylesURL:   "https://cdn.tailwindcss.com",
}

var documentTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<script src="{{.StylesURL}}"></script>
<script src="{{.ReactURL}}"></script>
<script src="{{.ReactDOMURL}}"></script>
<style>
*, *::before, *::after { box-sizing: border-box; }
html, body { margin: 0; }
body { background-color: white; padding: 1rem; }
</style>
</head>
<body>
<div id="root"></div>
<script type="text/javascript">
try {
{{.Script}}
  const container = document.getElementById('root');
  const root = ReactDOM.createRoot(container);
  root.render(React.createElement({{.ComponentName}}));
} catch (e) {
  const box = document.createElement('div');
  box.style.color = 'red';
  box.style.fontFamily = 'sans-serif';
  const title = document.createElement('strong');
  title.textContent = 'Render Error:';
  const detail = document.createElement('pre');
  detail.textContent = e && e.message ? e.message : String(e);
  box.appendChild(title);
  box.appendChild(detail);
  document.body.replaceChildren(box);
}
</script>
</body>
</html>
`))

var scriptClosePattern = regexp.MustCompile(`(?i)</(script)`)

type documentData struct {
	RuntimeConfig
	Script        string
	ComponentName string
}

// Assembler 将编译后的脚本包装为可独立运行的 HTML 文档
type Assembler struct {
	runtime       RuntimeConfig
	componentName string
}

// NewAssembler 创建组装器；空字段回退到默认运行时
func NewAssembler(runtime RuntimeConfig, componentName string) *Assembler {
	if runtime.ReactURL == "" {
		runtime.ReactURL = DefaultRuntime.ReactURL
	}
	if runtime.ReactDOMURL == "" {
		runtime.ReactDOMURL = DefaultRuntime.ReactDOMURL
	}
	if runtime.StylesURL == "" {
		runtime.StylesURL = DefaultRuntime.StylesURL
	}
	if componentName == "" {
		componentName = compile.DefaultComponentName
	}
	return &Assembler{runtime: runtime, componentName: componentName}
}

// Assemble 组装文档
func (a *Assembler) Assemble(script string) string {
	var b strings.Builder
	// 模板已在包初始化时校验，写入 Builder 不会失败
	_ = documentTemplate.Execute(&b, documentData{
		RuntimeConfig: a.runtime,
		Script:        escapeScriptClose(script),
		ComponentName: a.componentName,
	})
	return b.String()
}

// escapeScriptClose 避免脚本内容提前闭合 <script> 元素
func escapeScriptClose(script string) string {
	return scriptClosePattern.ReplaceAllString(script, `<\/$1`)
}
