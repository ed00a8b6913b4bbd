package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler_Assemble(t *testing.T) {
	a := NewAssembler(RuntimeConfig{}, "")
	doc := a.Assemble(`function Component() { return React.createElement("p", null, "hi"); }`)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Equal(t, 1, strings.Count(doc, DefaultRuntime.ReactURL))
	assert.Equal(t, 1, strings.Count(doc, DefaultRuntime.ReactDOMURL))
	assert.Equal(t, 1, strings.Count(doc, DefaultRuntime.StylesURL))
	assert.Contains(t, doc, `<div id="root"></div>`)
	assert.Contains(t, doc, "ReactDOM.createRoot(container)")
	assert.Contains(t, doc, "root.render(React.createElement(Component))")
	assert.Contains(t, doc, "Render Error:")
	assert.Contains(t, doc, `<meta charset="UTF-8">`)
}

func TestAssembler_CustomRuntime(t *testing.T) {
	rt := RuntimeConfig{
		ReactURL:    "https://cdn.example.com/react.js",
		ReactDOMURL: "https://cdn.example.com/react-dom.js",
		StylesURL:   "https://cdn.example.com/tw.js",
	}
	doc := NewAssembler(rt, "Widget").Assemble("const Widget = () => null;")

	assert.Equal(t, 1, strings.Count(doc, rt.ReactURL))
	assert.Equal(t, 1, strings.Count(doc, rt.ReactDOMURL))
	assert.NotContains(t, doc, "unpkg.com")
	assert.Contains(t, doc, "React.createElement(Widget)")
}

func TestAssembler_EscapesScriptClose(t *testing.T) {
	doc := NewAssembler(RuntimeConfig{}, "").Assemble(`const s = "</script><script>alert(1)</SCRIPT>";`)

	// 模板自身包含 4 个 script 元素
	assert.Equal(t, 4, strings.Count(doc, "</script>"))
	assert.Contains(t, doc, `<\/script><script>alert(1)<\/SCRIPT>`)
}
