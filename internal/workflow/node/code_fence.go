package node

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var fenceParser = goldmark.New().Parser()

// StripCodeFence 输出整体被单个 markdown 代码块包裹时返回块内代码
//
// 仅处理包裹整段输出的围栏；围栏前后还有其他内容时原样返回。
func StripCodeFence(output string) (code string, language string, stripped bool) {
	src := []byte(NormalizeNewlines(strings.TrimSpace(output)))
	if !bytes.HasPrefix(src, []byte("```")) && !bytes.HasPrefix(src, []byte("~~~")) {
		return string(src), "", false
	}

	doc := fenceParser.Parse(text.NewReader(src))
	if doc.ChildCount() != 1 || doc.FirstChild().Kind() != ast.KindFencedCodeBlock {
		return string(src), "", false
	}

	block := doc.FirstChild().(*ast.FencedCodeBlock)
	var b bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String()), string(block.Language(src)), true
}
