package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		lang     string
		stripped bool
	}{
		{
			name:     "jsx fence",
			in:       "```jsx\nfunction Component() {\n  return <div />;\n}\n```",
			want:     "function Component() {\n  return <div />;\n}",
			lang:     "jsx",
			stripped: true,
		},
		{
			name:     "fence without language and surrounding blanks",
			in:       "\n\n```\n<p>hi</p>\n```\n  ",
			want:     "<p>hi</p>",
			stripped: true,
		},
		{
			name:     "tilde fence with crlf",
			in:       "~~~html\r\n<b>x</b>\r\n~~~",
			want:     "<b>x</b>",
			lang:     "html",
			stripped: true,
		},
		{
			name:     "unterminated fence",
			in:       "```python\nprint('x')",
			want:     "print('x')",
			lang:     "python",
			stripped: true,
		},
		{
			name: "raw code untouched",
			in:   "  <!DOCTYPE html>\n<html></html>\n",
			want: "<!DOCTYPE html>\n<html></html>",
		},
		{
			name: "trailing prose keeps fence",
			in:   "```js\nx()\n```\nThis renders a button.",
			want: "```js\nx()\n```\nThis renders a button.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, lang, stripped := StripCodeFence(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.lang, lang)
			assert.Equal(t, tt.stripped, stripped)
		})
	}
}

func TestTruncateByRunes(t *testing.T) {
	assert.Equal(t, "", TruncateByRunes("abc", 0))
	assert.Equal(t, "abc", TruncateByRunes("abc", 5))
	assert.Equal(t, "组件", TruncateByRunes("组件生成", 2))
}
