// Package entity 定义领域实体
package entity

import "strings"

// FrameworkCategory 决定预览策略的框架分类
type FrameworkCategory string

const (
	CategoryHTML  FrameworkCategory = "html"
	CategoryJSX   FrameworkCategory = "jsx"
	CategoryOther FrameworkCategory = "other"
)

// FrameworkOption 生成目标（不可变，取自固定目录）
type FrameworkOption struct {
	Label     string            `json:"label"`
	Value     string            `json:"value"`
	Extension string            `json:"extension"`
	Category  FrameworkCategory `json:"category"`
	// PromptHint 追加到生成指令中的框架格式要求
	PromptHint string `json:"-"`
}

// IsZero 是否未选择框架
func (f FrameworkOption) IsZero() bool {
	return f.Value == ""
}

// Previewable HTML 与 JSX 类框架可渲染预览
func (f FrameworkOption) Previewable() bool {
	return f.Category == CategoryHTML || f.Category == CategoryJSX
}

// DownloadName 下载文件名
func (f FrameworkOption) DownloadName() string {
	ext := f.Extension
	if ext == "" {
		ext = "txt"
	}
	return "component." + ext
}

var catalog = []FrameworkOption{
	{
		Label:      "HTML & CSS",
		Value:      "HTML & CSS",
		Extension:  "html",
		Category:   CategoryHTML,
		PromptHint: "Return one complete HTML document. Put all styling in a single inline <style> element in the head.",
	},
	{
		Label:      "JSX with TailwindCSS",
		Value:      "JSX with TailwindCSS",
		Extension:  "jsx",
		Category:   CategoryJSX,
		PromptHint: "Define a single React function component named exactly Component. Do not write import or export statements; React is available as a global. Style it only with TailwindCSS utility classes.",
	},
	{
		Label:      "HTML & TailwindCSS",
		Value:      "HTML & TailwindCSS",
		Extension:  "html",
		Category:   CategoryHTML,
		PromptHint: "Return one complete HTML document that loads TailwindCSS with <script src=\"https://cdn.tailwindcss.com\"></script> in the head and styles everything with utility classes.",
	},
	{
		Label:      "Dart & Flutter",
		Value:      "Dart & Flutter",
		Extension:  "dart",
		Category:   CategoryOther,
		PromptHint: "Write a single StatelessWidget or StatefulWidget class named MyComponent.",
	},
	{
		Label:     "Python & Django",
		Value:     "Python & Django",
		Extension: "py",
		Category:  CategoryOther,
	},
	{
		Label:     "Python & Flask",
		Value:     "Python & Flask",
		Extension: "py",
		Category:  CategoryOther,
	},
	{
		Label:     "Java & Spring",
		Value:     "Java & Spring",
		Extension: "java",
		Category:  CategoryOther,
	},
}

// Frameworks 返回框架目录副本
func Frameworks() []FrameworkOption {
	out := make([]FrameworkOption, len(catalog))
	copy(out, catalog)
	return out
}

// LookupFramework 按规范值查找框架
func LookupFramework(value string) (FrameworkOption, bool) {
	value = strings.TrimSpace(value)
	for _, f := range catalog {
		if f.Value == value {
			return f, true
		}
	}
	return FrameworkOption{}, false
}

// CategoryOf 按值中的关键字分类，兼容目录外的取值
func CategoryOf(value string) FrameworkCategory {
	if f, ok := LookupFramework(value); ok {
		return f.Category
	}
	switch {
	case strings.Contains(value, "HTML"):
		return CategoryHTML
	case strings.Contains(value, "JSX"):
		return CategoryJSX
	default:
		return CategoryOther
	}
}
