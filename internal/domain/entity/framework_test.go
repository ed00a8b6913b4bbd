package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCategories(t *testing.T) {
	want := map[string]FrameworkCategory{
		"HTML & CSS":           CategoryHTML,
		"JSX with TailwindCSS": CategoryJSX,
		"HTML & TailwindCSS":   CategoryHTML,
		"Dart & Flutter":       CategoryOther,
		"Python & Django":      CategoryOther,
		"Python & Flask":       CategoryOther,
		"Java & Spring":        CategoryOther,
	}
	frameworks := Frameworks()
	require.Len(t, frameworks, len(want))
	for _, f := range frameworks {
		assert.Equal(t, want[f.Value], f.Category, f.Value)
		assert.NotEmpty(t, f.Extension, f.Value)
	}
}

func TestFrameworksReturnsCopy(t *testing.T) {
	fs := Frameworks()
	fs[0].Value = "mutated"
	f, ok := LookupFramework("HTML & CSS")
	require.True(t, ok)
	assert.Equal(t, "HTML & CSS", f.Value)
}

func TestCategoryOfFallsBackToKeywords(t *testing.T) {
	assert.Equal(t, CategoryJSX, CategoryOf("JSX with styled-components"))
	assert.Equal(t, CategoryHTML, CategoryOf("Plain HTML"))
	assert.Equal(t, CategoryOther, CategoryOf("Go & templ"))
}

func TestDownloadName(t *testing.T) {
	f, ok := LookupFramework("JSX with TailwindCSS")
	require.True(t, ok)
	assert.Equal(t, "component.jsx", f.DownloadName())
	assert.Equal(t, "component.txt", FrameworkOption{Value: "x"}.DownloadName())
}

func TestGenerationRequestValid(t *testing.T) {
	f, _ := LookupFramework("HTML & CSS")
	assert.True(t, GenerationRequest{Framework: f, Description: "a button"}.Valid())
	assert.False(t, GenerationRequest{Framework: f, Description: "   "}.Valid())
	assert.False(t, GenerationRequest{Description: "a button"}.Valid())
}

func TestGenerationResultIsExclusive(t *testing.T) {
	ok := Succeeded("<button>Click</button>")
	assert.True(t, ok.OK())
	assert.Empty(t, ok.Message())

	failed := Failed("nope")
	assert.False(t, failed.OK())
	assert.Empty(t, failed.Code())
	assert.Equal(t, "nope", failed.Message())
}

func TestParseViewMode(t *testing.T) {
	m, err := ParseViewMode("tablet")
	require.NoError(t, err)
	assert.Equal(t, 768, m.MaxWidth())

	_, err = ParseViewMode("watch")
	assert.Error(t, err)
}
