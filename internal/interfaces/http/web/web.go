// Package web 内嵌生成面板前端
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var embeddedStatic embed.FS

// Assets 静态资源文件系统，根目录即 static/
func Assets() http.FileSystem {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		// 路径在编译期固定
		panic(err)
	}
	return http.FS(sub)
}

// Index 入口页面
func Index() []byte {
	b, err := embeddedStatic.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	return b
}
