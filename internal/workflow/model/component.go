// Package model 定义工作流输入输出
package model

// ComponentGenerateInput 组件生成输入
type ComponentGenerateInput struct {
	Provider string

	Framework     string
	FrameworkHint string
	Description   string

	Temperature *float32
	MaxTokens   *int
}

// ComponentGenerateOutput 组件生成输出
type ComponentGenerateOutput struct {
	Code string
	// Language 模型输出被代码块包裹时的语言标注
	Language string
	// FenceStripped 是否移除了外层代码块
	FenceStripped bool
}
