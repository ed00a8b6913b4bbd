package entity

import "strings"

// GenerationRequest 一次用户提交
type GenerationRequest struct {
	Framework   FrameworkOption
	Description string
	// Generation 单调递增的请求代号，响应到达时代号已过期则丢弃
	Generation uint64
}

// Valid 框架与描述均已提供
func (r GenerationRequest) Valid() bool {
	return !r.Framework.IsZero() && strings.TrimSpace(r.Description) != ""
}

// GenerationResult 成功（源码）或失败（提示信息），二者互斥
type GenerationResult struct {
	code    string
	message string
	ok      bool
}

// Succeeded 构造成功结果
func Succeeded(code string) GenerationResult {
	return GenerationResult{code: code, ok: true}
}

// Failed 构造失败结果
func Failed(message string) GenerationResult {
	return GenerationResult{message: message}
}

// OK 是否成功
func (r GenerationResult) OK() bool { return r.ok }

// Code 成功时的源码，失败时为空
func (r GenerationResult) Code() string { return r.code }

// Message 失败时的提示，成功时为空
func (r GenerationResult) Message() string { return r.message }
