// Package errors 提供统一的错误定义
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 资源错误 (3xxx)
	CodePanelNotFound   ErrorCode = "3001"
	CodePreviewNotFound ErrorCode = "3002"
	CodeResultNotFound  ErrorCode = "3003"

	// 业务错误 (4xxx)
	CodeGenerationFailed      ErrorCode = "4001"
	CodeValidationFailed      ErrorCode = "4002"
	CodeCompileFailed         ErrorCode = "4003"
	CodeUnexpectedExportShape ErrorCode = "4004"
	CodeGenerationInFlight    ErrorCode = "4005"
	CodeDismissInProgress     ErrorCode = "4006"
	CodeViewportUnavailable   ErrorCode = "4007"
	CodePreviewClosed         ErrorCode = "4008"

	// 外部服务错误 (5xxx)
	CodeCacheError       ErrorCode = "5002"
	CodeLLMProviderError ErrorCode = "5005"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，便于 errors.Is 匹配预定义错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail 返回附带详细信息的副本，预定义错误不会被修改
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithError 返回附带底层错误的副本
func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodePanelNotFound, CodePreviewNotFound, CodeResultNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeGenerationInFlight, CodeDismissInProgress, CodeViewportUnavailable, CodePreviewClosed:
		return http.StatusConflict
	case CodeCompileFailed, CodeUnexpectedExportShape:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeGenerationFailed, CodeLLMProviderError:
		return http.StatusBadGateway
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrPanelNotFound   = New(CodePanelNotFound, "panel not found")
	ErrPreviewNotFound = New(CodePreviewNotFound, "preview not found")
	ErrResultNotFound  = New(CodeResultNotFound, "no generated code available")

	ErrValidationFailed      = New(CodeValidationFailed, "Please select a framework and provide a description.")
	ErrGenerationFailed      = New(CodeGenerationFailed, "An unexpected error occurred while generating the component.")
	ErrGenerationInFlight    = New(CodeGenerationInFlight, "a generation is already in progress")
	ErrCompileFailed         = New(CodeCompileFailed, "JSX compilation failed")
	ErrUnexpectedExportShape = New(CodeUnexpectedExportShape, "unexpected export shape")
	ErrDismissInProgress     = New(CodeDismissInProgress, "preview is already closing")
	ErrViewportUnavailable   = New(CodeViewportUnavailable, "viewport presets are only available for rendered previews")
	ErrPreviewClosed         = New(CodePreviewClosed, "preview is not open")
	ErrLLMCallFailed         = New(CodeLLMProviderError, "LLM call failed")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
