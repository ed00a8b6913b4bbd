// Package config 提供配置加载和管理功能
package config

import (
	"time"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	LLM           LLMConfig           `yaml:"llm" mapstructure:"llm" validate:"required"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
	Features      FeaturesConfig      `yaml:"features" mapstructure:"features"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name" validate:"required"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env" validate:"oneof=development test staging production"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig Redis 配置；未启用时预览文档与限流退化为进程内实现
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	Host         string        `yaml:"host" mapstructure:"host" validate:"required_if=Enabled true"`
	Port         int           `yaml:"port" mapstructure:"port"`
	Password     string        `yaml:"password" mapstructure:"password"`
	DB           int           `yaml:"db" mapstructure:"db"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	KeyPrefix    string        `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// LLMConfig LLM 配置
type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider" mapstructure:"default_provider" validate:"required"`
	Providers       map[string]ProviderConfig `yaml:"providers" mapstructure:"providers" validate:"required,min=1,dive"`
}

// ProviderConfig LLM 提供商配置（OpenAI 兼容接口）
type ProviderConfig struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Model       string        `yaml:"model" mapstructure:"model" validate:"required"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json text"`
	// File 为空路径时只输出到 stdout
	File LogFileConfig `yaml:"file" mapstructure:"file"`
}

// LogFileConfig 滚动日志文件配置
type LogFileConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
}

// RateLimitConfig 限流配置（仅作用于触发生成的接口）
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute" mapstructure:"requests_per_minute" validate:"gte=0"`
	Burst             int  `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}

// FeaturesConfig 功能配置
type FeaturesConfig struct {
	Generation GenerationFeature `yaml:"generation" mapstructure:"generation"`
	Compile    CompileFeature    `yaml:"compile" mapstructure:"compile"`
	Preview    PreviewFeature    `yaml:"preview" mapstructure:"preview"`
	Panel      PanelFeature      `yaml:"panel" mapstructure:"panel"`
}

// GenerationFeature 生成相关开关
type GenerationFeature struct {
	// Timeout 单次生成请求超时
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// ExposeServiceErrors 为 true 时将上游错误原文返回给用户，默认仅返回通用提示
	ExposeServiceErrors bool `yaml:"expose_service_errors" mapstructure:"expose_service_errors"`
	// StripCodeFences 去除模型输出外层的 markdown 代码围栏
	StripCodeFences bool `yaml:"strip_code_fences" mapstructure:"strip_code_fences"`
	// MaxDescriptionLength 描述最大字符数，0 表示不限制
	MaxDescriptionLength int `yaml:"max_description_length" mapstructure:"max_description_length" validate:"gte=0"`
}

// CompileFeature JSX 编译相关配置
type CompileFeature struct {
	// ComponentName 生成脚本必须声明的组件名
	ComponentName string `yaml:"component_name" mapstructure:"component_name" validate:"required"`
	// VerifyExportShape 编译后校验组件声明是否存在
	VerifyExportShape bool          `yaml:"verify_export_shape" mapstructure:"verify_export_shape"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// PreviewFeature 预览相关配置
type PreviewFeature struct {
	// ExitTransition 关闭动画时长，期间拒绝再次关闭
	ExitTransition time.Duration `yaml:"exit_transition" mapstructure:"exit_transition"`
	// DocumentTTL 预览文档存储时长
	DocumentTTL time.Duration `yaml:"document_ttl" mapstructure:"document_ttl"`
	Runtime     RuntimeConfig `yaml:"runtime" mapstructure:"runtime"`
}

// RuntimeConfig 预览文档引用的外部运行时
type RuntimeConfig struct {
	ReactURL    string `yaml:"react_url" mapstructure:"react_url" validate:"required,url"`
	ReactDOMURL string `yaml:"react_dom_url" mapstructure:"react_dom_url" validate:"required,url"`
	StylesURL   string `yaml:"styles_url" mapstructure:"styles_url" validate:"required,url"`
}

// PanelFeature 生成面板配置
type PanelFeature struct {
	// IdleTTL 面板空闲过期时间
	IdleTTL time.Duration `yaml:"idle_ttl" mapstructure:"idle_ttl"`
	// FeedbackWindow 复制/下载成功提示的持续时间
	FeedbackWindow time.Duration `yaml:"feedback_window" mapstructure:"feedback_window"`
}
