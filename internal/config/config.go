package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Image    ImageConfig    `mapstructure:"image"`
	Render   RenderConfig   `mapstructure:"render"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig 脚本生成 LLM 配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig LLM 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// TTSConfig 旁白语音合成配置
type TTSConfig struct {
	APIURL      string `mapstructure:"api_url"`      // API 地址
	AccessToken string `mapstructure:"access_token"` // 访问令牌
	AppID       string `mapstructure:"app_id"`       // 应用ID（可选）
	Cluster     string `mapstructure:"cluster"`      // 集群名称
	VoiceType   string `mapstructure:"voice_type"`   // 语音类型
	SampleRate  int    `mapstructure:"sample_rate"`  // 采样率
}

// ImageConfig 场景图片生成配置
type ImageConfig struct {
	AccessKey string  `mapstructure:"access_key"` // 访问密钥
	SecretKey string  `mapstructure:"secret_key"` // 密钥
	APIURL    string  `mapstructure:"api_url"`    // API 端点
	Region    string  `mapstructure:"region"`     // 区域
	ReqKey    string  `mapstructure:"req_key"`    // 请求密钥（模型标识）
	Width     int     `mapstructure:"width"`      // 图片宽度
	Height    int     `mapstructure:"height"`     // 图片高度
	Scale     float64 `mapstructure:"scale"`      // 引导尺度
}

// RenderConfig 外部渲染服务配置
type RenderConfig struct {
	BaseURL          string        `mapstructure:"base_url"`          // 渲染服务地址
	APIKey           string        `mapstructure:"api_key"`           // API Key
	PollInterval     time.Duration `mapstructure:"poll_interval"`     // 轮询间隔
	MaxPollAttempts  int           `mapstructure:"max_poll_attempts"` // 最大轮询次数（超出视为超时失败）
	OutputFormat     string        `mapstructure:"output_format"`     // 输出格式（mp4）
	OutputResolution string        `mapstructure:"output_resolution"` // 输出分辨率（hd 等）
	AspectRatio      string        `mapstructure:"aspect_ratio"`      // 画面比例（9:16 等）
}

// PipelineConfig 流水线参数
type PipelineConfig struct {
	MaxWordsPerCaption int     `mapstructure:"max_words_per_caption"` // 每条字幕最大词数
	MinClipDuration    float64 `mapstructure:"min_clip_duration"`     // 音频探测失败时的保底时长（秒）
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath      string `mapstructure:"base_path"`      // 基础路径
	BaseURL       string `mapstructure:"base_url"`       // 基础URL（用于生成访问URL）
	TokenSecret   string `mapstructure:"token_secret"`   // 上传token签名密钥
	PresignExpiry int    `mapstructure:"presign_expiry"` // 预签名URL过期时间（秒）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
	PresignExpiry   int    `mapstructure:"presign_expiry"`    // 预签名URL过期时间（秒）
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Render.PollInterval <= 0 {
		return errors.New("render poll interval must be positive")
	}
	if c.Render.MaxPollAttempts <= 0 {
		return errors.New("render max poll attempts must be positive")
	}

	return nil
}
