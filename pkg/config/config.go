package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Notify      NotifyConfig      `yaml:"notify"`
	DB          DBConfig          `yaml:"db"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // deepseek（默认）或 openai
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// InputConfig 分析文本来源配置。
// 优先级：Override 文本 > URL 抓取 > 目标文件（Line 为 0 读取全文，否则读取该行）。
type InputConfig struct {
	File     string `yaml:"file"`
	Line     int    `yaml:"line"`
	Override string `yaml:"override"`
	URL      string `yaml:"url"`
}

// OutputConfig 产物落盘路径
type OutputConfig struct {
	Markdown string `yaml:"markdown"`
	HTML     string `yaml:"html"`
}

// NotifyConfig 通知渠道配置，未配置的渠道会被跳过
type NotifyConfig struct {
	FeishuWebhookURL   string `yaml:"feishu_webhook_url"`
	DingTalkWebhookURL string `yaml:"dingtalk_webhook_url"`
	WeworkWebhookURL   string `yaml:"wework_webhook_url"`
	TelegramBotToken   string `yaml:"telegram_bot_token"`
	TelegramChatID     string `yaml:"telegram_chat_id"`
	ProxyURL           string `yaml:"proxy_url"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// API Key 的候选名，.env 与环境变量共用
var apiKeyNames = []string{"deepseek_API_KEY", "DEEPSEEK_API_KEY"}

// LoadEnvAPIKey 从项目 .env 或环境变量读取 DeepSeek API Key。
// 优先读取 .env 中的候选键，其次读取同名环境变量；找不到时返回空串。
func LoadEnvAPIKey(envPath string) string {
	if data, err := os.ReadFile(envPath); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			k, v, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			for _, name := range apiKeyNames {
				if strings.TrimSpace(k) == name {
					if key := strings.TrimSpace(v); key != "" {
						return key
					}
				}
			}
		}
	}

	for _, name := range apiKeyNames {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return ""
}
