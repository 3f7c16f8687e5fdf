package factory

import (
	"context"
	"fmt"

	"github.com/sansan0/trendradar/pkg/chat"
	"github.com/sansan0/trendradar/pkg/config"
	"github.com/sansan0/trendradar/pkg/deepseek"
	"github.com/sansan0/trendradar/pkg/openaichat"
)

// NewCompleter 根据配置创建补全客户端
func NewCompleter(ctx context.Context, cfg *config.Config) (chat.Completer, error) {
	provider := cfg.LLM.Provider
	if provider == "" {
		provider = "deepseek"
	}
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("llm api key is missing")
	}

	switch provider {
	case "deepseek":
		return deepseek.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature), nil

	case "openai":
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("openai base url is missing")
		}
		return openaichat.NewClient(ctx, cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
