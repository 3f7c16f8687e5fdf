package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/time/rate"

	"github.com/sansan0/trendradar/pkg/chat"
	"github.com/sansan0/trendradar/pkg/chat/factory"
	"github.com/sansan0/trendradar/pkg/config"
	"github.com/sansan0/trendradar/pkg/logger"
	"github.com/sansan0/trendradar/pkg/model"
	"github.com/sansan0/trendradar/pkg/notify"
	"github.com/sansan0/trendradar/pkg/report"
	"github.com/sansan0/trendradar/pkg/source"
	"github.com/sansan0/trendradar/pkg/storage"
)

const (
	defaultMarkdownPath = "output/analysis.md"
	defaultHTMLPath     = "output/index.html"
)

// Engine 串联取文、分析、渲染与分发的核心流程
type Engine struct {
	cfg       *config.Config
	completer chat.Completer
	limiter   *rate.Limiter
	notifier  *notify.Notifier
	store     *storage.Storage
}

// NewEngine 创建引擎实例
func NewEngine(cfg *config.Config, store *storage.Storage) (*Engine, error) {
	ctx := context.Background()

	completer, err := factory.NewCompleter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM 客户端初始化失败: %w", err)
	}

	rpm := cfg.Concurrency.RPM
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.Concurrency.QPS
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)

	notifier, err := notify.NewNotifier(cfg.Notify)
	if err != nil {
		return nil, fmt.Errorf("通知器初始化失败: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		completer: completer,
		limiter:   limiter,
		notifier:  notifier,
		store:     store,
	}, nil
}

// Run 执行一次完整的分析任务：
// 取文 → 调用模型 → 落盘原始文本 → 渲染静态报告 → 渠道分发 → 可选归档。
func (e *Engine) Run(ctx context.Context) error {
	text, srcDesc, err := source.Load(e.cfg.Input)
	if err != nil {
		return fmt.Errorf("读取分析文本失败: %w", err)
	}
	logger.Log.Infof("分析文本来源：%s (%d 字节)", srcDesc, len(text))

	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("limiter wait error: %w", err)
	}
	logger.Log.Info("正在调用分析接口……")
	result, err := e.completer.Complete(ctx, &chat.Request{
		System: systemPrompt,
		User:   buildUserPrompt(text),
	})
	if err != nil {
		return fmt.Errorf("分析接口调用失败: %w", err)
	}

	mdPath := e.cfg.Output.Markdown
	if mdPath == "" {
		mdPath = defaultMarkdownPath
	}
	if err := writeFile(mdPath, result); err != nil {
		return fmt.Errorf("保存分析结果失败: %w", err)
	}
	logger.Log.Infof("已保存分析结果: %s", mdPath)

	htmlPath := e.cfg.Output.HTML
	if htmlPath == "" {
		htmlPath = defaultHTMLPath
	}
	if err := writeFile(htmlPath, report.BuildDocument(result)); err != nil {
		return fmt.Errorf("生成报告页面失败: %w", err)
	}
	logger.Log.Infof("已生成报告页面: %s", htmlPath)

	// 通知渠道收到的是未渲染的原始文本
	results := e.notifier.Send(ctx, result)
	for _, ch := range channelResults(results) {
		if ch.Error != "" {
			logger.Log.Errorf("通知渠道 %s 推送失败: %s", ch.Channel, ch.Error)
		} else {
			logger.Log.Infof("通知渠道 %s 推送成功 (status %d)", ch.Channel, ch.Status)
		}
	}

	if e.store != nil {
		run := &model.AnalysisRun{
			Source:       srcDesc,
			Model:        e.cfg.LLM.Model,
			Markdown:     result,
			MarkdownPath: mdPath,
			HTMLPath:     htmlPath,
		}
		if err := e.store.SaveRun(run, channelResults(results)); err != nil {
			logger.Log.Errorf("归档分析结果失败: %v", err)
		} else {
			logger.Log.Info("已归档分析结果")
		}
	}

	return nil
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func channelResults(results map[string]notify.Result) []model.ChannelResult {
	out := make([]model.ChannelResult, 0, len(results))
	for ch, r := range results {
		cr := model.ChannelResult{Channel: ch, Status: r.Status}
		if r.Err != nil {
			cr.Error = r.Err.Error()
		}
		out = append(out, cr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out
}
