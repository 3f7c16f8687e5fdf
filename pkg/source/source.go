package source

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/sansan0/trendradar/pkg/config"
)

// Load 按优先级解析分析文本：覆盖文本 > URL 抓取 > 目标文件。
// 第二个返回值是供日志使用的来源描述。
func Load(cfg config.InputConfig) (string, string, error) {
	if text := strings.TrimSpace(cfg.Override); text != "" {
		return text, "来自配置覆盖文本", nil
	}

	if cfg.URL != "" {
		text, err := fetchReadable(cfg.URL)
		if err != nil {
			return "", "", fmt.Errorf("抓取正文失败 [%s]: %w", cfg.URL, err)
		}
		return text, fmt.Sprintf("来自 %s 正文抓取", cfg.URL), nil
	}

	if cfg.File == "" {
		return "", "", fmt.Errorf("未设置分析目标")
	}
	if cfg.Line > 0 {
		text, err := readLineText(cfg.File, cfg.Line)
		if err != nil {
			return "", "", err
		}
		return text, fmt.Sprintf("来自 %s 第 %d 行", cfg.File, cfg.Line), nil
	}
	text, err := readFullText(cfg.File)
	if err != nil {
		return "", "", err
	}
	return text, fmt.Sprintf("来自 %s 全文", cfg.File), nil
}

// readFullText 读取目标文件全文
func readFullText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("目标文件不存在或不可读: %w", err)
	}
	return string(data), nil
}

// readLineText 读取目标文件的指定行（1-based）
func readLineText(path string, line int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("目标文件不存在或不可读: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if line < 1 || line > len(lines) {
		return "", fmt.Errorf("行号超出范围: %d (文件总行数: %d)", line, len(lines))
	}
	return strings.TrimSpace(lines[line-1]), nil
}

// fetchReadable 抓取 URL 并提取核心文本
func fetchReadable(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
