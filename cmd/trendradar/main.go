package main

import (
	"context"
	"flag"
	"log"

	"github.com/sansan0/trendradar/pkg/config"
	"github.com/sansan0/trendradar/pkg/engine"
	"github.com/sansan0/trendradar/pkg/logger"
	"github.com/sansan0/trendradar/pkg/storage"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "配置文件路径")
		inputFile  = flag.String("input", "", "覆盖配置中的分析目标文件")
		inputLine  = flag.Int("line", 0, "仅读取目标文件的指定行 (1-based)")
		inputText  = flag.String("text", "", "直接指定待分析文本")
		inputURL   = flag.String("url", "", "从 URL 抓取正文作为分析文本")
	)
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if *inputFile != "" {
		cfg.Input.File = *inputFile
	}
	if *inputLine > 0 {
		cfg.Input.Line = *inputLine
	}
	if *inputText != "" {
		cfg.Input.Override = *inputText
	}
	if *inputURL != "" {
		cfg.Input.URL = *inputURL
	}

	// 验证配置
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = config.LoadEnvAPIKey(".env")
	}
	if cfg.LLM.APIKey == "" {
		log.Fatal("配置错误: 未找到 DeepSeek API Key。请在项目根 .env 设置 'deepseek_API_KEY=...'、配置环境变量或填写 llm.api_key")
	}
	if cfg.Input.File == "" && cfg.Input.Override == "" && cfg.Input.URL == "" {
		log.Fatal("配置错误: 未设置分析目标 (input.file / input.url / input.override)")
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动 AI 深度分析...")

	// 初始化数据库连接：配置了数据库信息才尝试连接，失败时仅输出文件
	var store *storage.Storage
	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 将仅生成本地文件。", err)
		} else {
			store = s
			defer store.Close()
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，跳过数据库连接")
	}

	// 3. 构建并运行引擎
	eng, err := engine.NewEngine(cfg, store)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	if err := eng.Run(context.Background()); err != nil {
		logger.Log.Fatalf("分析任务失败: %v", err)
	}
	logger.Log.Info("✅ 分析报告生成完毕")
}
