package model

// AnalysisRun 一次分析任务的产物
type AnalysisRun struct {
	Source       string // 分析文本来源描述
	Model        string // 使用的模型名
	Markdown     string // LLM 返回的原始分析文本
	MarkdownPath string
	HTMLPath     string
}

// ChannelResult 单个通知渠道的推送结果
type ChannelResult struct {
	Channel string
	Status  int
	Error   string
}
