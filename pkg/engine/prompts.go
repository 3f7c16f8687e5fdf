package engine

import "fmt"

// systemPrompt 固定的系统角色说明
const systemPrompt = "你是一名专业的金融与宏观分析助手，输出要结构化、可执行，避免空话。"

// instructionPrompt 中文分析任务说明，单独提出便于后期修改
const instructionPrompt = "请执行以下任务并给出结构化、可执行的中文结论：\n" +
	"1) 自动筛选优先级：从输入文本中提炼最重要事项，给出标题、原因、紧迫度(高/中/低)、置信度(0-100)、具体行动建议。\n" +
	"2) 关键信息汇总与AI解读：简洁归纳要点，并解释其在宏观/行业/个股层面的实际影响。\n" +
	"3) 大盘复盘：概述近期市场趋势、投资者情绪（偏乐观/中性/偏悲观）、风格倾向（成长/价值、大盘/小盘、权重/题材等）。\n" +
	"4) 未来14天重大事件前瞻：列出可能发生的重要事件（如CPI/PPI数据、议息/降息会议、失业率、PMI、财报季节点、地缘风险等），给出预计日期或时间窗口、前瞻观点、可能的市场影响、受益/受损板块与代表性标的（标的请给名称或代码）、提前布局建议与风险对冲。\n" +
	"请分段清晰，避免空话，突出可执行建议与风险提示。"

// buildUserPrompt 组装用户消息：待分析文本 + 任务说明 + 输出结构要求
func buildUserPrompt(text string) string {
	return fmt.Sprintf("待分析文本：\n%s\n\n任务说明：\n%s\n\n", text, instructionPrompt) +
		"请按以下结构输出：\n" +
		"1) 优先级筛选（标题/原因/紧迫度/置信度/执行建议）\n" +
		"2) 关键信息汇总与AI解读\n" +
		"3) 大盘复盘（趋势/情绪/风格）\n" +
		"4) 未来14天事件前瞻（事件/日期/观点/影响/板块与标的/建议）\n" +
		"5) 风险提示\n" +
		"务必使用简洁中文、有序分段、强调可执行建议。"
}
