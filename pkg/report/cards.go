package report

import "strings"

// 固定主题小节标签（段落 + 紧随列表 → 卡片）
var sectionLabels = []string{
	"宏观层面：", "行业层面：", "个股层面：",
	"布局建议：", "主要风险：", "对冲建议：",
	"宏观影响：", "行业影响：", "个股影响：",
}

// 优先级事项标签（段落 + 紧随标签列表 → 卡片）
var priorityListLabels = []string{"高优先级事项：", "中优先级事项：", "低优先级事项："}

// 大盘复盘小节的固定标签
var reviewLabels = []string{"趋势", "情绪", "风格"}

// Cardify 对渲染节点序列依次应用语义卡片化扫描，返回改写后的序列。
// 各扫描只向前看、只消费自己命中的节点；没有命中时原样保留，绝不报错。
// 已卡片化的文档再次扫描是无操作。
func Cardify(nodes []Node) []Node {
	nodes = scanPriorityLabelLists(nodes)
	nodes = scanSections(nodes)
	nodes = scanEventTable(nodes)
	nodes = scanPriorityItems(nodes)
	nodes = scanMarketReview(nodes)
	return nodes
}

// priorityItem 收集一条优先级事项的五个标签字段，每个字段只取第一次出现的值。
type priorityItem struct {
	title      string
	reason     string
	urgency    string
	confidence string
	suggest    string
}

// 有序的 (标签, 赋值) 表，便于按前缀匹配逐项提取
var priorityFields = []struct {
	label string
	slot  func(*priorityItem) *string
}{
	{"标题", func(it *priorityItem) *string { return &it.title }},
	{"原因", func(it *priorityItem) *string { return &it.reason }},
	{"紧迫度", func(it *priorityItem) *string { return &it.urgency }},
	{"置信度", func(it *priorityItem) *string { return &it.confidence }},
	{"执行建议", func(it *priorityItem) *string { return &it.suggest }},
}

// absorb 尝试把一段文本解释为某个标签字段。allowTitle 控制是否接受 标题 字段
// （事项内的段落只携带其余四个字段）。
func (it *priorityItem) absorb(text string, allowTitle bool) {
	text = strings.TrimSpace(text)
	for _, f := range priorityFields {
		if f.label == "标题" && !allowTitle {
			continue
		}
		if !strings.HasPrefix(text, f.label) {
			continue
		}
		if slot := f.slot(it); *slot == "" {
			*slot = labelValue(text, f.label)
		}
		return
	}
}

func (it *priorityItem) card() *Card {
	c := &Card{Title: it.title}
	if c.Title == "" {
		c.Title = "重点事项"
	}
	c.Meta = []MetaField{
		{Label: "紧迫度", Value: it.urgency},
		{Label: "置信度", Value: it.confidence},
	}
	if it.reason != "" {
		c.NoteLabel, c.NoteText = "原因", it.reason
	}
	if it.suggest != "" {
		c.Lists = append(c.Lists, CardList{Label: "执行建议", Items: []string{it.suggest}})
	}
	return c
}

// labelValue 提取 "标签：值" 的值部分：优先取第一个全角冒号之后的文本；
// 冒号缺失或其后为空时退化为剥离标签前缀和残留冒号。
// 上游生成器的排版并无契约保证，这里保持宽松解析。
func labelValue(text, label string) string {
	if _, after, ok := strings.Cut(text, "："); ok {
		if v := strings.TrimSpace(after); v != "" {
			return v
		}
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, label))
	rest = strings.TrimPrefix(rest, "：")
	rest = strings.TrimPrefix(rest, ":")
	return strings.TrimSpace(rest)
}

func inLabelSet(text string, labels []string) bool {
	for _, l := range labels {
		if text == l {
			return true
		}
	}
	return false
}

// scanPriorityLabelLists 把 "高/中/低优先级事项：" 段落与其紧随的标签列表
// 合并为一张卡片，字段从列表项中提取。
func scanPriorityLabelLists(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n.Kind == NodeParagraph && inLabelSet(strings.TrimSpace(n.Text), priorityListLabels) &&
			i+1 < len(nodes) && nodes[i+1].Kind == NodeList {
			var it priorityItem
			for _, entry := range nodes[i+1].Items {
				it.absorb(entry, true)
			}
			out = append(out, Node{Kind: NodeCard, Card: it.card()})
			i++
			continue
		}
		out = append(out, n)
	}
	return out
}

// scanSections 把固定主题段落与其紧随的列表合并为一张卡片，
// 卡片标题为去掉尾部冒号的标签，列表原样进入卡片正文。
func scanSections(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n.Kind == NodeParagraph && inLabelSet(strings.TrimSpace(n.Text), sectionLabels) &&
			i+1 < len(nodes) && nodes[i+1].Kind == NodeList {
			c := &Card{
				Title: strings.TrimSuffix(strings.TrimSpace(n.Text), "："),
				Lists: []CardList{{Items: nodes[i+1].Items}},
			}
			out = append(out, Node{Kind: NodeCard, Card: c})
			i++
			continue
		}
		out = append(out, n)
	}
	return out
}

// 事件表列的解析顺序：表头同义词优先，未命中时退回固定列下标
var eventColumns = []struct {
	synonyms []string
	index    int
}{
	{[]string{"事件", "事件名称"}, 0},
	{[]string{"日期", "日期/窗口", "时间窗口"}, 1},
	{[]string{"观点", "前瞻观点"}, 2},
	{[]string{"影响", "市场影响"}, 3},
	{[]string{"板块与标的"}, 4},
	{[]string{"建议", "建议与对冲"}, 5},
}

// scanEventTable 把文档中的第一张表改写为逐行事件卡片。
// 每个输出字段按同义词表在表头中查找，查不到时使用固定列下标。
func scanEventTable(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	done := false
	for _, n := range nodes {
		if done || n.Kind != NodeTable || len(n.Rows) == 0 {
			out = append(out, n)
			continue
		}
		done = true
		header := n.Rows[0]
		for _, row := range n.Rows[1:] {
			out = append(out, Node{Kind: NodeCard, Card: eventCard(header, row)})
		}
	}
	return out
}

func eventCard(header, row []string) *Card {
	byName := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(row) {
			byName[h] = row[i]
		}
	}
	resolve := func(col int) string {
		ec := eventColumns[col]
		for _, name := range ec.synonyms {
			if v := byName[name]; v != "" {
				return v
			}
		}
		if ec.index < len(row) {
			return row[ec.index]
		}
		return ""
	}

	evt := resolve(0)
	if evt == "" {
		evt = "事件"
	}
	c := &Card{
		Title: evt,
		Meta: []MetaField{
			{Label: "日期", Value: resolve(1)},
			{Label: "影响", Value: resolve(3)},
		},
	}
	if view := resolve(2); view != "" {
		c.NoteLabel, c.NoteText = "前瞻观点", view
	}
	if sector := resolve(4); sector != "" {
		c.Lists = append(c.Lists, CardList{Label: "板块与标的", Items: []string{sector}})
	}
	if adv := resolve(5); adv != "" {
		c.Lists = append(c.Lists, CardList{Label: "建议", Items: []string{adv}})
	}
	return c
}

// scanPriorityItems 处理 "优先级" 三级标题下的事项序列：
// 以首项为 "标题" 的列表开启一条事项，随后的段落补充其余字段，
// 直到遇到下一个列表、下一个三级标题或序列结束；被访问的节点由一张卡片替换。
// 同一标题下可以产出多张卡片。
func scanPriorityItems(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		out = append(out, n)
		i++
		if !isH3(n) || !strings.Contains(n.Text, "优先级") {
			continue
		}
		for i < len(nodes) && !isH3(nodes[i]) {
			cur := nodes[i]
			if cur.Kind == NodeList && len(cur.Items) > 0 && strings.HasPrefix(strings.TrimSpace(cur.Items[0]), "标题") {
				var it priorityItem
				for _, entry := range cur.Items {
					it.absorb(entry, true)
				}
				// 卡片落在被消费区域的首节点位置；途经的非段落节点原样保留
				slot := len(out)
				out = append(out, Node{})
				j := i + 1
				for j < len(nodes) && nodes[j].Kind != NodeList && !isH3(nodes[j]) {
					if nodes[j].Kind == NodeParagraph {
						it.absorb(nodes[j].Text, false)
					} else {
						out = append(out, nodes[j])
					}
					j++
				}
				out[slot] = Node{Kind: NodeCard, Card: it.card()}
				i = j
				continue
			}
			out = append(out, cur)
			i++
		}
	}
	return out
}

// scanMarketReview 处理 "大盘复盘" 三级标题下的 趋势/情绪/风格 段落：
// 标签段落开启一张以该标签为题的卡片，紧随的列表或段落作为卡片正文被消费，
// 直到遇到下一个三级标题或序列结束。
func scanMarketReview(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		out = append(out, n)
		i++
		if !isH3(n) || !strings.Contains(n.Text, "大盘复盘") {
			continue
		}
		for i < len(nodes) && !isH3(nodes[i]) {
			cur := nodes[i]
			key := ""
			if cur.Kind == NodeParagraph {
				for _, l := range reviewLabels {
					if strings.HasPrefix(strings.TrimSpace(cur.Text), l) {
						key = l
						break
					}
				}
			}
			if key == "" {
				out = append(out, cur)
				i++
				continue
			}
			c := &Card{Title: key}
			j := i + 1
			if j < len(nodes) {
				switch nodes[j].Kind {
				case NodeList:
					c.Lists = append(c.Lists, CardList{Items: nodes[j].Items})
					j++
				case NodeParagraph:
					c.Text = strings.TrimSpace(nodes[j].Text)
					j++
				}
			}
			out = append(out, Node{Kind: NodeCard, Card: c})
			i = j
		}
	}
	return out
}
