package report

import (
	"reflect"
	"strings"
	"testing"
)

func renderText(text string) []Node {
	return RenderBlocks(ParseBlocks(text))
}

func cardsOf(nodes []Node) []*Card {
	var cards []*Card
	for _, n := range nodes {
		if n.Kind == NodeCard {
			cards = append(cards, n.Card)
		}
	}
	return cards
}

func TestScanPriorityItemsFromList(t *testing.T) {
	text := strings.Join([]string{
		"### 优先级筛选",
		"- 标题：降息预期升温",
		"- 原因：联储鹰派表态缓和",
		"- 紧迫度：高",
		"- 置信度：80",
		"- 执行建议：关注债市",
	}, "\n")

	got := Cardify(renderText(text))
	cards := cardsOf(got)
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	c := cards[0]
	if c.Title != "降息预期升温" {
		t.Errorf("title = %q, want 降息预期升温", c.Title)
	}
	if c.Meta[0].Value != "高" || c.Meta[1].Value != "80" {
		t.Errorf("meta = %+v, want 紧迫度=高 置信度=80", c.Meta)
	}
	if c.NoteLabel != "原因" || c.NoteText != "联储鹰派表态缓和" {
		t.Errorf("note = %q %q", c.NoteLabel, c.NoteText)
	}
	if len(c.Lists) != 1 || c.Lists[0].Label != "执行建议" || c.Lists[0].Items[0] != "关注债市" {
		t.Errorf("lists = %+v", c.Lists)
	}
	// 锚点标题保留
	if got[0].Kind != NodeHeading || got[0].Text != "优先级筛选" {
		t.Errorf("anchor heading missing: %+v", got[0])
	}
}

func TestScanPriorityItemsFieldsAsParagraphs(t *testing.T) {
	text := strings.Join([]string{
		"### 优先级筛选",
		"- 标题：X事件",
		"原因：A",
		"紧迫度：中",
		"置信度：60",
		"执行建议：观望",
	}, "\n")

	cards := cardsOf(Cardify(renderText(text)))
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	c := cards[0]
	if c.Title != "X事件" || c.Meta[0].Value != "中" || c.Meta[1].Value != "60" {
		t.Errorf("card = %+v", c)
	}
}

func TestScanPriorityItemsMultipleCards(t *testing.T) {
	text := strings.Join([]string{
		"### 优先级筛选",
		"- 标题：第一项",
		"原因：a",
		"- 标题：第二项",
		"原因：b",
		"### 下一节",
	}, "\n")

	cards := cardsOf(Cardify(renderText(text)))
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}
	if cards[0].Title != "第一项" || cards[1].Title != "第二项" {
		t.Errorf("titles = %q %q", cards[0].Title, cards[1].Title)
	}
}

func TestScanPriorityItemsMissingTitleFallback(t *testing.T) {
	text := "### 优先级筛选\n- 标题\n紧迫度：低"
	cards := cardsOf(Cardify(renderText(text)))
	if len(cards) != 1 || cards[0].Title != "重点事项" {
		t.Errorf("cards = %+v, want fallback title 重点事项", cards)
	}
}

func TestScanSections(t *testing.T) {
	text := "主要风险：\n- 流动性收紧\n- 地缘冲突"
	got := Cardify(renderText(text))
	if len(got) != 1 || got[0].Kind != NodeCard {
		t.Fatalf("got = %+v, want single card", got)
	}
	c := got[0].Card
	if c.Title != "主要风险" {
		t.Errorf("title = %q, want 主要风险", c.Title)
	}
	want := []string{"流动性收紧", "地缘冲突"}
	if len(c.Lists) != 1 || !reflect.DeepEqual(c.Lists[0].Items, want) {
		t.Errorf("lists = %+v, want %v", c.Lists, want)
	}
}

func TestScanSectionsRequiresFollowingList(t *testing.T) {
	// 标签段落后没有列表时原样保留
	text := "主要风险：\n纯段落"
	got := Cardify(renderText(text))
	if len(got) != 2 || got[0].Kind != NodeParagraph || got[1].Kind != NodeParagraph {
		t.Errorf("got = %+v, want two untouched paragraphs", got)
	}
}

func TestScanPriorityLabelLists(t *testing.T) {
	text := strings.Join([]string{
		"高优先级事项：",
		"- 标题：关注CPI",
		"- 紧迫度：高",
		"- 置信度：75",
		"- 执行建议：控制仓位",
	}, "\n")

	got := Cardify(renderText(text))
	if len(got) != 1 || got[0].Kind != NodeCard {
		t.Fatalf("got = %+v, want single card", got)
	}
	c := got[0].Card
	if c.Title != "关注CPI" || c.Meta[0].Value != "高" || c.Meta[1].Value != "75" {
		t.Errorf("card = %+v", c)
	}
}

func TestScanEventTable(t *testing.T) {
	text := strings.Join([]string{
		"| 事件 | 日期 | 观点 | 影响 | 板块与标的 | 建议 |",
		"| --- | --- | --- | --- | --- | --- |",
		"| 美联储议息 | 9月18日 | 预计降息25bp | 利好成长 | 科技股 | 逢低布局 |",
	}, "\n")

	got := Cardify(renderText(text))
	cards := cardsOf(got)
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	c := cards[0]
	if c.Title != "美联储议息" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Meta[0].Label != "日期" || c.Meta[0].Value != "9月18日" {
		t.Errorf("date meta = %+v", c.Meta[0])
	}
	if c.Meta[1].Label != "影响" || c.Meta[1].Value != "利好成长" {
		t.Errorf("impact meta = %+v", c.Meta[1])
	}
	if c.NoteLabel != "前瞻观点" || c.NoteText != "预计降息25bp" {
		t.Errorf("note = %q %q", c.NoteLabel, c.NoteText)
	}
	if len(c.Lists) != 2 || c.Lists[0].Label != "板块与标的" || c.Lists[1].Label != "建议" {
		t.Errorf("lists = %+v", c.Lists)
	}
	// 原表格节点被整体替换
	for _, n := range got {
		if n.Kind == NodeTable {
			t.Errorf("table node should be consumed")
		}
	}
}

func TestScanEventTableSynonymAndPositionalFallback(t *testing.T) {
	text := strings.Join([]string{
		"| 事件名称 | 时间窗口 | x | y |",
		"| 财报季 | 10月中旬 | 观点A | 影响B |",
	}, "\n")

	cards := cardsOf(Cardify(renderText(text)))
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	c := cards[0]
	if c.Title != "财报季" || c.Meta[0].Value != "10月中旬" {
		t.Errorf("card = %+v", c)
	}
	// 观点/影响列无表头同义词，命中固定下标
	if c.NoteText != "观点A" || c.Meta[1].Value != "影响B" {
		t.Errorf("fallback columns: note=%q impact=%q", c.NoteText, c.Meta[1].Value)
	}
}

func TestScanEventTableFirstTableOnly(t *testing.T) {
	text := "| 事件 | 日期 |\n| A | d1 |\n\n段落隔断\n\n| 事件 | 日期 |\n| B | d2 |"
	got := Cardify(renderText(text))
	tables := 0
	for _, n := range got {
		if n.Kind == NodeTable {
			tables++
		}
	}
	if tables != 1 {
		t.Errorf("tables remaining = %d, want second table untouched", tables)
	}
}

func TestScanMarketReview(t *testing.T) {
	text := strings.Join([]string{
		"### 大盘复盘",
		"趋势",
		"- 指数缩量震荡",
		"情绪",
		"偏乐观",
	}, "\n")

	cards := cardsOf(Cardify(renderText(text)))
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}
	if cards[0].Title != "趋势" || len(cards[0].Lists) != 1 || cards[0].Lists[0].Items[0] != "指数缩量震荡" {
		t.Errorf("trend card = %+v", cards[0])
	}
	if cards[1].Title != "情绪" || cards[1].Text != "偏乐观" {
		t.Errorf("sentiment card = %+v", cards[1])
	}
}

func TestCardifyNoAnchorsIsNoop(t *testing.T) {
	text := "### 普通章节\n普通段落\n- 普通列表项"
	nodes := renderText(text)
	got := Cardify(nodes)
	if !reflect.DeepEqual(got, nodes) {
		t.Errorf("Cardify() changed a document without anchors:\n%+v\n%+v", got, nodes)
	}
}

func TestCardifyIdempotent(t *testing.T) {
	text := strings.Join([]string{
		"### 优先级筛选",
		"- 标题：事项A",
		"紧迫度：高",
		"主要风险：",
		"- 风险1",
		"### 大盘复盘",
		"趋势",
		"- 上行",
		"| 事件 | 日期 |",
		"| --- | --- |",
		"| CPI | 周三 |",
	}, "\n")

	once := Cardify(renderText(text))
	twice := Cardify(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Cardify() is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestLabelValueTolerance(t *testing.T) {
	cases := []struct {
		text, label, want string
	}{
		{"标题：降息预期", "标题", "降息预期"},
		{"标题:降息预期", "标题", "降息预期"},
		{"标题降息预期", "标题", "降息预期"},
		{"紧迫度： 高 ", "紧迫度", "高"},
		{"标题：", "标题", ""},
	}
	for _, c := range cases {
		if got := labelValue(c.text, c.label); got != c.want {
			t.Errorf("labelValue(%q, %q) = %q, want %q", c.text, c.label, got, c.want)
		}
	}
}
