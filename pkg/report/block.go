package report

import (
	"regexp"
	"strings"
)

// BlockKind 区块类型
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockList
	BlockTable
	BlockRule
	BlockParagraph
)

// Block 原始报告文本按行分类后的一个结构单元。
// 标题区块携带 Level 与 Text；列表区块携带 Items；表格区块携带 Rows
// （首行为表头）；段落区块携带 Text。
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
	Items []string
	Rows  [][]string
}

// 分隔线行的单元格内容（由若干 - 组成）
var dashCell = regexp.MustCompile(`^-+$`)

// ParseBlocks 将原始分析文本逐行分类为有序区块序列。
// 连续的列表行与表格行分别聚合为一个区块，遇到结构不同的行或文本结束时收束；
// 空行不产生区块，也不打断正在聚合的列表或表格。
// 对任何可打印文本都不会失败：无法识别的行一律落入段落。
func ParseBlocks(text string) []Block {
	var (
		blocks    []Block
		listItems []string
		tableRows []string
	)

	flushList := func() {
		if len(listItems) > 0 {
			blocks = append(blocks, Block{Kind: BlockList, Items: listItems})
			listItems = nil
		}
	}
	flushTable := func() {
		if len(tableRows) > 0 {
			blocks = append(blocks, Block{Kind: BlockTable, Rows: buildTableRows(tableRows)})
			tableRows = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#### "):
			flushTable()
			flushList()
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 4, Text: strings.TrimSpace(line[len("#### "):])})
		case strings.HasPrefix(line, "### "):
			flushTable()
			flushList()
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 3, Text: strings.TrimSpace(line[len("### "):])})
		case strings.HasPrefix(line, "|"):
			flushList()
			tableRows = append(tableRows, line)
		case line == "---":
			flushTable()
			flushList()
			blocks = append(blocks, Block{Kind: BlockRule})
		case strings.HasPrefix(line, "- "):
			flushTable()
			listItems = append(listItems, stripBold(line[2:]))
		default:
			flushTable()
			flushList()
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: stripBold(line)})
		}
	}

	flushList()
	flushTable()
	return blocks
}

// buildTableRows 解析聚合好的表格行：按 | 切分、去掉边框管道产生的首尾空单元格，
// 首行为表头；第二行若整行由 - 组成（分隔线）则丢弃。
func buildTableRows(lines []string) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		cells := strings.Split(strings.Trim(l, "|"), "|")
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = strings.TrimSpace(c)
		}
		rows = append(rows, row)
	}
	if len(rows) > 1 && isDashRow(rows[1]) {
		rows = append(rows[:1], rows[2:]...)
	}
	return rows
}

func isDashRow(cells []string) bool {
	for _, c := range cells {
		if c != "" && !dashCell.MatchString(c) {
			return false
		}
	}
	return true
}

// stripBold 去掉加粗标记
func stripBold(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}
