// Package classifier 实现逐行分类的有限状态机（FSM）。
//
// 每个文件使用独立的 Classifier 实例，唯一的跨行状态是“是否处于块注释中”。
// 分类规则只识别 C 系两字符注释标记：//、///、//!、/* 与 */。
package classifier

import (
	"strings"

	"locstat/internal/model"
)

// Category 是一行最终归属的类别。
type Category int

const (
	Blank Category = iota
	Code
	LineComment
	BlockComment
	DocComment
)

// String 返回类别名称，主要用于日志与测试输出。
func (c Category) String() string {
	switch c {
	case Blank:
		return "blank"
	case Code:
		return "code"
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	case DocComment:
		return "doc-comment"
	default:
		return "unknown"
	}
}

// IsComment 判断类别是否属于任意注释。
func (c Category) IsComment() bool {
	return c == LineComment || c == BlockComment || c == DocComment
}

// Options 控制分类时的附加统计。
type Options struct {
	// Units 为 true 时对代码行执行声明单元扫描。
	Units bool
}

// Classifier 维护单个文件的分类状态。
// 不可在多个文件之间共享；需要复用时先调用 Reset。
type Classifier struct {
	options        Options
	inBlockComment bool
}

// New 创建一个初始状态的分类器。
func New(options Options) *Classifier {
	return &Classifier{options: options}
}

// Reset 清除跨行状态，使分类器可以处理下一个文件。
func (c *Classifier) Reset() {
	c.inBlockComment = false
}

// InBlockComment 返回当前是否处于未闭合的块注释中。
func (c *Classifier) InBlockComment() bool {
	return c.inBlockComment
}

// Classify 对一行做分类并把结果累计到 tally。
//
// 规则按顺序匹配，先命中者生效：
// 1) 去空白后为空 -> Blank
// 2) 处于块注释中 -> BlockComment，行尾为 */ 时退出块注释
// 3) 以 /* 开头 -> BlockComment，并进入块注释（即使同一行以 */ 结尾）
// 4) 以 /// 或 //! 开头 -> DocComment
// 5) 以 // 开头 -> LineComment
// 6) 其他 -> Code
func (c *Classifier) Classify(line string, tally *model.FileTally) Category {
	trimmed := strings.TrimSpace(line)

	var category Category
	switch {
	case trimmed == "":
		category = Blank
	case c.inBlockComment:
		category = BlockComment
		if strings.HasSuffix(trimmed, "*/") {
			c.inBlockComment = false
		}
	case strings.HasPrefix(trimmed, "/*"):
		category = BlockComment
		// 开始行本身不做闭合判断，*/ 只在后续行按规则 2 检查。
		c.inBlockComment = true
	case strings.HasPrefix(trimmed, "///") || strings.HasPrefix(trimmed, "//!"):
		category = DocComment
	case strings.HasPrefix(trimmed, "//"):
		category = LineComment
	default:
		category = Code
	}

	switch category {
	case Blank:
		tally.Blank++
	case Code:
		tally.Code++
		if c.options.Units {
			scanUnits(trimmed, tally)
		}
	case LineComment:
		tally.LineComment++
	case BlockComment:
		tally.BlockComment++
	case DocComment:
		tally.DocComment++
	}

	// TODO/FIXME 统计与类别是否计入 loc 无关，使用原始行匹配。
	if category.IsComment() {
		scanMarkers(line, tally)
	}

	return category
}

// Analyze 对整个文件内容执行单次前向扫描并返回统计结果。
func Analyze(content []byte, options Options) model.FileTally {
	var tally model.FileTally
	classifier := New(options)
	forEachLine(string(content), func(line string) {
		classifier.Classify(line, &tally)
	})
	return tally
}

// scanMarkers 统计 TODO 与 FIXME 标记，每行每种最多 +1。
func scanMarkers(line string, tally *model.FileTally) {
	if strings.Contains(line, "TODO") {
		tally.Todo++
	}
	if strings.Contains(line, "FIXME") {
		tally.Fixme++
	}
}
