package classifier

import (
	"strings"

	"locstat/internal/model"
)

type unitKind int

const (
	unitStruct unitKind = iota
	unitFunction
	unitImpl
	unitMacro
)

// unitPrefixes 按匹配顺序排列，命中第一个即停止。
var unitPrefixes = []struct {
	prefix string
	kind   unitKind
}{
	{"struct ", unitStruct},
	{"pub struct ", unitStruct},
	{"fn ", unitFunction},
	{"async fn ", unitFunction},
	{"pub fn ", unitFunction},
	{"pub async fn ", unitFunction},
	{"impl ", unitImpl},
	{"macro_rules!", unitMacro},
}

// scanUnits 对已去空白的代码行做声明单元的前缀匹配。
// 纯启发式：不做括号配对，也不识别字符串上下文。
func scanUnits(trimmed string, tally *model.FileTally) {
	for _, item := range unitPrefixes {
		if !strings.HasPrefix(trimmed, item.prefix) {
			continue
		}

		switch item.kind {
		case unitStruct:
			tally.Structs++
		case unitFunction:
			tally.Functions++
		case unitImpl:
			tally.ImplBlocks++
		case unitMacro:
			tally.Macros++
		}
		return
	}
}
