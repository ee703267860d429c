package classifier

import "strings"

// normalizeLine 去除行尾的换行符。
// 该函数适配 Windows 的 \r\n 与 Unix 的 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

// forEachLine 按物理行遍历内容。
//
// 约束说明：
// - 以 \n 作为分隔符，行尾的 \r 会被去掉
// - 文件以换行结尾时不会多出一个空行
// - 空内容没有任何行
func forEachLine(content string, visit func(line string)) {
	for len(content) > 0 {
		index := strings.IndexByte(content, '\n')
		if index < 0 {
			visit(normalizeLine(content))
			return
		}
		visit(normalizeLine(content[:index+1]))
		content = content[index+1:]
	}
}
