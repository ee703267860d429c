// Package ignore 维护目录遍历过程中的忽略规则作用域。
//
// 每个目录最多有一个忽略文件，文件中的每一行是一个字面量名称（不支持通配符）。
// 进入目录时注册该目录的规则，离开目录时移除。查询时对所有已注册作用域取并集：
// 祖先目录登记的名称会排除其整棵子树中的同名条目。
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultFileName 是默认的忽略文件名。
const DefaultFileName = ".gitignore"

// Stack 记录当前活动的忽略作用域。
// 只应由遍历协程使用，不是并发安全的。
type Stack struct {
	fileName string
	logger   *zap.Logger

	scopes map[string][]string
	// names 是所有作用域的名称引用计数，用于 O(1) 查询。
	names map[string]int
}

// NewStack 创建忽略作用域栈。fileName 为空时使用 DefaultFileName。
func NewStack(fileName string, logger *zap.Logger) *Stack {
	if strings.TrimSpace(fileName) == "" {
		fileName = DefaultFileName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stack{
		fileName: fileName,
		logger:   logger,
		scopes:   make(map[string][]string),
		names:    make(map[string]int),
	}
}

// FileName 返回忽略文件名。
func (s *Stack) FileName() string {
	return s.fileName
}

// Enter 读取 dir 下的忽略文件并注册其规则。
// 文件不存在或没有有效规则时不注册任何内容；其他读取错误直接返回。
func (s *Stack) Enter(dir string) error {
	path := filepath.Join(dir, s.fileName)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no ignore file", zap.String("dir", dir))
			return nil
		}
		return fmt.Errorf("open ignore file: %w", err)
	}
	defer file.Close()

	patterns, err := ParsePatterns(file)
	if err != nil {
		return fmt.Errorf("read ignore file %s: %w", path, err)
	}
	if len(patterns) == 0 {
		return nil
	}

	// 同一目录重复进入时先移除旧规则，保证引用计数正确。
	s.Leave(dir)

	s.scopes[dir] = patterns
	for _, name := range patterns {
		s.names[name]++
	}
	s.logger.Debug("ignore scope registered",
		zap.String("dir", dir),
		zap.Strings("patterns", patterns),
	)
	return nil
}

// Leave 移除 dir 对应的作用域，未注册时无操作。
func (s *Stack) Leave(dir string) {
	patterns, ok := s.scopes[dir]
	if !ok {
		return
	}

	for _, name := range patterns {
		s.names[name]--
		if s.names[name] <= 0 {
			delete(s.names, name)
		}
	}
	delete(s.scopes, dir)
}

// IsIgnored 判断名称是否与任一活动作用域中的规则完全相等。
func (s *Stack) IsIgnored(name string) bool {
	return s.names[name] > 0
}

// Depth 返回当前注册的作用域数量。
func (s *Stack) Depth() int {
	return len(s.scopes)
}

// ParsePatterns 解析忽略文件内容。
//
// 规则：
// - 以 # 开头的行和空行被跳过
// - 去掉开头的一个 /、-、空格或制表符
// - 去掉末尾连续的 /、空格和制表符
// - 处理后为空的行被丢弃
func ParsePatterns(reader io.Reader) ([]string, error) {
	patterns := make([]string, 0)

	// bufio.Reader 不限制单行长度，超长行也能完整读取。
	bufferedReader := bufio.NewReader(reader)
	for {
		raw, err := bufferedReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if line := parsePatternLine(raw); line != "" {
			patterns = append(patterns, line)
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	return patterns, nil
}

// parsePatternLine 处理单行内容，注释行和处理后为空的行返回空字符串。
func parsePatternLine(raw string) string {
	line := strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return ""
	}

	if strings.ContainsAny(line[:1], "/- \t") {
		line = line[1:]
	}
	return strings.TrimRight(line, "/ \t")
}
