package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"locstat/internal/ignore"
)

// walker 负责深度优先遍历目录树，并维护忽略作用域。
// 同一时刻只有一个协程使用 walker，因此 ignore.Stack 无需加锁。
type walker struct {
	options Options
	root    string
	stack   *ignore.Stack
	logger  *zap.Logger
}

func newWalker(options Options, root string, logger *zap.Logger) *walker {
	return &walker{
		options: options,
		root:    root,
		stack:   ignore.NewStack(options.IgnoreFile, logger),
		logger:  logger,
	}
}

// walk 从根目录开始遍历，把命中后缀的文件推入任务队列。
func (w *walker) walk(ctx context.Context, tasks chan<- scanTask) error {
	w.logger.Debug("walk started",
		zap.String("root", w.root),
		zap.String("ignore_file", w.stack.FileName()),
		zap.Strings("extensions", w.options.Extensions),
	)
	return w.visitDir(ctx, w.root, tasks)
}

// visitDir 先进入目录的忽略作用域，再列出子项，全部处理完后离开作用域。
func (w *walker) visitDir(ctx context.Context, dir string, tasks chan<- scanTask) error {
	if err := w.stack.Enter(dir); err != nil {
		return err
	}
	defer w.stack.Leave(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}

	w.logger.Debug("entering directory", zap.String("dir", dir), zap.Int("entries", len(entries)))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		if !w.options.Hidden && strings.HasPrefix(name, ".") {
			continue
		}
		if w.stack.IsIgnored(name) {
			w.logger.Info("ignored entry", zap.String("name", name), zap.String("dir", dir))
			continue
		}
		if w.excluded(name) {
			w.logger.Info("excluded entry", zap.String("name", name), zap.String("dir", dir))
			continue
		}

		path := filepath.Join(dir, name)
		if isDirectory(path, entry) {
			if err := w.visitDir(ctx, path, tasks); err != nil {
				return err
			}
			continue
		}

		if !w.matchExtension(name) {
			continue
		}

		task := scanTask{
			absolutePath: path,
			displayPath:  w.displayPath(path),
		}
		select {
		case tasks <- task:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	w.logger.Debug("leaving directory", zap.String("dir", dir))
	return nil
}

// matchExtension 判断文件名是否以任一配置后缀结尾。
func (w *walker) matchExtension(name string) bool {
	for _, ext := range w.options.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// excluded 判断文件名是否命中额外的排除规则。
func (w *walker) excluded(name string) bool {
	for _, pattern := range w.options.Exclude {
		if pattern.Match(name) {
			return true
		}
	}
	return false
}

func (w *walker) displayPath(path string) string {
	relativePath, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(relativePath)
}

// isDirectory 判断条目是否为目录，符号链接按其目标判断。
// 目标不存在的链接当作普通文件处理，只有命中后缀时才会在读取阶段报错。
func isDirectory(path string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
