// Package scanner 提供目录遍历与并发分类调度能力。
// 该层负责目录遍历、忽略规则作用域、任务分发和结果聚合，不负责逐行分类细节。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"locstat/internal/classifier"
	"locstat/internal/model"
)

// ErrNotText 表示文件内容不是合法的 UTF-8 文本。
var ErrNotText = errors.New("file is not valid UTF-8 text")

// Options 是扫描服务的可配置参数。
type Options struct {
	// Extensions 是需要统计的文件名后缀（字面量匹配，如 .rs）。
	Extensions []string
	// Hidden 为 true 时包含以 . 开头的文件和目录。
	Hidden bool
	// Units 为 true 时统计声明单元。
	Units bool
	// KeepFiles 为 true 时在结果中保留逐文件明细。
	KeepFiles bool
	// IgnoreFile 是每个目录下的忽略文件名，为空时使用 .gitignore。
	IgnoreFile string
	// Exclude 是按文件名匹配的额外排除规则。
	Exclude []glob.Glob
	// Workers 是并发分类的 worker 数量。
	Workers int
}

// Service 是扫描服务对象。
type Service struct {
	options Options
	logger  *zap.Logger
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
}

// NewService 创建扫描服务。
func NewService(options Options, logger *zap.Logger) *Service {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		options: options,
		logger:  logger,
	}
}

// ScanPath 扫描目录或单文件。
//
// 目录遍历在单个协程中按深度优先顺序执行，忽略作用域的进入/离开严格成对；
// 命中后缀的文件交给 worker 并发读取和分类，由调用协程统一合并结果。
// 任一文件或目录读取失败都会终止整个扫描，不返回部分结果。
func (s *Service) ScanPath(ctx context.Context, targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.ScannedPath = absoluteTarget

	// 用户直接给出文件时无条件统计，不做后缀过滤。
	if !info.IsDir() {
		tally, err := s.analyzeFile(absoluteTarget)
		if err != nil {
			return model.ScanResult{}, err
		}
		result.Stats.Merge(tally)
		if s.options.KeepFiles {
			result.Files = []model.FileResult{{Path: filepath.Base(absoluteTarget), Tally: tally}}
		}
		s.logTotals(result)
		return result, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	tasks := make(chan scanTask, s.options.Workers*4)
	results := make(chan model.FileResult, s.options.Workers*4)

	group.Go(func() error {
		defer close(tasks)
		walker := newWalker(s.options, absoluteTarget, s.logger)
		return walker.walk(groupCtx, tasks)
	})

	var workerGroup sync.WaitGroup
	for i := 0; i < s.options.Workers; i++ {
		workerGroup.Add(1)
		group.Go(func() error {
			defer workerGroup.Done()
			return s.runWorker(groupCtx, tasks, results)
		})
	}

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	for item := range results {
		result.Stats.Merge(item.Tally)
		if s.options.KeepFiles {
			result.Files = append(result.Files, item)
		}
	}

	if err := group.Wait(); err != nil {
		return model.ScanResult{}, err
	}

	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	s.logTotals(result)
	return result, nil
}

// runWorker 执行真实的文件读取和分类。
func (s *Service) runWorker(ctx context.Context, tasks <-chan scanTask, results chan<- model.FileResult) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task, ok := <-tasks:
			if !ok {
				return nil
			}

			tally, err := s.analyzeFile(task.absolutePath)
			if err != nil {
				return err
			}

			select {
			case results <- model.FileResult{Path: task.displayPath, Tally: tally}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// analyzeFile 读取整个文件并执行分类。
func (s *Service) analyzeFile(path string) (model.FileTally, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return model.FileTally{}, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(content) {
		return model.FileTally{}, fmt.Errorf("%s: %w", path, ErrNotText)
	}

	tally := classifier.Analyze(content, classifier.Options{Units: s.options.Units})
	s.logger.Info("file counted",
		zap.String("path", path),
		zap.Int64("lines", tally.Total()),
		zap.Int64("code", tally.Code),
	)
	return tally, nil
}

func (s *Service) logTotals(result model.ScanResult) {
	s.logger.Info("scan finished",
		zap.String("path", result.ScannedPath),
		zap.Int64("files", result.Stats.Files),
		zap.Int64("lines", result.Stats.Total()),
		zap.Int64("code", result.Stats.Code),
	)
}
