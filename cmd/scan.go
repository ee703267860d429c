package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"locstat/internal/config"
	"locstat/internal/logging"
	"locstat/internal/model"
	"locstat/internal/report"
	"locstat/internal/scanner"
)

// flagKeys 把命令行参数名映射到配置键。
var flagKeys = map[string]string{
	"path":        "path",
	"extension":   "extensions",
	"hidden":      "hidden",
	"docs":        "docs",
	"comments":    "comments",
	"fixme":       "fixme",
	"todo":        "todo",
	"units":       "units",
	"ratio":       "ratio",
	"json":        "json",
	"verbose":     "verbose",
	"files":       "files",
	"workers":     "workers",
	"output":      "output",
	"ignore-file": "ignore_file",
	"exclude":     "exclude",
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	locstat scan .
//	locstat scan ./project -e .rs,.js -c -d --json
func newScanCmd() *cobra.Command {
	var configFile string
	v := viper.New()

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "统计目录或文件的源码行数",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set("path", args[0])
			}

			options, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return runScan(cmd, options)
		},
	}

	flags := scanCmd.Flags()
	flags.StringVarP(&configFile, "config", "", "", "配置文件路径，默认查找 ./.locstat.yaml")
	flags.StringP("path", "p", "", "扫描路径，默认当前目录")
	flags.StringSliceP("extension", "e", []string{".rs"}, "统计的文件后缀，可重复或逗号分隔")
	flags.BoolP("hidden", "a", false, "包含以 . 开头的文件和目录")
	flags.BoolP("docs", "d", false, "把文档注释计入 loc")
	flags.BoolP("comments", "c", false, "把普通注释计入 loc")
	flags.BoolP("fixme", "f", false, "输出 FIXME 数量")
	flags.BoolP("todo", "t", false, "输出 TODO 数量")
	flags.BoolP("units", "u", false, "统计 struct/fn/impl/macro 数量")
	flags.BoolP("ratio", "r", false, "输出各类别占比")
	flags.BoolP("json", "j", false, "以 JSON 格式输出")
	flags.BoolP("verbose", "v", false, "输出调试日志到 stderr")
	flags.Bool("files", false, "输出逐文件明细")
	flags.Int("workers", runtime.NumCPU(), "并发 worker 数量")
	flags.String("output", "", "json 导出文件路径")
	flags.String("ignore-file", ".gitignore", "每个目录下的忽略文件名")
	flags.StringSlice("exclude", nil, "按文件名排除的 glob 规则")

	flags.VisitAll(func(flag *pflag.Flag) {
		if key, ok := flagKeys[flag.Name]; ok {
			_ = v.BindPFlag(key, flag)
		}
	})

	return scanCmd
}

// runScan 执行扫描并输出结果。
func runScan(cmd *cobra.Command, options config.Options) error {
	logger := logging.New(options.Verbose)
	defer func() { _ = logger.Sync() }()

	logger.Info("scan started",
		zap.String("path", options.Path),
		zap.String("extensions", strings.Join(options.Extensions, " ")),
	)

	excludes, err := options.ExcludeGlobs()
	if err != nil {
		return err
	}

	service := scanner.NewService(scanner.Options{
		Extensions: options.Extensions,
		Hidden:     options.Hidden,
		Units:      options.Units,
		KeepFiles:  options.Files,
		IgnoreFile: options.IgnoreFile,
		Exclude:    excludes,
		Workers:    options.Workers,
	}, logger)

	result, err := service.ScanPath(cmd.Context(), options.Path)
	if err != nil {
		return err
	}

	policy := options.Policy()
	summary := model.NewReport(result, policy, options.Ratio)

	if outputPath := strings.TrimSpace(options.Output); outputPath != "" {
		if err := report.WriteJSONFile(outputPath, summary); err != nil {
			return err
		}
		logger.Info("json exported", zap.String("output", outputPath))
	}

	if options.JSON {
		return report.PrintJSON(cmd.OutOrStdout(), summary)
	}

	if err := report.PrintText(cmd.OutOrStdout(), summary, report.TextOptions{
		Todo:   options.Todo,
		Fixme:  options.Fixme,
		Units:  options.Units,
		Policy: policy,
	}); err != nil {
		return fmt.Errorf("print report: %w", err)
	}
	return nil
}
