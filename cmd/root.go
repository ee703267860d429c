// Package cmd 提供 locstat 的命令行入口与子命令编排。
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(ctx context.Context, version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "locstat",
		Short: "按目录统计源码行数的工具",
		Long: "locstat 递归统计目录下的源码行数，遵循每个目录中的忽略文件，\n" +
			"并区分代码、行注释、块注释与文档注释，可选统计 TODO/FIXME、声明单元和比例。",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newScanCmd())

	return rootCmd
}
