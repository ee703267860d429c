// Package report 提供 locstat 的输出能力。
// 当前实现支持 text 控制台格式和 JSON 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"locstat/internal/model"
)

// TextOptions 控制 text 输出中显示哪些可选行。
type TextOptions struct {
	Todo   bool
	Fixme  bool
	Units  bool
	Policy model.CountPolicy
}

// PrintText 使用表格展示统计结果。
// LOC 行始终输出，其余行按开关输出。
func PrintText(writer io.Writer, report model.Report, options TextOptions) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	rows := [][2]string{{"LOC", fmt.Sprint(report.Loc)}}
	if options.Todo {
		rows = append(rows, [2]string{"TODO", fmt.Sprint(report.Todo)})
	}
	if options.Fixme {
		rows = append(rows, [2]string{"FIXME", fmt.Sprint(report.Fixme)})
	}
	if options.Units {
		rows = append(rows,
			[2]string{"STRUCTS", fmt.Sprint(report.Structs)},
			[2]string{"FUNCTIONS", fmt.Sprint(report.Functions)},
			[2]string{"IMPL BLOCKS", fmt.Sprint(report.ImplBlocks)},
			[2]string{"MACROS", fmt.Sprint(report.Macros)},
		)
	}
	if report.Ratio != nil {
		rows = append(rows, [2]string{"BLANK", formatPercent(report.Ratio.Blank)})
		if !options.Policy.IncludeComments {
			rows = append(rows, [2]string{"COMMENTS", formatPercent(report.Ratio.Comments)})
		}
		if !options.Policy.IncludeDocs {
			rows = append(rows, [2]string{"DOCS", formatPercent(report.Ratio.Docs)})
		}
		rows = append(rows, [2]string{"LOC RATIO", formatPercent(report.Ratio.Loc)})
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}

	if len(report.FileReports) > 0 {
		if _, err := fmt.Fprintln(tw, "\nFILE\tLOC\tBLANK\tCOMMENT\tDOC"); err != nil {
			return err
		}
		for _, item := range report.FileReports {
			if _, err := fmt.Fprintf(
				tw,
				"%s\t%d\t%d\t%d\t%d\n",
				item.Path,
				item.Loc,
				item.BlankLines,
				item.CommentLines,
				item.DocLines,
			); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.3f%%", value)
}

// PrintJSON 把统计结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, report model.Report) error {
	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	content = append(content, '\n')
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, report model.Report) error {
	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
