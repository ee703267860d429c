package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"locstat/internal/model"
)

func sampleReport() model.Report {
	return model.Report{
		ScannedPath:  "/tmp/project",
		Files:        2,
		Loc:          10,
		Todo:         1,
		Fixme:        2,
		Functions:    3,
		BlankLines:   5,
		CommentLines: 5,
		DocLines:     5,
	}
}

// TestPrintTextMinimal 验证默认只输出 LOC。
func TestPrintTextMinimal(t *testing.T) {
	var buffer bytes.Buffer
	if err := PrintText(&buffer, sampleReport(), TextOptions{}); err != nil {
		t.Fatalf("print failed: %v", err)
	}

	output := buffer.String()
	if !strings.HasPrefix(output, "LOC") || !strings.Contains(output, "10") {
		t.Fatalf("unexpected output: %q", output)
	}
	if strings.Contains(output, "TODO") || strings.Contains(output, "FUNCTIONS") {
		t.Fatalf("optional rows must be hidden: %q", output)
	}
}

// TestPrintTextAllRows 验证按开关输出可选行与比例。
func TestPrintTextAllRows(t *testing.T) {
	report := sampleReport()
	report.Ratio = &model.Ratios{Blank: 20, Comments: 20, Docs: 20, Loc: 40}
	report.FileReports = []model.FileReport{{Path: "src/main.rs", Loc: 10}}

	var buffer bytes.Buffer
	err := PrintText(&buffer, report, TextOptions{Todo: true, Fixme: true, Units: true})
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}

	output := buffer.String()
	for _, expected := range []string{"TODO", "FIXME", "FUNCTIONS", "IMPL BLOCKS", "COMMENTS", "20.000%", "40.000%", "src/main.rs"} {
		if !strings.Contains(output, expected) {
			t.Fatalf("expected %q in output: %q", expected, output)
		}
	}
}

// TestPrintTextIncludedCategoriesHidden 验证计入 loc 的类别不单独显示比例。
func TestPrintTextIncludedCategoriesHidden(t *testing.T) {
	report := sampleReport()
	report.Ratio = &model.Ratios{Blank: 25, Loc: 75}

	var buffer bytes.Buffer
	options := TextOptions{Policy: model.CountPolicy{IncludeComments: true, IncludeDocs: true}}
	if err := PrintText(&buffer, report, options); err != nil {
		t.Fatalf("print failed: %v", err)
	}

	output := buffer.String()
	if strings.Contains(output, "COMMENTS") || strings.Contains(output, "DOCS") {
		t.Fatalf("included categories must not be listed: %q", output)
	}
}

// TestPrintJSONFieldNames 验证 JSON 字段名。
func TestPrintJSONFieldNames(t *testing.T) {
	var buffer bytes.Buffer
	if err := PrintJSON(&buffer, sampleReport()); err != nil {
		t.Fatalf("print failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	for _, key := range []string{"loc", "todo", "fixme", "structs", "functions", "impl_blocks", "macros", "blank_lines", "comment_lines", "doc_lines"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing json field %s in %s", key, buffer.String())
		}
	}
	if _, ok := decoded["ratio"]; ok {
		t.Fatalf("ratio must be omitted when absent")
	}
}

// TestWriteJSONFile 验证导出时自动创建目录。
func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	if err := WriteJSONFile(path, sampleReport()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(content), "\"loc\": 10") {
		t.Fatalf("unexpected file content: %s", content)
	}
}
