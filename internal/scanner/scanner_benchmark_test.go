package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// prepareBenchmarkFile 创建一个用于单文件扫描基准测试的 Rust 文件。
func prepareBenchmarkFile(b *testing.B) string {
	b.Helper()

	tempDir := b.TempDir()
	filePath := filepath.Join(tempDir, "large.rs")

	lines := make([]string, 0, 8000)
	lines = append(lines, "//! crate docs", "")
	for i := 0; i < 2000; i++ {
		lines = append(lines, "/// doc for f"+strconv.Itoa(i))
		lines = append(lines, "/* block comment */")
		lines = append(lines, "pub fn f"+strconv.Itoa(i)+"() { let _ = "+strconv.Itoa(i)+"; }")
		lines = append(lines, "// TODO: tidy up")
	}

	if err := os.WriteFile(filePath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		b.Fatalf("write benchmark fixture failed: %v", err)
	}
	return filePath
}

// prepareBenchmarkDirectory 创建目录扫描基准测试数据。
func prepareBenchmarkDirectory(b *testing.B) string {
	b.Helper()

	tempDir := b.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, ".gitignore"), []byte("target\n"), 0o644); err != nil {
		b.Fatalf("write ignore file failed: %v", err)
	}

	for i := 0; i < 200; i++ {
		srcFile := filepath.Join(tempDir, "src", "m"+strconv.Itoa(i%10), "f"+strconv.Itoa(i)+".rs")
		targetFile := filepath.Join(tempDir, "target", "g"+strconv.Itoa(i)+".rs")

		for _, path := range []string{srcFile, targetFile} {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				b.Fatalf("mkdir fixture dir failed: %v", err)
			}
			if err := os.WriteFile(path, []byte("/// doc\npub struct S;\nimpl S {}\n"), 0o644); err != nil {
				b.Fatalf("write fixture failed: %v", err)
			}
		}
	}
	return tempDir
}

// BenchmarkScanSingleFile 衡量单文件扫描性能。
func BenchmarkScanSingleFile(b *testing.B) {
	filePath := prepareBenchmarkFile(b)
	service := NewService(Options{Extensions: []string{".rs"}, Units: true, Workers: 1}, nil)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPath(context.Background(), filePath); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}

// BenchmarkScanDirectory 衡量目录并发扫描性能。
func BenchmarkScanDirectory(b *testing.B) {
	dirPath := prepareBenchmarkDirectory(b)
	service := NewService(Options{Extensions: []string{".rs"}, Units: true, Workers: 8}, nil)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPath(context.Background(), dirPath); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}
