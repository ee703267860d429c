package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

// TestLoadDefaults 验证没有任何输入时的默认配置。
func TestLoadDefaults(t *testing.T) {
	options, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !reflect.DeepEqual(options.Extensions, []string{".rs"}) {
		t.Fatalf("unexpected default extensions: %v", options.Extensions)
	}
	if options.Workers <= 0 {
		t.Fatalf("expected positive default workers, got %d", options.Workers)
	}
	if options.IgnoreFile != ".gitignore" {
		t.Fatalf("unexpected ignore file: %s", options.IgnoreFile)
	}

	workingDir, _ := os.Getwd()
	if options.Path != workingDir {
		t.Fatalf("expected path to default to %s, got %s", workingDir, options.Path)
	}
}

// TestLoadConfigFile 验证 YAML 配置文件。
func TestLoadConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "locstat.yaml")
	content := "extensions:\n  - .rs\n  - .js\n" +
		"comments: true\n" +
		"units: true\n" +
		"workers: 3\n" +
		"ignore_file: .locignore\n" +
		"exclude:\n  - \"*_test.rs\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	options, err := Load(viper.New(), configPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !reflect.DeepEqual(options.Extensions, []string{".rs", ".js"}) {
		t.Fatalf("unexpected extensions: %v", options.Extensions)
	}
	if !options.Comments || !options.Units || options.Docs {
		t.Fatalf("unexpected flags: %+v", options)
	}
	if options.Workers != 3 || options.IgnoreFile != ".locignore" {
		t.Fatalf("unexpected options: %+v", options)
	}
	if len(options.Exclude) != 1 {
		t.Fatalf("unexpected exclude list: %v", options.Exclude)
	}
}

// TestLoadMissingExplicitConfigFile 验证显式指定的配置文件不存在时报错。
func TestLoadMissingExplicitConfigFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

// TestLoadEnvironment 验证 LOCSTAT_* 环境变量。
func TestLoadEnvironment(t *testing.T) {
	t.Setenv("LOCSTAT_EXTENSIONS", ".go,.rs")
	t.Setenv("LOCSTAT_HIDDEN", "true")
	t.Setenv("LOCSTAT_IGNORE_FILE", ".locignore")

	options, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !reflect.DeepEqual(options.Extensions, []string{".go", ".rs"}) {
		t.Fatalf("unexpected extensions: %v", options.Extensions)
	}
	if !options.Hidden {
		t.Fatalf("expected hidden from environment")
	}
	if options.IgnoreFile != ".locignore" {
		t.Fatalf("unexpected ignore file: %s", options.IgnoreFile)
	}
}

// TestValidate 验证配置错误在扫描前返回。
func TestValidate(t *testing.T) {
	valid := Options{Extensions: []string{".rs"}, Workers: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name    string
		options Options
		field   string
	}{
		{"no extensions", Options{Workers: 1}, "extensions"},
		{"blank extension", Options{Extensions: []string{" "}, Workers: 1}, "extensions"},
		{"no workers", Options{Extensions: []string{".rs"}}, "workers"},
		{"bad glob", Options{Extensions: []string{".rs"}, Workers: 1, Exclude: []string{"[unclosed"}}, "exclude"},
	}

	for _, item := range cases {
		err := item.options.Validate()
		var configErr *Error
		if !errors.As(err, &configErr) {
			t.Fatalf("%s: expected *Error, got %v", item.name, err)
		}
		if configErr.Field != item.field {
			t.Fatalf("%s: expected field %s, got %s", item.name, item.field, configErr.Field)
		}
	}
}

// TestPolicy 验证计数策略来自 comments/docs 开关。
func TestPolicy(t *testing.T) {
	policy := Options{Comments: true}.Policy()
	if !policy.IncludeComments || policy.IncludeDocs {
		t.Fatalf("unexpected policy: %+v", policy)
	}
}
