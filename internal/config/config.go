// Package config 负责合并命令行参数、环境变量和配置文件，并校验最终配置。
//
// 优先级从高到低：命令行参数、LOCSTAT_* 环境变量、配置文件、默认值。
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/viper"

	"locstat/internal/ignore"
	"locstat/internal/model"
)

const (
	// EnvPrefix 是环境变量前缀，例如 LOCSTAT_EXTENSIONS=.rs,.go。
	EnvPrefix = "LOCSTAT"
	// DefaultConfigName 是在当前目录查找的配置文件名（不含后缀）。
	DefaultConfigName = ".locstat"
)

// Options 是一次统计运行的完整配置。
type Options struct {
	Path       string   `mapstructure:"path"`
	Extensions []string `mapstructure:"extensions"`

	Hidden   bool `mapstructure:"hidden"`
	Docs     bool `mapstructure:"docs"`
	Comments bool `mapstructure:"comments"`
	Fixme    bool `mapstructure:"fixme"`
	Todo     bool `mapstructure:"todo"`
	Units    bool `mapstructure:"units"`
	Ratio    bool `mapstructure:"ratio"`
	JSON     bool `mapstructure:"json"`
	Verbose  bool `mapstructure:"verbose"`

	Files      bool     `mapstructure:"files"`
	Workers    int      `mapstructure:"workers"`
	Output     string   `mapstructure:"output"`
	IgnoreFile string   `mapstructure:"ignore_file"`
	Exclude    []string `mapstructure:"exclude"`
}

// Error 表示配置错误，在遍历开始前返回。
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Message)
}

// SetDefaults 为 viper 注册默认值。
// 每个键都需要注册，否则 Unmarshal 时 AutomaticEnv 无法感知只在环境变量中出现的键。
func SetDefaults(v *viper.Viper) {
	v.SetDefault("path", "")
	v.SetDefault("extensions", []string{".rs"})
	for _, key := range []string{"hidden", "docs", "comments", "fixme", "todo", "units", "ratio", "json", "verbose", "files"} {
		v.SetDefault(key, false)
	}
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("output", "")
	v.SetDefault("ignore_file", ignore.DefaultFileName)
	v.SetDefault("exclude", []string{})
}

// Load 读取配置文件与环境变量，解析并校验出 Options。
// configFile 为空时在当前目录查找 .locstat.yaml，找不到不算错误。
func Load(v *viper.Viper, configFile string) (Options, error) {
	var options Options

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return options, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&options); err != nil {
		return options, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(options.Path) == "" {
		workingDir, err := os.Getwd()
		if err != nil {
			return options, fmt.Errorf("resolve working directory: %w", err)
		}
		options.Path = workingDir
	}

	if err := options.Validate(); err != nil {
		return options, err
	}
	return options, nil
}

// Validate 检查配置是否可用于扫描。
func (o Options) Validate() error {
	if len(o.Extensions) == 0 {
		return &Error{Field: "extensions", Message: "at least one extension is required"}
	}
	for _, ext := range o.Extensions {
		if strings.TrimSpace(ext) == "" {
			return &Error{Field: "extensions", Message: "extension must not be empty"}
		}
	}

	if o.Workers <= 0 {
		return &Error{Field: "workers", Message: "workers must be greater than 0"}
	}

	if _, err := o.ExcludeGlobs(); err != nil {
		return err
	}
	return nil
}

// ExcludeGlobs 编译 exclude 规则。
func (o Options) ExcludeGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(o.Exclude))
	for _, pattern := range o.Exclude {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, &Error{Field: "exclude", Message: fmt.Sprintf("pattern %q: %v", pattern, err)}
		}
		globs = append(globs, compiled)
	}
	return globs, nil
}

// Policy 返回注释类别的计数策略。
func (o Options) Policy() model.CountPolicy {
	return model.CountPolicy{
		IncludeComments: o.Comments,
		IncludeDocs:     o.Docs,
	}
}
