// Package logging 负责创建 locstat 使用的 zap 日志对象。
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 根据 verbose 创建日志对象。
// 关闭 verbose 时返回 Nop 日志，统计结果之外不产生任何输出。
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	return newConsole(zapcore.Lock(os.Stderr), zapcore.DebugLevel)
}

// newConsole 创建写入 ws 的控制台日志。
// 日志统一写到 stderr，避免与 stdout 上的统计结果（尤其是 JSON）混在一起。
func newConsole(ws zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, level)
	return zap.New(core)
}
